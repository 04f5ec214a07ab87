package options

import (
	"database/sql"
	"errors"
	"time"
)

// OptionName is the key the notice settings are stored under.
const OptionName = "simple_gdpr_cookie_compliance_options"

// ErrNotFound is returned by a Store when nothing is saved under a name.
var ErrNotFound = errors.New("option not found")

// Record is one row of the options table. Value holds the JSON encoded settings.
type Record struct {
	ID        int64         `db:"id" json:"-"`
	Name      string        `db:"option_name" json:"option_name"`
	Value     []byte        `db:"option_value" json:"option_value"`
	Version   int           `db:"version" json:"version"`
	UpdatedBy sql.NullInt64 `db:"updated_by" json:"updated_by"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}
