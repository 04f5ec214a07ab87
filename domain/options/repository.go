package options

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
)

// Repository reads and writes the notice settings record.
type Repository struct {
	store     Store
	validator *notice.Validator
}

func NewRepository(store Store, validator *notice.Validator) *Repository {
	return &Repository{store: store, validator: validator}
}

// Load returns the saved settings, or nil when nothing has been saved. A stored
// value that is not valid JSON is logged and treated as absent. Whatever is
// stored is sanitized again on the way out.
func (r *Repository) Load(ctx context.Context) (*notice.Configuration, error) {
	rec, err := r.store.Get(ctx, OptionName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var in notice.Input
	if err := json.Unmarshal(rec.Value, &in); err != nil {
		logger.FromContext(ctx).Warn("Stored notice settings are not valid JSON, using defaults",
			logger.OptionName(OptionName), logger.Int("version", rec.Version), logger.Err(err))
		return nil, nil
	}
	cfg := r.validator.Sanitize(in)
	return &cfg, nil
}

// LoadOrDefault is Load with the defaults filled in when nothing is saved.
func (r *Repository) LoadOrDefault(ctx context.Context) (notice.Configuration, error) {
	cfg, err := r.Load(ctx)
	if err != nil {
		return notice.Configuration{}, err
	}
	if cfg == nil {
		return notice.Default(), nil
	}
	return *cfg, nil
}

// Raw returns the stored record as is.
func (r *Repository) Raw(ctx context.Context) (*Record, error) {
	return r.store.Get(ctx, OptionName)
}

// Save replaces the stored record with in. Callers pass the output of
// Validator.SanitizeFor.
func (r *Repository) Save(ctx context.Context, in notice.Input, updatedBy int64) error {
	value, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode notice settings: %w", err)
	}
	if err := r.store.Set(ctx, OptionName, value, updatedBy); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Notice settings saved",
		logger.OptionName(OptionName), logger.UserID(updatedBy))
	return nil
}
