package options

import (
	"context"
	"errors"
	"testing"

	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (s failingStore) Get(context.Context, string) (*Record, error) { return nil, s.err }
func (s failingStore) Set(context.Context, string, []byte, int64) error { return s.err }

func TestRepository_LoadAbsent(t *testing.T) {
	repo := NewRepository(NewMemoryStore(), notice.NewValidator())

	cfg, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cfg)

	def, err := repo.LoadOrDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, notice.Default(), def)
}

func TestRepository_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	v := notice.NewValidator()
	repo := NewRepository(NewMemoryStore(), v)

	saved := v.Sanitize(notice.Input{
		"accept_btn_title":   "Got it",
		"cookie_expire_time": "30",
		"style":              notice.Input{"type": "pop_up", "width": "600"},
		"color":              notice.Input{"notice_background": "rgba(0,0,0,.5)"},
	})
	require.NoError(t, repo.Save(ctx, saved.Input(), 3))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)

	rec, err := repo.Raw(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.UpdatedBy.Int64)
	assert.Contains(t, string(rec.Value), `"accept_btn_title":"Got it"`)
}

func TestRepository_LoadSanitizesStoredValue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, OptionName,
		[]byte(`{"notice_text":"<script>x</script>Hi","cookie_expire_time":-4,"style":{"type":"weird"}}`), 0))

	cfg, err := NewRepository(store, notice.NewValidator()).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "Hi", cfg.NoticeText)
	assert.Equal(t, 0, cfg.CookieExpireTime)
	assert.Equal(t, notice.TypeCustomWidth, cfg.Style.Type)
	assert.Equal(t, notice.DefaultAcceptBtnTitle, cfg.AcceptBtnTitle)
}

func TestRepository_CorruptValueMeansDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, OptionName, []byte(`not json`), 0))

	cfg, err := NewRepository(store, notice.NewValidator()).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestRepository_StoreErrors(t *testing.T) {
	boom := errors.New("db down")
	repo := NewRepository(failingStore{err: boom}, notice.NewValidator())

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = repo.LoadOrDefault(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, repo.Save(context.Background(), notice.Default().Input(), 1), boom)
}
