package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/options"
	"github.com/Triaksa-Space/cookie-notice/middleware"
	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenRepo struct{}

func (brokenRepo) LoadOrDefault(context.Context) (notice.Configuration, error) {
	return notice.Configuration{}, errors.New("db down")
}

func (brokenRepo) Save(context.Context, notice.Input, int64) error { return errors.New("db down") }

func newServer(t *testing.T, repo Repository, principal *middleware.Principal) *echo.Echo {
	t.Helper()
	h := NewHandler(repo, notice.NewValidator())

	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger.Get())
	g := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if principal != nil {
				middleware.SetPrincipal(c, *principal)
			}
			return next(c)
		}
	})
	g.GET(PagePath, h.PageHandler)
	g.GET(PagePath+"/settings", h.GetSettingsHandler)
	g.POST(PagePath+"/settings", h.SaveSettingsHandler)
	return e
}

func send(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, PagePath+"/settings", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, PagePath+"/settings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

var admin = &middleware.Principal{UserID: 7, RoleID: middleware.RoleSuperAdmin}

func newRepo() *options.Repository {
	return options.NewRepository(options.NewMemoryStore(), notice.NewValidator())
}

func TestGetSettings_DefaultsWhenEmpty(t *testing.T) {
	e := newServer(t, newRepo(), admin)
	rec := send(e, httptest.NewRequest(http.MethodGet, PagePath+"/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got notice.Configuration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, notice.Default(), got)
}

func TestSaveSettings_JSON(t *testing.T) {
	repo := newRepo()
	e := newServer(t, repo, admin)

	rec := send(e, jsonRequest(`{"accept_btn_title":" OK ","cookie_expire_time":"-3","style":{"type":"full_width","fullwidth_position":"bottom"}}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var got notice.Configuration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "OK", got.AcceptBtnTitle)
	assert.Equal(t, 0, got.CookieExpireTime)
	assert.Equal(t, notice.TypeFullWidth, got.Style.Type)

	stored, err := repo.LoadOrDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	raw, err := repo.Raw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), raw.UpdatedBy.Int64)
}

func TestSaveSettings_FormRedirects(t *testing.T) {
	repo := newRepo()
	e := newServer(t, repo, admin)
	name := options.OptionName

	rec := send(e, formRequest(url.Values{
		name + "[notice_text]":                  {"Hello <b>there</b>"},
		name + "[show_close_btn]":               {"0"},
		name + "[show_cookie_icon]":             {"0", "1"},
		name + "[style][type]":                  {"pop_up"},
		name + "[style][enable_bg_overlay]":     {"0"},
		name + "[color][notice_background]":     {"rgba(1,1,1,0.3)"},
		name + "[color][notice_link_color]":     {"blue"},
		"_csrf":                                 {"token"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, PagePath+"?updated=1", rec.Header().Get(echo.HeaderLocation))

	cfg, err := repo.LoadOrDefault(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello <b>there</b>", cfg.NoticeText)
	assert.False(t, cfg.ShowCloseBtn)
	assert.True(t, cfg.ShowCookieIcon)
	assert.Equal(t, notice.TypePopUp, cfg.Style.Type)
	assert.False(t, cfg.Style.EnableBgOverlay)
	assert.Equal(t, "rgba(1,1,1,0.3)", cfg.Color.NoticeBackground)
	assert.Equal(t, "", cfg.Color.NoticeLinkColor)
	// fields the form did not send fall back to their defaults
	assert.Equal(t, notice.DefaultAcceptBtnTitle, cfg.AcceptBtnTitle)
	assert.Equal(t, notice.DefaultWidth, cfg.Style.Width)
}

func TestSaveSettings_UnauthorizedIsNotPersisted(t *testing.T) {
	for name, principal := range map[string]*middleware.Principal{
		"anonymous": nil,
		"plain user": {UserID: 9, RoleID: middleware.RoleUser},
	} {
		t.Run(name, func(t *testing.T) {
			repo := newRepo()
			e := newServer(t, repo, principal)

			rec := send(e, jsonRequest(`{"accept_btn_title":"Hacked"}`))
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), apperrors.ErrCodeMissingCapability)

			_, err := repo.Raw(context.Background())
			assert.ErrorIs(t, err, options.ErrNotFound)
		})
	}
}

func TestSaveSettings_BadJSON(t *testing.T) {
	e := newServer(t, newRepo(), admin)
	rec := send(e, jsonRequest(`["not","an","object"]`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.ErrCodeInvalidFormat)
}

func TestSettings_StoreFailures(t *testing.T) {
	e := newServer(t, brokenRepo{}, admin)

	rec := send(e, httptest.NewRequest(http.MethodGet, PagePath+"/settings", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.ErrCodeOptionsLoadFailed)

	rec = send(e, jsonRequest(`{}`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.ErrCodeOptionsSaveFailed)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestPage(t *testing.T) {
	repo := newRepo()
	v := notice.NewValidator()
	saved := v.Sanitize(notice.Input{
		"accept_btn_title": "Fish & Chips",
		"style":            notice.Input{"type": "pop_up"},
	})
	require.NoError(t, repo.Save(context.Background(), saved.Input(), 1))

	e := newServer(t, repo, admin)
	rec := send(e, httptest.NewRequest(http.MethodGet, PagePath+"?updated=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "Settings saved.")
	assert.Contains(t, body, `name="simple_gdpr_cookie_compliance_options[style][type]"`)
	assert.Contains(t, body, `<option value="pop_up" selected>Pop Up</option>`)
	assert.Contains(t, body, `value="Fish &amp; Chips"`)
	assert.Contains(t, body, `id="s_gdpr_c_n_customwidth" class="sgdpr_hidden"`)
	assert.Contains(t, body, `id="s_gdpr_c_n_enable_bg_overlay" class=""`)
	assert.Equal(t, len(notice.Default().Color.Values()), strings.Count(body, `class="s_gdpr_c_n_color"`))
	assert.NotContains(t, body, `s_gdpr_c_n_group_wrapper sgdpr_hidden`)
}
