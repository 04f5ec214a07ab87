package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Triaksa-Space/cookie-notice/domain/banner"
	"github.com/Triaksa-Space/cookie-notice/domain/health"
	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/options"
	"github.com/Triaksa-Space/cookie-notice/domain/settings"
	"github.com/Triaksa-Space/cookie-notice/middleware"
	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/Triaksa-Space/cookie-notice/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "routes-secret"

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	validator := notice.NewValidator()
	repo := options.NewRepository(options.NewMemoryStore(), validator)

	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger.Get())
	RegisterRoutes(e, Deps{
		Banner:    banner.NewHandler(repo, notice.NewRenderer()),
		Settings:  settings.NewHandler(repo, validator),
		Health:    health.NewHandler("test"),
		JWTSecret: testSecret,
		RateLimiter: middleware.NewRateLimiterStore(middleware.RateLimiterConfig{
			Rate:  rate.Limit(100),
			Burst: 100,
		}),
	})
	return e
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWT(testSecret, 1, middleware.RoleSuperAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func send(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSaveSettings_BearerSkipsCSRF(t *testing.T) {
	e := newServer(t)

	req := httptest.NewRequest(http.MethodPost, settings.PagePath+"/settings",
		strings.NewReader(`{"accept_btn_title":"Got it"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken(t))
	rec := send(e, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(e, httptest.NewRequest(http.MethodGet, "/cookie-notice/display", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var p notice.DisplayParameters
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Got it", p.ButtonTitle)
}

func TestSaveSettings_CookieSessionNeedsCSRFToken(t *testing.T) {
	e := newServer(t)
	session := &http.Cookie{Name: middleware.AccessTokenCookie, Value: adminToken(t)}

	form := url.Values{"accept_btn_title": {"Sure"}}
	req := httptest.NewRequest(http.MethodPost, settings.PagePath+"/settings", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(session)
	assert.Equal(t, http.StatusBadRequest, send(e, req).Code)

	page := httptest.NewRequest(http.MethodGet, settings.PagePath, nil)
	page.AddCookie(session)
	rec := send(e, page)
	require.Equal(t, http.StatusOK, rec.Code)

	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			csrf = c
		}
	}
	require.NotNil(t, csrf)
	assert.Contains(t, rec.Body.String(), csrf.Value)

	form.Set("_csrf", csrf.Value)
	req = httptest.NewRequest(http.MethodPost, settings.PagePath+"/settings", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(session)
	req.AddCookie(&http.Cookie{Name: csrf.Name, Value: csrf.Value})
	rec = send(e, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, settings.PagePath+"?updated=1", rec.Header().Get(echo.HeaderLocation))
}

func TestSaveSettings_BodyLimitCoversCookieSession(t *testing.T) {
	e := newServer(t)

	form := url.Values{"custom_css": {strings.Repeat("a", 70*1024)}}
	req := httptest.NewRequest(http.MethodPost, settings.PagePath+"/settings", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: adminToken(t)})

	rec := send(e, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.ErrCodeBodyTooLarge)
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	e := newServer(t)
	for _, path := range []string{settings.PagePath, settings.PagePath + "/settings"} {
		rec := send(e, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
