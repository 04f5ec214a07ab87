package banner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loaderFunc func(ctx context.Context) (*notice.Configuration, error)

func (f loaderFunc) Load(ctx context.Context) (*notice.Configuration, error) { return f(ctx) }

func fixed(cfg *notice.Configuration) ConfigLoader {
	return loaderFunc(func(context.Context) (*notice.Configuration, error) { return cfg, nil })
}

func serve(loader ConfigLoader, path string, cookie bool) *httptest.ResponseRecorder {
	h := NewHandler(loader, notice.NewRenderer())
	e := echo.New()
	e.GET("/cookie-notice", h.BannerHandler)
	e.GET("/cookie-notice/style.css", h.StyleHandler)
	e.GET("/cookie-notice/display", h.DisplayHandler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie {
		req.AddCookie(&http.Cookie{Name: notice.DismissCookieName, Value: "1"})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBanner_Defaults(t *testing.T) {
	rec := serve(fixed(nil), "/cookie-notice", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "private, no-store", rec.Header().Get(echo.HeaderCacheControl))
	assert.Contains(t, rec.Body.String(), "sgcc-custom-width sgcc-position-bottom-right")
	assert.Contains(t, rec.Body.String(), ">Accept</button>")
}

func TestBanner_Dismissed(t *testing.T) {
	for _, path := range []string{"/cookie-notice", "/cookie-notice/style.css", "/cookie-notice/display"} {
		rec := serve(fixed(nil), path, true)
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Zero(t, rec.Body.Len(), path)
	}
}

func TestStyle(t *testing.T) {
	cfg := notice.Default()
	cfg.Style.Type = notice.TypePopUp
	cfg.CustomCSS = ".x{color:red}"

	rec := serve(fixed(&cfg), "/cookie-notice/style.css", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, notice.Stylesheet(cfg), rec.Body.String())
	assert.Contains(t, rec.Body.String(), ".s-gdpr-c-c-bg-overlay{")
}

func TestDisplay(t *testing.T) {
	cfg := notice.Default()
	cfg.Style.Type = notice.TypeFullWidth
	cfg.Style.FullwidthPosition = notice.PositionBottom

	rec := serve(fixed(&cfg), "/cookie-notice/display", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var p notice.DisplayParameters
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "sgcc-full-width sgcc-position-bottom", p.WrapperClass)
	assert.True(t, p.IconAfterText)
	assert.Equal(t, notice.TypeFullWidth, p.NoticeType)
}

func TestBanner_LoadFailureRendersDefaults(t *testing.T) {
	failing := loaderFunc(func(context.Context) (*notice.Configuration, error) {
		return nil, errors.New("db down")
	})
	rec := serve(failing, "/cookie-notice", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sgcc-custom-width")
}
