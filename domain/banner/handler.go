package banner

import (
	"bytes"
	"context"
	"net/http"

	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ConfigLoader returns the saved settings, or nil when nothing is saved.
type ConfigLoader interface {
	Load(ctx context.Context) (*notice.Configuration, error)
}

// Handler serves the public notice.
type Handler struct {
	loader   ConfigLoader
	renderer *notice.Renderer
}

func NewHandler(loader ConfigLoader, renderer *notice.Renderer) *Handler {
	return &Handler{loader: loader, renderer: renderer}
}

func dismissed(c echo.Context) bool {
	_, err := c.Cookie(notice.DismissCookieName)
	return err == nil
}

// display loads the settings once for the request. A store failure is logged
// and the defaults are shown, so visitors always get a notice.
func (h *Handler) display(c echo.Context) notice.DisplayParameters {
	ctx := c.Request().Context()
	cfg, err := h.loader.Load(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to load notice settings, rendering defaults", err)
		cfg = nil
	}
	return h.renderer.Derive(cfg)
}

func noStore(c echo.Context) {
	h := c.Response().Header()
	h.Set(echo.HeaderCacheControl, "private, no-store")
	h.Add(echo.HeaderVary, echo.HeaderCookie)
}

// BannerHandler renders the notice markup. Visitors holding the dismissal
// cookie get 204.
func (h *Handler) BannerHandler(c echo.Context) error {
	noStore(c)
	if dismissed(c) {
		return c.NoContent(http.StatusNoContent)
	}

	var buf bytes.Buffer
	if err := h.renderer.Banner(&buf, h.display(c)); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeRenderFailed, "Failed to render notice", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// StyleHandler serves the generated stylesheet.
func (h *Handler) StyleHandler(c echo.Context) error {
	noStore(c)
	if dismissed(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(h.display(c).CSS))
}

// DisplayHandler returns the display parameters as JSON for client side
// rendering, or 204 once the notice is dismissed.
func (h *Handler) DisplayHandler(c echo.Context) error {
	noStore(c)
	if dismissed(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return apperrors.RespondWithSuccess(c, h.display(c))
}
