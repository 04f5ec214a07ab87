package settings

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html"
	"html/template"
	"net/http"
	"strings"

	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/options"
	"github.com/Triaksa-Space/cookie-notice/middleware"
	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/labstack/echo/v4"
)

//go:embed templates/page.html
var templateFS embed.FS

// PagePath is where the settings form lives. Form posts redirect back here.
const PagePath = "/admin/cookie-notice"

// Repository loads and saves the settings record.
type Repository interface {
	LoadOrDefault(ctx context.Context) (notice.Configuration, error)
	Save(ctx context.Context, in notice.Input, updatedBy int64) error
}

type choice struct {
	Value string
	Label string
}

type pageData struct {
	Config               notice.Configuration
	OptionName           string
	CSRFToken            string
	Updated              bool
	OverlayVisible       bool
	Types                []choice
	FullwidthPositions   []choice
	CustomwidthPositions []choice
}

var (
	typeChoices = []choice{
		{string(notice.TypeFullWidth), "Full Width"},
		{string(notice.TypeCustomWidth), "Custom Width"},
		{string(notice.TypePopUp), "Pop Up"},
	}
	fullwidthChoices = []choice{
		{notice.PositionTop, "Top"},
		{notice.PositionBottom, "Bottom"},
	}
	customwidthChoices = []choice{
		{notice.PositionTopLeft, "Top Left"},
		{notice.PositionTopCenter, "Top Center"},
		{notice.PositionTopRight, "Top Right"},
		{notice.PositionBottomLeft, "Bottom Left"},
		{notice.PositionBottomCenter, "Bottom Center"},
		{notice.PositionBottomRight, "Bottom Right"},
	}
)

// Handler serves the admin settings page and API.
type Handler struct {
	repo      Repository
	validator *notice.Validator
	page      *template.Template
}

func NewHandler(repo Repository, validator *notice.Validator) *Handler {
	page := template.Must(template.New("page.html").Funcs(template.FuncMap{
		"plain": html.UnescapeString,
	}).ParseFS(templateFS, "templates/page.html"))
	return &Handler{repo: repo, validator: validator, page: page}
}

// PageHandler renders the settings form filled with the current record.
func (h *Handler) PageHandler(c echo.Context) error {
	cfg, err := h.repo.LoadOrDefault(c.Request().Context())
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeOptionsLoadFailed, "Failed to load settings", err)
	}

	token, _ := c.Get("csrf").(string)
	data := pageData{
		Config:               cfg,
		OptionName:           options.OptionName,
		CSRFToken:            token,
		Updated:              c.QueryParam("updated") == "1",
		OverlayVisible:       cfg.Style.Type == notice.TypePopUp && cfg.Style.EnableBgOverlay,
		Types:                typeChoices,
		FullwidthPositions:   fullwidthChoices,
		CustomwidthPositions: customwidthChoices,
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeRenderFailed, "Failed to render settings page", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// GetSettingsHandler returns the current record, or the defaults when nothing is saved.
func (h *Handler) GetSettingsHandler(c echo.Context) error {
	cfg, err := h.repo.LoadOrDefault(c.Request().Context())
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeOptionsLoadFailed, "Failed to load settings", err)
	}
	return apperrors.RespondWithSuccess(c, cfg)
}

// SaveSettingsHandler sanitizes the submitted settings and stores them. Callers
// without manage_options get 403 and nothing is written.
func (h *Handler) SaveSettingsHandler(c echo.Context) error {
	in, isForm, err := readInput(c)
	if err != nil {
		return err
	}

	var caller notice.Caller
	var userID int64
	if p, ok := middleware.PrincipalFromContext(c); ok {
		caller, userID = p, p.UserID
	}

	out, ok := h.validator.SanitizeFor(caller, in)
	if !ok {
		return apperrors.NewForbidden(apperrors.ErrCodeMissingCapability,
			"You don't have permission to change these settings")
	}

	ctx := c.Request().Context()
	if err := h.repo.Save(ctx, out, userID); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeOptionsSaveFailed, "Failed to save settings", err)
	}

	cfg := h.validator.Sanitize(out)
	logger.FromContext(ctx).Debug("Notice settings updated", logger.NoticeType(string(cfg.Style.Type)))
	if isForm {
		return c.Redirect(http.StatusSeeOther, PagePath+"?updated=1")
	}
	return apperrors.RespondWithSuccess(c, cfg)
}

// readInput decodes a JSON object or a urlencoded/multipart form body.
func readInput(c echo.Context) (notice.Input, bool, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var in notice.Input
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			return nil, false, apperrors.NewBadRequest(apperrors.ErrCodeInvalidFormat, "Request body must be a JSON object").
				WithDetail(err.Error())
		}
		if in == nil {
			in = notice.Input{}
		}
		return in, false, nil
	}

	values, err := c.FormParams()
	if err != nil {
		return nil, true, apperrors.NewBadRequest(apperrors.ErrCodeInvalidFormat, "Malformed form body")
	}
	return decodeForm(values), true, nil
}
