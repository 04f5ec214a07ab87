package notice

import (
	"embed"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/banner.html
var templateFS embed.FS

// DisplayParameters is everything the banner template needs.
type DisplayParameters struct {
	Notice           string     `json:"notice"`
	ButtonTitle      string     `json:"button_title"`
	ShowCloseBtn     bool       `json:"show_close_btn"`
	ShowCookieIcon   bool       `json:"show_cookie_icon"`
	NoticeType       NoticeType `json:"notice_type"`
	WrapperClass     string     `json:"wrapper_class"`
	EnableBgOverlay  bool       `json:"enable_bg_overlay"`
	IconAfterText    bool       `json:"icon_after_text"`
	CookieExpireTime int        `json:"cookie_expire_time"`
	CSS              string     `json:"css"`
}

// Renderer derives display parameters and renders the banner markup.
type Renderer struct {
	richText *bluemonday.Policy
	banner   *template.Template
}

func NewRenderer() *Renderer {
	r := &Renderer{richText: newRichTextPolicy()}
	r.banner = template.Must(template.New("banner.html").Funcs(template.FuncMap{
		"plain":  html.UnescapeString,
		"notice": r.trustedNotice,
	}).ParseFS(templateFS, "templates/banner.html"))
	return r
}

// Derive maps a sanitized record to display parameters. A nil record means
// nothing has been saved and the defaults apply.
func (r *Renderer) Derive(cfg *Configuration) DisplayParameters {
	c := Default()
	if cfg != nil {
		c = *cfg
	}
	return DisplayParameters{
		Notice:           c.NoticeText,
		ButtonTitle:      c.AcceptBtnTitle,
		ShowCloseBtn:     c.ShowCloseBtn,
		ShowCookieIcon:   c.ShowCookieIcon,
		NoticeType:       c.Style.Type,
		WrapperClass:     WrapperClass(c.Style),
		EnableBgOverlay:  c.Style.Type == TypePopUp && c.Style.EnableBgOverlay,
		IconAfterText:    c.Style.Type == TypeFullWidth,
		CookieExpireTime: c.CookieExpireTime,
		CSS:              Stylesheet(c),
	}
}

// WrapperClass returns the layout classes for the notice wrapper, for example
// "sgcc-custom-width sgcc-position-bottom-right". An unknown type gives "" and an
// unknown position leaves out the position class.
func WrapperClass(s StyleOptions) string {
	var typeClass, position string
	switch s.Type {
	case TypeFullWidth:
		typeClass = "sgcc-full-width"
		if IsFullwidthPosition(s.FullwidthPosition) {
			position = s.FullwidthPosition
		}
	case TypeCustomWidth:
		typeClass = "sgcc-custom-width"
		if IsCustomwidthPosition(s.CustomwidthPosition) {
			position = s.CustomwidthPosition
		}
	case TypePopUp:
		typeClass = "sgcc-pop-up"
		position = "center"
	default:
		return ""
	}
	if position == "" {
		return typeClass
	}
	return typeClass + " sgcc-position-" + strings.ReplaceAll(position, "_", "-")
}

// Banner writes the notice markup for p.
func (r *Renderer) Banner(w io.Writer, p DisplayParameters) error {
	return r.banner.Execute(w, p)
}

// trustedNotice runs the notice through the rich text policy again before it is
// emitted unescaped, so records written by other tools cannot inject markup.
func (r *Renderer) trustedNotice(s string) template.HTML {
	return template.HTML(r.richText.Sanitize(s))
}
