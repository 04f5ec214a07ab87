package notice

// NoticeType is the layout of the notice.
type NoticeType string

const (
	TypeFullWidth   NoticeType = "full_width"
	TypeCustomWidth NoticeType = "custom_width"
	TypePopUp       NoticeType = "pop_up"
)

// Positions for full width notices
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
)

// Positions for custom width notices
const (
	PositionTopLeft      = "top_left"
	PositionTopCenter    = "top_center"
	PositionTopRight     = "top_right"
	PositionBottomLeft   = "bottom_left"
	PositionBottomCenter = "bottom_center"
	PositionBottomRight  = "bottom_right"
)

// CapabilityManageOptions is required to change the notice settings.
const CapabilityManageOptions = "manage_options"

// DismissCookieName is the browser cookie set once a visitor accepts or closes the notice.
const DismissCookieName = "s_gdpr_c_c_cookie"

// Input is raw, untyped settings input as submitted by the admin form.
// The "style" and "color" groups are nested maps.
type Input map[string]interface{}

// Configuration is the sanitized notice settings record.
type Configuration struct {
	NoticeText       string       `json:"notice_text"`
	AcceptBtnTitle   string       `json:"accept_btn_title"`
	ShowCloseBtn     bool         `json:"show_close_btn"`
	ShowCookieIcon   bool         `json:"show_cookie_icon"`
	CookieExpireTime int          `json:"cookie_expire_time"`
	Style            StyleOptions `json:"style"`
	Color            ColorOptions `json:"color"`
	CustomCSS        string       `json:"custom_css"`
}

// StyleOptions holds layout settings.
type StyleOptions struct {
	Type                NoticeType `json:"type"`
	Width               int        `json:"width"`
	FullwidthPosition   string     `json:"fullwidth_position"`
	CustomwidthPosition string     `json:"customwidth_position"`
	EnableBgOverlay     bool       `json:"enable_bg_overlay"`
	TopOffset           int        `json:"top_offset"`
	RightOffset         int        `json:"right_offset"`
	BottomOffset        int        `json:"bottom_offset"`
	LeftOffset          int        `json:"left_offset"`
}

// ColorOptions holds every color of the notice.
type ColorOptions struct {
	NoticeBgOverlayColor                   string `json:"notice_bg_overlay_color"`
	NoticeBackground                       string `json:"notice_background"`
	NoticeText                             string `json:"notice_text"`
	NoticeLinkColor                        string `json:"notice_link_color"`
	NoticeLinkHoverColor                   string `json:"notice_link_hover_color"`
	NoticeCookieIconColor                  string `json:"notice_cookie_icon_color"`
	NoticeComplianceButtonBg               string `json:"notice_compliance_button_bg"`
	NoticeComplianceButtonHoverBgColor     string `json:"notice_compliance_button_hover_bg_color"`
	NoticeComplianceButtonBorderColor      string `json:"notice_compliance_button_border_color"`
	NoticeComplianceButtonHoverBorderColor string `json:"notice_compliance_button_hover_border_color"`
	NoticeComplianceButtonTextColor        string `json:"notice_compliance_button_text_color"`
	NoticeComplianceButtonHoverTextColor   string `json:"notice_compliance_button_hover_text_color"`
	NoticeBoxCloseBtnBgColor               string `json:"notice_box_close_btn_bg_color"`
	NoticeBoxCloseBtnBgHoverColor          string `json:"notice_box_close_btn_bg_hover_color"`
	NoticeBoxCloseBtnTextColor             string `json:"notice_box_close_btn_text_color"`
	NoticeBoxCloseBtnHoverTextColor        string `json:"notice_box_close_btn_hover_text_color"`
}

// colorField describes one color setting. Hex fields must be a valid hex color,
// the others accept free text so rgba() values work.
type colorField struct {
	key   string
	label string
	hex   bool
	def   string
	ptr   func(*ColorOptions) *string
}

var colorFields = []colorField{
	{"notice_bg_overlay_color", "Background Overlay Color", false, "rgba(0,0,0,0.8)", func(c *ColorOptions) *string { return &c.NoticeBgOverlayColor }},
	{"notice_background", "Notice Background Color", false, "#fbf01e", func(c *ColorOptions) *string { return &c.NoticeBackground }},
	{"notice_text", "Notice Text Color", true, "#222222", func(c *ColorOptions) *string { return &c.NoticeText }},
	{"notice_link_color", "Notice Link Color", true, "#222222", func(c *ColorOptions) *string { return &c.NoticeLinkColor }},
	{"notice_link_hover_color", "Notice Link Hover Color", true, "#4CC500", func(c *ColorOptions) *string { return &c.NoticeLinkHoverColor }},
	{"notice_cookie_icon_color", "Cookie Icon Color", true, "#222222", func(c *ColorOptions) *string { return &c.NoticeCookieIconColor }},
	{"notice_compliance_button_bg", "Accept Button Background Color", false, "#222222", func(c *ColorOptions) *string { return &c.NoticeComplianceButtonBg }},
	{"notice_compliance_button_hover_bg_color", "Accept Button Hover Background Color", false, "#4cc500", func(c *ColorOptions) *string { return &c.NoticeComplianceButtonHoverBgColor }},
	{"notice_compliance_button_border_color", "Accept Button Border Color", false, "#222222", func(c *ColorOptions) *string { return &c.NoticeComplianceButtonBorderColor }},
	{"notice_compliance_button_hover_border_color", "Accept Button Hover Border Color", false, "#4cc500", func(c *ColorOptions) *string { return &c.NoticeComplianceButtonHoverBorderColor }},
	{"notice_compliance_button_text_color", "Accept Button Text Color", true, "#ffffff", func(c *ColorOptions) *string { return &c.NoticeComplianceButtonTextColor }},
	{"notice_compliance_button_hover_text_color", "Accept Button Hover Text Color", true, "#ffffff", func(c *ColorOptions) *string { return &c.NoticeComplianceButtonHoverTextColor }},
	{"notice_box_close_btn_bg_color", "Close Button Background Color", false, "#222222", func(c *ColorOptions) *string { return &c.NoticeBoxCloseBtnBgColor }},
	{"notice_box_close_btn_bg_hover_color", "Close Button Hover Background Color", false, "#4cc500", func(c *ColorOptions) *string { return &c.NoticeBoxCloseBtnBgHoverColor }},
	{"notice_box_close_btn_text_color", "Close Button Text Color", true, "#ffffff", func(c *ColorOptions) *string { return &c.NoticeBoxCloseBtnTextColor }},
	{"notice_box_close_btn_hover_text_color", "Close Button Hover Text Color", true, "#ffffff", func(c *ColorOptions) *string { return &c.NoticeBoxCloseBtnHoverTextColor }},
}

// ColorValue is a color setting with its form metadata, used by the settings page.
type ColorValue struct {
	Key   string
	Label string
	Alpha bool
	Value string
}

// Values lists the colors in form order.
func (c ColorOptions) Values() []ColorValue {
	out := make([]ColorValue, 0, len(colorFields))
	for _, f := range colorFields {
		out = append(out, ColorValue{Key: f.key, Label: f.label, Alpha: !f.hex, Value: *f.ptr(&c)})
	}
	return out
}

const rawDefaultNoticeText = `Our website uses cookies to provide you the best experience. However, by continuing to use our website, you agree to our use of cookies. For more information, read our <a href="#">Cookie Policy</a>.`

// DefaultNoticeText is the built-in notice sentence, normalized by the rich text policy
// so that sanitizing the default record is a no-op.
var DefaultNoticeText = newRichTextPolicy().Sanitize(rawDefaultNoticeText)

const (
	DefaultAcceptBtnTitle = "Accept"
	DefaultWidth          = 450
	DefaultOffset         = 30
)

// Default returns the record used when nothing has been saved yet.
func Default() Configuration {
	cfg := Configuration{
		NoticeText:       DefaultNoticeText,
		AcceptBtnTitle:   DefaultAcceptBtnTitle,
		ShowCloseBtn:     true,
		ShowCookieIcon:   true,
		CookieExpireTime: 0,
		Style: StyleOptions{
			Type:                TypeCustomWidth,
			Width:               DefaultWidth,
			FullwidthPosition:   PositionTop,
			CustomwidthPosition: PositionBottomRight,
			EnableBgOverlay:     true,
			TopOffset:           DefaultOffset,
			RightOffset:         DefaultOffset,
			BottomOffset:        DefaultOffset,
			LeftOffset:          DefaultOffset,
		},
		CustomCSS: "",
	}
	for _, f := range colorFields {
		*f.ptr(&cfg.Color) = f.def
	}
	return cfg
}

// Input returns the record in its persisted map form.
func (c Configuration) Input() Input {
	colors := Input{}
	for _, f := range colorFields {
		colors[f.key] = *f.ptr(&c.Color)
	}
	return Input{
		"notice_text":        c.NoticeText,
		"accept_btn_title":   c.AcceptBtnTitle,
		"show_close_btn":     c.ShowCloseBtn,
		"show_cookie_icon":   c.ShowCookieIcon,
		"cookie_expire_time": c.CookieExpireTime,
		"style": Input{
			"type":                 string(c.Style.Type),
			"width":                c.Style.Width,
			"fullwidth_position":   c.Style.FullwidthPosition,
			"customwidth_position": c.Style.CustomwidthPosition,
			"enable_bg_overlay":    c.Style.EnableBgOverlay,
			"top_offset":           c.Style.TopOffset,
			"right_offset":         c.Style.RightOffset,
			"bottom_offset":        c.Style.BottomOffset,
			"left_offset":          c.Style.LeftOffset,
		},
		"color":      colors,
		"custom_css": c.CustomCSS,
	}
}

// IsFullwidthPosition reports whether p is a known full width position.
func IsFullwidthPosition(p string) bool {
	return p == PositionTop || p == PositionBottom
}

// IsCustomwidthPosition reports whether p is a known custom width position.
func IsCustomwidthPosition(p string) bool {
	switch p {
	case PositionTopLeft, PositionTopCenter, PositionTopRight,
		PositionBottomLeft, PositionBottomCenter, PositionBottomRight:
		return true
	}
	return false
}
