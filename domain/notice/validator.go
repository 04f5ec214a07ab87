package notice

import (
	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/microcosm-cc/bluemonday"
)

// Caller is whoever submits the settings form.
type Caller interface {
	Can(capability string) bool
}

// Validator turns raw settings input into a sanitized Configuration.
// It is safe for concurrent use.
type Validator struct {
	richText  *bluemonday.Policy
	plainText *bluemonday.Policy
	log       logger.Logger
}

// NewValidator builds the sanitizing policies once.
func NewValidator() *Validator {
	return &Validator{
		richText:  newRichTextPolicy(),
		plainText: bluemonday.StrictPolicy(),
		log:       logger.Get().WithComponent("notice_validator"),
	}
}

// newRichTextPolicy allows what the notice editor produces: inline formatting,
// paragraph alignment and links.
func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("strong", "em", "b", "i", "u", "s", "span", "br", "p")
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right", "justify").OnElements("p", "span", "div")
	p.AllowRelativeURLs(true)
	return p
}

// SanitizeFor sanitizes in on behalf of caller. When caller lacks the
// manage_options capability the input is returned untouched and ok is false;
// nothing is defaulted or validated in that case.
func (v *Validator) SanitizeFor(caller Caller, in Input) (out Input, ok bool) {
	if caller == nil || !caller.Can(CapabilityManageOptions) {
		v.log.Warn("Settings sanitize refused for caller without capability",
			logger.Capability(CapabilityManageOptions))
		return in, false
	}
	return v.Sanitize(in).Input(), true
}

// Sanitize validates every field of in. Missing fields get their defaults,
// so the result is always complete. Sanitize is idempotent.
func (v *Validator) Sanitize(in Input) Configuration {
	def := Default()
	cfg := Configuration{
		NoticeText:       v.richTextField(in, "notice_text", def.NoticeText),
		AcceptBtnTitle:   v.textField(in, "accept_btn_title", def.AcceptBtnTitle),
		ShowCloseBtn:     boolField(in, "show_close_btn", def.ShowCloseBtn),
		ShowCookieIcon:   boolField(in, "show_cookie_icon", def.ShowCookieIcon),
		CookieExpireTime: absIntField(in, "cookie_expire_time", def.CookieExpireTime),
		CustomCSS:        textareaField(in, "custom_css", def.CustomCSS),
	}

	style := in.group("style")
	cfg.Style = StyleOptions{
		Type:                noticeTypeField(v.textField(style, "type", string(def.Style.Type))),
		Width:               absIntField(style, "width", def.Style.Width),
		FullwidthPosition:   v.textField(style, "fullwidth_position", def.Style.FullwidthPosition),
		CustomwidthPosition: v.textField(style, "customwidth_position", def.Style.CustomwidthPosition),
		EnableBgOverlay:     boolField(style, "enable_bg_overlay", def.Style.EnableBgOverlay),
		TopOffset:           absIntField(style, "top_offset", def.Style.TopOffset),
		RightOffset:         absIntField(style, "right_offset", def.Style.RightOffset),
		BottomOffset:        absIntField(style, "bottom_offset", def.Style.BottomOffset),
		LeftOffset:          absIntField(style, "left_offset", def.Style.LeftOffset),
	}

	// Positions are kept as sanitized text even when they are not a known
	// member, unlike the notice type which falls back to custom_width.
	if !IsFullwidthPosition(cfg.Style.FullwidthPosition) {
		v.log.Warn("Unknown full width position kept as is",
			logger.String("fullwidth_position", cfg.Style.FullwidthPosition))
	}
	if !IsCustomwidthPosition(cfg.Style.CustomwidthPosition) {
		v.log.Warn("Unknown custom width position kept as is",
			logger.String("customwidth_position", cfg.Style.CustomwidthPosition))
	}

	color := in.group("color")
	for _, f := range colorFields {
		raw, ok := color.lookup(f.key)
		if !ok {
			*f.ptr(&cfg.Color) = f.def
			continue
		}
		if f.hex {
			*f.ptr(&cfg.Color) = hexColor(toString(raw))
		} else {
			*f.ptr(&cfg.Color) = v.plainText.Sanitize(cleanText(toString(raw)))
		}
	}

	return cfg
}

// RichText applies the notice markup policy to s.
func (v *Validator) RichText(s string) string {
	return v.richText.Sanitize(s)
}

func (v *Validator) richTextField(in Input, key, def string) string {
	raw, ok := in.lookup(key)
	if !ok {
		return def
	}
	return v.richText.Sanitize(toString(raw))
}

// textField strips markup, escapes what remains and collapses whitespace.
func (v *Validator) textField(in Input, key, def string) string {
	raw, ok := in.lookup(key)
	if !ok {
		return def
	}
	return collapseSpace(v.plainText.Sanitize(cleanText(toString(raw))))
}

func noticeTypeField(s string) NoticeType {
	switch t := NoticeType(s); t {
	case TypeFullWidth, TypeCustomWidth, TypePopUp:
		return t
	}
	return TypeCustomWidth
}

func boolField(in Input, key string, def bool) bool {
	raw, ok := in.lookup(key)
	if !ok {
		return def
	}
	return toBool(raw)
}

func absIntField(in Input, key string, def int) int {
	raw, ok := in.lookup(key)
	if !ok {
		return def
	}
	return toAbsInt(raw)
}

func textareaField(in Input, key, def string) string {
	raw, ok := in.lookup(key)
	if !ok {
		return def
	}
	return stripTags(toString(raw))
}
