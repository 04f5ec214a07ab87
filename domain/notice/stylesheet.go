package notice

import (
	"strconv"
	"strings"
)

const wrapperSelector = ".sgcc-main-wrapper"

type declaration struct {
	property string
	value    string
}

// Stylesheet generates the notice CSS for cfg. Declarations with an empty value
// are dropped, and rules left without declarations are not written.
// custom_css is appended last, unchanged.
func Stylesheet(cfg Configuration) string {
	var b strings.Builder
	c := cfg.Color
	s := cfg.Style

	wrapper := []declaration{
		{"background-color", c.NoticeBackground},
		{"color", c.NoticeText},
	}
	if s.Type != TypeFullWidth {
		wrapper = append(wrapper, declaration{"width", px(s.Width)})
	}
	if s.Type == TypeCustomWidth {
		wrapper = append(wrapper, offsets(s)...)
	}
	writeRule(&b, wrapperSelector, wrapper...)

	writeRule(&b, wrapperSelector+" .message-block a", declaration{"color", c.NoticeLinkColor})
	writeRule(&b, wrapperSelector+" .message-block a:hover", declaration{"color", c.NoticeLinkHoverColor})
	writeRule(&b, wrapperSelector+" .cookie-icon", declaration{"color", c.NoticeCookieIconColor})

	writeRule(&b, wrapperSelector+" .cookie-compliance-button",
		declaration{"background-color", c.NoticeComplianceButtonBg},
		declaration{"border-color", c.NoticeComplianceButtonBorderColor},
		declaration{"color", c.NoticeComplianceButtonTextColor},
	)
	writeRule(&b, wrapperSelector+" .cookie-compliance-button:hover",
		declaration{"background-color", c.NoticeComplianceButtonHoverBgColor},
		declaration{"border-color", c.NoticeComplianceButtonHoverBorderColor},
		declaration{"color", c.NoticeComplianceButtonHoverTextColor},
	)

	writeRule(&b, wrapperSelector+" .close",
		declaration{"background-color", c.NoticeBoxCloseBtnBgColor},
		declaration{"color", c.NoticeBoxCloseBtnTextColor},
	)
	writeRule(&b, wrapperSelector+" .close:hover",
		declaration{"background-color", c.NoticeBoxCloseBtnBgHoverColor},
		declaration{"color", c.NoticeBoxCloseBtnHoverTextColor},
	)

	if s.Type == TypePopUp && s.EnableBgOverlay {
		writeRule(&b, ".s-gdpr-c-c-bg-overlay", declaration{"background-color", c.NoticeBgOverlayColor})
	}

	if cfg.CustomCSS != "" {
		b.WriteString(cfg.CustomCSS)
		b.WriteByte('\n')
	}
	return b.String()
}

// offsets returns the edge distances that apply to a custom width position.
// Centered positions only get their vertical edge.
func offsets(s StyleOptions) []declaration {
	if !IsCustomwidthPosition(s.CustomwidthPosition) {
		return nil
	}
	vertical, horizontal, _ := strings.Cut(s.CustomwidthPosition, "_")

	var out []declaration
	switch vertical {
	case "top":
		out = append(out, declaration{"top", px(s.TopOffset)})
	case "bottom":
		out = append(out, declaration{"bottom", px(s.BottomOffset)})
	}
	switch horizontal {
	case "left":
		out = append(out, declaration{"left", px(s.LeftOffset)})
	case "right":
		out = append(out, declaration{"right", px(s.RightOffset)})
	}
	return out
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

func writeRule(b *strings.Builder, selector string, decls ...declaration) {
	var body strings.Builder
	for _, d := range decls {
		if d.value == "" {
			continue
		}
		body.WriteString(d.property)
		body.WriteByte(':')
		body.WriteString(d.value)
		body.WriteByte(';')
	}
	if body.Len() == 0 {
		return
	}
	b.WriteString(selector)
	b.WriteByte('{')
	b.WriteString(body.String())
	b.WriteString("}\n")
}
