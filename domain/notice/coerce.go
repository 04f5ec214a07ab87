package notice

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	hexColorPattern   = regexp.MustCompile(`^#([A-Fa-f0-9]{3}){1,2}$`)
	leadingIntPattern = regexp.MustCompile(`^[-+]?[0-9]+`)
	// script and style blocks lose their content, every other tag just the markup
	tagBlockPattern = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)\s*>`)
	tagPattern      = regexp.MustCompile(`(?s)<[^>]*>`)
)

// lookup treats nil values as absent, like a form field that was never sent.
func (in Input) lookup(key string) (interface{}, bool) {
	v, ok := in[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// group returns the nested group under key, or nil when it is missing or not a map.
func (in Input) group(key string) Input {
	switch g := in[key].(type) {
	case Input:
		return g
	case map[string]interface{}:
		return Input(g)
	case map[string]string:
		out := make(Input, len(g))
		for k, v := range g {
			out[k] = v
		}
		return out
	}
	return nil
}

func toString(v interface{}) string {
	if list, ok := v.([]string); ok {
		if len(list) == 0 {
			return ""
		}
		return list[len(list)-1]
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// toBool accepts true, non-zero numbers and the strings "1", "true", "on" and "yes".
func toBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string, []string:
		switch strings.ToLower(strings.TrimSpace(toString(b))) {
		case "1", "true", "on", "yes":
			return true
		}
		return false
	}
	n, err := cast.ToFloat64E(v)
	return err == nil && n != 0
}

// toAbsInt parses the leading integer of v. Negative and non-numeric input give 0,
// values past MaxInt32 are capped.
func toAbsInt(v interface{}) int {
	var n int64
	switch x := v.(type) {
	case string, []string:
		m := leadingIntPattern.FindString(strings.TrimSpace(toString(x)))
		if m == "" {
			return 0
		}
		parsed, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			if m[0] == '-' {
				return 0
			}
			return math.MaxInt32
		}
		n = parsed
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		parsed, err := cast.ToInt64E(v)
		if err != nil {
			return 0
		}
		n = parsed
	}
	switch {
	case n < 0:
		return 0
	case n > math.MaxInt32:
		return math.MaxInt32
	}
	return int(n)
}

// hexColor returns s when it is a #RGB or #RRGGBB color, otherwise "".
func hexColor(s string) string {
	s = strings.TrimSpace(s)
	if hexColorPattern.MatchString(s) {
		return s
	}
	return ""
}

func cleanText(s string) string {
	return strings.ToValidUTF8(s, "")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripTags removes markup but keeps line breaks and characters such as > and
// quotes, which CSS needs. No '<' survives, so the result cannot open a tag.
func stripTags(s string) string {
	s = cleanText(s)
	s = tagBlockPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(s)
}
