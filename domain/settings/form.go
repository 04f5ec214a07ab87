package settings

import (
	"net/url"
	"strings"

	"github.com/Triaksa-Space/cookie-notice/domain/notice"
	"github.com/Triaksa-Space/cookie-notice/domain/options"
)

// decodeForm turns bracketed form keys such as "style[type]" or
// "simple_gdpr_cookie_compliance_options[color][notice_text]" into nested
// Input groups. Values stay as []string so the last one wins when a hidden
// fallback precedes a checkbox.
func decodeForm(values url.Values) notice.Input {
	in := notice.Input{}
	for key, vals := range values {
		path := formPath(key)
		if len(path) == 0 {
			continue
		}
		if path[0] == options.OptionName {
			path = path[1:]
			if len(path) == 0 {
				continue
			}
		}
		put(in, path, vals)
	}
	return in
}

// formPath splits "a[b][c]" into a, b, c. Malformed keys give nil.
func formPath(key string) []string {
	head, rest, found := strings.Cut(key, "[")
	if head == "" {
		return nil
	}
	path := []string{head}
	if !found {
		return path
	}
	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return nil
		}
		end := strings.IndexByte(rest, ']')
		if end <= 1 {
			return nil
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path
}

func put(in notice.Input, path []string, vals []string) {
	for _, key := range path[:len(path)-1] {
		next, ok := in[key].(notice.Input)
		if !ok {
			next = notice.Input{}
			in[key] = next
		}
		in = next
	}
	in[path[len(path)-1]] = vals
}
