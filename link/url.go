package link

import (
	"net/url"
	"strings"
)

// BuildURL joins baseURL with path and appends the encoded query.
//
// Static path segments are percent-encoded while URI template tokens such as
// {tilingSchemeId} and existing percent-escapes are copied verbatim, so a
// path built by document.MetadataRequest.ServiceURLPath is not encoded twice. Query
// values are always encoded, so f=text/html becomes f=text%2Fhtml.
func BuildURL(baseURL, path string, query url.Values) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))

	trimmed := strings.TrimLeft(path, "/")
	if trimmed != "" || strings.HasPrefix(path, "/") || baseURL == "" {
		b.WriteByte('/')
	}
	segments := strings.Split(trimmed, "/")
	for i, segment := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(escapeSegment(segment))
	}

	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}

// Query is a shorthand for a single-parameter query.
func Query(key, value string) url.Values {
	return url.Values{key: []string{value}}
}

// escapeSegment percent-encodes segment. URI template tokens and valid
// percent-escapes are copied verbatim, so escaping is idempotent.
func escapeSegment(segment string) string {
	var b strings.Builder
	start := 0
	flush := func(end int) {
		b.WriteString(url.PathEscape(segment[start:end]))
	}
	for i := 0; i < len(segment); {
		switch {
		case segment[i] == '{':
			closing := strings.IndexByte(segment[i:], '}')
			if closing < 0 {
				i++
				continue
			}
			flush(i)
			b.WriteString(segment[i : i+closing+1])
			i += closing + 1
			start = i
		case segment[i] == '%' && i+2 < len(segment) && isHex(segment[i+1]) && isHex(segment[i+2]):
			flush(i)
			b.WriteString(segment[i : i+3])
			i += 3
			start = i
		default:
			i++
		}
	}
	flush(len(segment))
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
