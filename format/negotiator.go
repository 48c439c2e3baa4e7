package format

import (
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Negotiator resolves requests to a Format. Formats are registered at startup
// and read concurrently afterwards.
type Negotiator struct {
	formats  []Format
	fallback Format
}

// NegotiatorOption configures a Negotiator.
type NegotiatorOption func(*Negotiator)

// WithFormats registers additional, extension-defined representations.
func WithFormats(formats ...Format) NegotiatorOption {
	return func(n *Negotiator) {
		for _, f := range formats {
			n.Register(f)
		}
	}
}

// WithDefault overrides the representation used when the request expresses
// no preference. It defaults to JSON.
func WithDefault(f Format) NegotiatorOption {
	return func(n *Negotiator) {
		if !f.IsZero() {
			n.fallback = f
		}
	}
}

// NewNegotiator returns a Negotiator that knows the built-in formats.
func NewNegotiator(opts ...NegotiatorOption) *Negotiator {
	n := &Negotiator{
		formats:  Defaults(),
		fallback: JSON,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Register adds f, replacing any format with the same name.
func (n *Negotiator) Register(f Format) {
	if f.IsZero() {
		return
	}
	for i, existing := range n.formats {
		if existing.Name == f.Name {
			n.formats[i] = f
			return
		}
	}
	n.formats = append(n.formats, f)
}

// Formats returns the registered formats in registration order.
func (n *Negotiator) Formats() []Format {
	out := make([]Format, len(n.formats))
	copy(out, n.formats)
	return out
}

// Lookup resolves an f value through the alias table.
func (n *Negotiator) Lookup(value string) (Format, bool) {
	for _, f := range n.formats {
		if f.Matches(value) {
			return f, true
		}
	}
	return Format{}, false
}

// Negotiate picks the representation for r among supported. An explicit f
// parameter wins, then the Accept header, then the default format.
func (n *Negotiator) Negotiate(r *http.Request, supported []Format) (Format, error) {
	if len(supported) == 0 {
		supported = n.formats
	}

	if r != nil && r.URL != nil {
		query := r.URL.Query()
		if query.Has(QueryParam) {
			value := query.Get(QueryParam)
			f, ok := n.Lookup(value)
			if !ok || !contains(supported, f) {
				return Format{}, &UnsupportedRepresentationError{Value: value, Supported: supported}
			}
			return f, nil
		}
	}

	if r != nil {
		if f, ok := negotiateAccept(r.Header.Get("Accept"), supported); ok {
			return f, nil
		}
	}

	if contains(supported, n.fallback) {
		return n.fallback, nil
	}
	return supported[0], nil
}

type acceptRange struct {
	mediaType string
	q         float64
	order     int
}

// negotiateAccept picks the supported format with the highest quality. The
// quality of a format comes from the most specific range matching it, so
// "application/json;q=0, */*" excludes JSON. Ties go to the range listed
// first, then to the order of supported.
func negotiateAccept(header string, supported []Format) (Format, bool) {
	if strings.TrimSpace(header) == "" {
		return Format{}, false
	}

	ranges := parseAccept(header)
	var (
		best      Format
		bestRange acceptRange
		found     bool
	)
	for _, f := range supported {
		ar, ok := preferredRange(ranges, f)
		if !ok || ar.q <= 0 {
			continue
		}
		if !found || ar.q > bestRange.q || (ar.q == bestRange.q && ar.order < bestRange.order) {
			best, bestRange, found = f, ar, true
		}
	}
	return best, found
}

// preferredRange returns the most specific range matching f.
func preferredRange(ranges []acceptRange, f Format) (acceptRange, bool) {
	var (
		match       acceptRange
		specificity = -1
	)
	for _, ar := range ranges {
		if !mediaRangeMatches(ar.mediaType, f) {
			continue
		}
		if s := rangeSpecificity(ar.mediaType); s > specificity {
			match, specificity = ar, s
		}
	}
	return match, specificity >= 0
}

func rangeSpecificity(mediaRange string) int {
	switch {
	case mediaRange == "*/*":
		return 0
	case strings.HasSuffix(mediaRange, "/*"):
		return 1
	default:
		return 2
	}
}

func parseAccept(header string) []acceptRange {
	parts := strings.Split(header, ",")
	ranges := make([]acceptRange, 0, len(parts))
	for i, part := range parts {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				q = parsed
			}
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q, order: i})
	}
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].q != ranges[j].q {
			return ranges[i].q > ranges[j].q
		}
		return ranges[i].order < ranges[j].order
	})
	return ranges
}

func mediaRangeMatches(mediaRange string, f Format) bool {
	switch {
	case mediaRange == "*/*":
		return true
	case strings.HasSuffix(mediaRange, "/*"):
		return strings.HasPrefix(strings.ToLower(f.MediaType), strings.TrimSuffix(mediaRange, "*"))
	default:
		return f.Matches(mediaRange)
	}
}

func contains(formats []Format, f Format) bool {
	for _, candidate := range formats {
		if candidate.Name == f.Name {
			return true
		}
	}
	return false
}
