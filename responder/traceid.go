package responder

import (
	"net/http"

	"github.com/oklog/ulid/v2"
)

// TraceHeader carries the trace id of a problem response. An incoming value
// that is a valid ULID is reused so proxies can correlate their own logs.
const TraceHeader = "X-Request-Id"

func traceIDFor(req *http.Request) string {
	if req != nil {
		if id, err := ulid.ParseStrict(req.Header.Get(TraceHeader)); err == nil {
			return id.String()
		}
	}
	return ulid.Make().String()
}
