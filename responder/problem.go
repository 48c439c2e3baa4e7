package responder

import (
	"net/http"
	"time"
)

// ProblemDetails is an RFC 9457 problem document. Code carries the OGC API
// exception code, e.g. InvalidParameterValue.
type ProblemDetails struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Code      string `json:"code,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	TraceID   string `json:"traceId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (r *Responder) buildProblemDetails(req *http.Request, status int, err error, meta StatusMetadata) ProblemDetails {
	return ProblemDetails{
		Type:      meta.TypeURI,
		Title:     meta.Title,
		Status:    status,
		Code:      meta.Code,
		Detail:    err.Error(),
		Instance:  requestInstance(req),
		TraceID:   traceIDFor(req),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (r *Responder) logProblem(req *http.Request, meta StatusMetadata, err error, problem ProblemDetails, msgs []string) {
	logger := r.logger().With(
		"error", err.Error(),
		"traceId", problem.TraceID,
		"status", problem.Status,
		"instance", problem.Instance,
	)
	if len(msgs) > 0 {
		logger = logger.With("logMessages", msgs)
	}
	logger.Log(requestContext(req), meta.LogLevel, meta.LogMsg)
}
