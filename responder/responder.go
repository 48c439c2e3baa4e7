package responder

import (
	"fmt"
	"log/slog"
	"net/http"
)

const (
	jsonContentType    = "application/json"
	yamlContentType    = "application/x-yaml"
	htmlContentType    = "text/html; charset=utf-8"
	problemContentType = "application/problem+json"
	statusDocBaseURL   = "https://httpstatuses.io"
)

// ErrorClassifierFunc maps an error to an HTTP status. handled is false when
// the classifier does not recognise the error.
type ErrorClassifierFunc func(err error) (status int, handled bool)

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// StatusMetadata controls how a status is logged and how its problem document
// is labelled. Zero fields fall back to the defaults of the status; since
// slog.LevelInfo is the zero level, an info override is only honoured where
// info is already the default.
type StatusMetadata struct {
	TypeURI  string
	Title    string
	Code     string
	LogLevel slog.Level
	LogMsg   string
}

// withDefaults fills the empty fields of m for status.
func (m StatusMetadata) withDefaults(status int) StatusMetadata {
	if m.LogLevel == 0 {
		m.LogLevel = defaultLogLevel(status)
	}
	if m.Title == "" {
		m.Title = http.StatusText(status)
	}
	if m.LogMsg == "" {
		m.LogMsg = m.Title
	}
	if m.TypeURI == "" {
		m.TypeURI = fmt.Sprintf("%s/%d", statusDocBaseURL, status)
	}
	if m.Code == "" {
		m.Code = exceptionCode(status)
	}
	return m
}

func defaultLogLevel(status int) slog.Level {
	switch {
	case status == http.StatusNotFound:
		return slog.LevelInfo
	case status == http.StatusServiceUnavailable, status >= 400 && status < 500:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// exceptionCode returns the OGC API exception code reported for status.
func exceptionCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "NotFound"
	case status == http.StatusServiceUnavailable:
		return "ServiceUnavailable"
	case status >= 400 && status < 500:
		return "InvalidParameterValue"
	case status >= 500:
		return "NoApplicableCode"
	default:
		return ""
	}
}

// Responder renders documents as JSON, YAML or HTML and turns handler errors
// into RFC 9457 problem documents. Every problem carries a ULID trace id that
// is logged with it.
type Responder struct {
	log             *slog.Logger
	statusMetadata  map[int]StatusMetadata
	errorClassifier ErrorClassifierFunc
}

// NewResponder returns a Responder logging to slog.Default.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log:            slog.Default(),
		statusMetadata: make(map[int]StatusMetadata),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger sets the logger problems are reported to. nil is ignored.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithErrorClassifier installs the classifier used by HandleErrors.
func WithErrorClassifier(classifier ErrorClassifierFunc) ResponderOption {
	return func(r *Responder) {
		r.errorClassifier = classifier
	}
}

// WithStatusMetadata replaces the metadata of status.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.statusMetadata == nil {
			r.statusMetadata = make(map[int]StatusMetadata)
		}
		r.statusMetadata[status] = meta
	}
}

// Logger returns the logger problems are reported to.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func (r *Responder) statusMetaFor(status int) StatusMetadata {
	return r.statusMetadata[status].withDefaults(status)
}

func (r *Responder) classifyError(err error) (int, bool) {
	if r.errorClassifier == nil {
		return 0, false
	}
	return r.errorClassifier(err)
}
