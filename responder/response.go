package responder

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/drblury/geoweaver/jsonutil"
	"github.com/drblury/geoweaver/yamlutil"
)

// HandleAPIError renders a problem document for the supplied HTTP status and
// logs it using the configured logger.
func (r *Responder) HandleAPIError(w http.ResponseWriter, req *http.Request, status int, err error, logMsg ...string) {
	if err == nil {
		return
	}

	meta := r.statusMetaFor(status)
	problem := r.buildProblemDetails(req, status, err, meta)
	r.logProblem(req, meta, err, problem, logMsg)
	if w != nil {
		w.Header().Set(TraceHeader, problem.TraceID)
	}
	r.respondWithJSON(w, req, status, problem, problemContentType)
}

// HandleInternalServerError is a shortcut that reports a 500 status code.
func (r *Responder) HandleInternalServerError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusInternalServerError, err, logMsg...)
}

// HandleBadRequestError reports client errors, such as an unsupported
// representation, using HTTP 400.
func (r *Responder) HandleBadRequestError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusBadRequest, err, logMsg...)
}

// HandleNotFoundError reports unknown resources using HTTP 404.
func (r *Responder) HandleNotFoundError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusNotFound, err, logMsg...)
}

// RespondWithJSON serialises the provided value and writes it to the response
// using the supplied status code.
func (r *Responder) RespondWithJSON(w http.ResponseWriter, req *http.Request, status int, v any) {
	r.respondWithJSON(w, req, status, v, jsonContentType)
}

// RespondWithJSONAs is RespondWithJSON with a custom JSON media type, e.g.
// application/vnd.oai.openapi+json.
func (r *Responder) RespondWithJSONAs(w http.ResponseWriter, req *http.Request, status int, v any, contentType string) {
	r.respondWithJSON(w, req, status, v, contentType)
}

// RespondWithYAML serialises v as YAML using its JSON field names.
func (r *Responder) RespondWithYAML(w http.ResponseWriter, req *http.Request, status int, v any) {
	if w == nil {
		return
	}

	body, err := yamlutil.Marshal(v)
	if err != nil {
		r.HandleInternalServerError(w, req, err, "failed to encode yaml response")
		return
	}
	r.writeResponse(w, status, yamlContentType, body)
}

// RespondWithHTML executes tmpl with data and writes the result. The template
// is rendered into a buffer first so failures still produce a problem
// document.
func (r *Responder) RespondWithHTML(w http.ResponseWriter, req *http.Request, status int, tmpl *template.Template, data any) {
	if w == nil {
		return
	}
	if tmpl == nil {
		r.HandleInternalServerError(w, req, errors.New("html template not configured"), "failed to render html response")
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		r.HandleInternalServerError(w, req, err, "failed to render html response")
		return
	}
	r.writeResponse(w, status, htmlContentType, buf.Bytes())
}

// HandleErrors inspects the supplied error using the configured classifier and
// emits an appropriate problem response.
func (r *Responder) HandleErrors(w http.ResponseWriter, req *http.Request, err error, msgs ...string) {
	if err == nil {
		return
	}

	if status, handled := r.classifyError(err); handled {
		r.HandleAPIError(w, req, status, err, msgs...)
		return
	}

	r.HandleInternalServerError(w, req, err, msgs...)
}

func (r *Responder) respondWithJSON(w http.ResponseWriter, req *http.Request, status int, payload any, contentType string) {
	if w == nil {
		return
	}

	body, err := r.marshalPayload(payload)
	if err != nil {
		r.logger().ErrorContext(requestContext(req), "failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	r.writeResponse(w, status, resolveContentType(contentType, jsonContentType), body)
}

func (r *Responder) marshalPayload(payload any) ([]byte, error) {
	data, err := jsonutil.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

func (r *Responder) writeResponse(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger().Error("failed to write response", "error", err)
	}
}

func resolveContentType(provided, fallback string) string {
	if provided == "" {
		return fallback
	}
	return provided
}
