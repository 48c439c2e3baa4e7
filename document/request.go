package document

import (
	"net/url"
	"strings"
)

// MetadataRequest carries the request parameters builders and extensions need
// to compute absolute links.
type MetadataRequest struct {
	ParentID          string
	ID                string
	AcceptedMediaType string
	// BaseURL is the public root of the server, e.g. http://host/geoserver.
	BaseURL string
	// ServicePath is the service root relative to BaseURL, e.g. ogc/images.
	ServicePath string
}

// String lists the request fields by name.
func (r *MetadataRequest) String() string {
	if r == nil {
		return "MetadataRequest<nil>"
	}
	var b strings.Builder
	b.WriteString("MetadataRequest[")
	b.WriteString("parentId=" + r.ParentID)
	b.WriteString(",id=" + r.ID)
	b.WriteString(",httpAccept=" + r.AcceptedMediaType)
	b.WriteString(",baseUrl=" + r.BaseURL)
	b.WriteString(",servicePath=" + r.ServicePath)
	b.WriteString("]")
	return b.String()
}

// ServiceURLPath joins the service path with the given elements using '/'.
// Each element is one path segment: it is percent-encoded, so an element
// containing '/' stays a single segment. Elements that are a URI template
// token such as {level} are kept verbatim.
func (r *MetadataRequest) ServiceURLPath(elems ...string) string {
	parts := make([]string, 0, len(elems)+1)
	if p := strings.Trim(r.ServicePath, "/"); p != "" {
		parts = append(parts, p)
	}
	for _, e := range elems {
		switch {
		case e == "":
		case isTemplateToken(e):
			parts = append(parts, e)
		default:
			parts = append(parts, url.PathEscape(e))
		}
	}
	return strings.Join(parts, "/")
}

func isTemplateToken(s string) bool {
	return len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' && !strings.ContainsAny(s[1:len(s)-1], "{}/")
}
