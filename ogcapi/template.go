package ogcapi

import (
	"embed"
	"html/template"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/drblury/geoweaver/format"
	"github.com/drblury/geoweaver/link"
)

//go:embed assets/*.html assets/openapi.yml
var assets embed.FS

const baseAPIResource = "assets/openapi.yml"

// Template names.
const (
	templateLanding     = "landing.html"
	templateConformance = "conformance.html"
	templateCollections = "collections.html"
	templateCollection  = "collection.html"
	templateAPI         = "api.html"
)

var defaultTemplates = template.Must(
	template.New("ogcapi").Funcs(templateFuncs).ParseFS(assets, "assets/*.html"),
)

var templateFuncs = template.FuncMap{
	"anchor":   anchorID,
	"htmlLink": htmlLink,
}

// anchorID turns words such as "html api link" into an element id like
// "htmlApiLink".
func anchorID(words ...string) string {
	return strcase.ToLowerCamel(strings.Join(words, " "))
}

// htmlLink returns the first HTML link with one of rels, or nil.
func htmlLink(links []link.Link, rels ...string) *link.Link {
	for _, rel := range rels {
		for i := range links {
			if links[i].Rel == rel && format.HTML.Matches(links[i].Type) {
				return &links[i]
			}
		}
	}
	return nil
}
