// Package sanitize filters untrusted post HTML down to an allow-listed
// subset of tags and attributes. It is the only path by which user content
// reaches persistence; there is no raw-content code path.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// allowedAttrs is the declarative allow-list: tag name to per-tag
// attributes. Tags mapped to nil carry no attributes beyond the global
// ones. Keeping this as a table makes the policy auditable in isolation.
var allowedAttrs = map[string][]string{
	"p": nil, "br": nil,
	"b": nil, "i": nil, "u": nil, "strong": nil, "em": nil,
	"a":  {"href", "title", "target"},
	"h1": nil, "h2": nil, "h3": nil, "h4": nil, "h5": nil, "h6": nil,
	"ul": nil, "ol": nil, "li": nil,
	"blockquote": nil, "pre": nil, "code": nil,
	"img":  {"src", "alt", "title", "width", "height"},
	"span": nil, "div": nil,
	"table": nil, "thead": nil, "tbody": nil, "tr": nil, "th": nil, "td": nil,
}

// globalAttrs are permitted on every allowed tag.
var globalAttrs = []string{"class", "style"}

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	for tag, attrs := range allowedAttrs {
		p.AllowElements(tag)
		if len(attrs) > 0 {
			p.AllowAttrs(attrs...).OnElements(tag)
		}
	}
	p.AllowAttrs(globalAttrs...).Globally()
	// Only http/https/mailto destinations and relative URLs survive on
	// href/src; javascript: and data: URLs are dropped with the attribute.
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	return p
}

// Clean strips every tag and attribute outside the allow-list. Script,
// style and similar executable elements are removed together with their
// content; HTML comments are removed. Clean is deterministic and
// idempotent: Clean(Clean(x)) == Clean(x).
func Clean(rawHTML string) string {
	return policy.Sanitize(rawHTML)
}
