package harvest

import "github.com/microcosm-cc/bluemonday"

// pagePolicy keeps the markup readability scores on and drops elements whose
// text would otherwise leak into sentences, such as scripts and ruby annotations.
var pagePolicy = newPagePolicy()

func newPagePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"html", "head", "title", "body",
		"main", "article", "section", "header", "footer", "nav", "aside",
		"div", "span", "p", "br", "hr", "blockquote", "pre", "code",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"em", "strong", "b", "i", "u", "small", "sub", "sup", "mark", "q", "cite", "abbr", "time",
		"figure", "figcaption", "img",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption",
		"a", "ruby",
	)
	p.AllowAttrs("id", "class", "lang", "dir").Globally()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https")
	p.AllowRelativeURLs(true)
	p.SkipElementsContent("rt", "rp", "form", "button", "select", "textarea")
	return p
}

// CleanPage strips a fetched page down to readable markup before extraction.
func CleanPage(html []byte) []byte {
	return pagePolicy.SanitizeBytes(html)
}
