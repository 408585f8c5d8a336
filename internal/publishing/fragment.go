package publishing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var fragmentPolicy = newFragmentPolicy()

func newFragmentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id", "style").Globally()
	policy.AllowElements("section", "header", "footer", "figure", "figcaption", "blockquote")
	return policy
}

// BodyFragment returns the sanitized inner body of a rendered page. Input
// without a body element is treated as a fragment already.
func BodyFragment(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	inner, err := doc.Find("body").First().Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(fragmentPolicy.Sanitize(inner)), nil
}
