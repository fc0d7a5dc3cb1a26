package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/iw2rmb/mentionpad/mention"
)

// Mentions returns the distinct mention values annotated in content, in order
// of first appearance. Elements with the mention class but no value are
// ignored.
func Mentions(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	doc.Find("." + mention.HTMLClass).Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr(mention.HTMLValueAttr)
		if !ok {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	})
	return out
}
