package chromedp_scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// coverSelectors are tried in order; the first non-empty match wins.
var coverSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:image"]`, "content"},
	{`meta[name="thumbnail"]`, "content"},
	{`link[rel="image_src"]`, "href"},
	{`img#summary-frontcover`, "src"},
}

// ExtractCover finds a cover image URL in a rendered preview page.
func ExtractCover(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	for _, c := range coverSelectors {
		if v, ok := doc.Find(c.selector).First().Attr(c.attr); ok {
			if v = strings.TrimSpace(v); strings.HasPrefix(v, "http") {
				return v, nil
			}
		}
	}
	return "", nil
}
