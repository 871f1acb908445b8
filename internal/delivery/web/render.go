package web

import (
	"embed"
	"encoding/base64"
	"html"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/user/book-classifier/internal/frontend/badge"
)

//go:embed templates/*.html static/*
var assets embed.FS

var strict = bluemonday.StrictPolicy()

var funcs = template.FuncMap{
	"badge":      badge.For,
	"join":       func(s []string) string { return strings.Join(s, ", ") },
	"pageCount":  pageCount,
	"screenshot": screenshotSrc,
	"coverURL":   coverURL,
	"clean":      clean,
	"score":      score,
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(assets, "templates/*.html")
}

// pageCount renders a missing or zero count as "?".
func pageCount(n *int) string {
	if n == nil || *n == 0 {
		return "?"
	}
	return strconv.Itoa(*n)
}

// screenshotSrc returns a data URL for the first screenshot, or "" when there is
// none or it is not valid base64.
func screenshotSrc(shots []string) template.URL {
	if len(shots) == 0 || shots[0] == "" {
		return ""
	}
	if _, err := base64.StdEncoding.DecodeString(shots[0]); err != nil {
		return ""
	}
	return template.URL("data:image/png;base64," + shots[0])
}

func coverURL(thumbnail string) string {
	return "/cover?src=" + url.QueryEscape(thumbnail)
}

// clean strips any markup the model put in its text. The template escapes the result.
func clean(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
