// Package badge maps the classifier's badge_color keyword to a visual style.
package badge

import "strings"

// Style is how a reading level badge is drawn.
type Style struct {
	Class string // CSS class used by the web page
	Icon  string // terminal glyph used by bookctl
}

// Neutral is used for ABU, empty and any unrecognised keyword.
var Neutral = Style{Class: "badge badge-gray", Icon: "⚪"}

var styles = map[string]Style{
	"MERAH":  {Class: "badge badge-red", Icon: "🔴"},
	"UNGU":   {Class: "badge badge-purple", Icon: "🟣"},
	"BIRU":   {Class: "badge badge-blue", Icon: "🔵"},
	"HIJAU":  {Class: "badge badge-green", Icon: "🟢"},
	"KUNING": {Class: "badge badge-yellow", Icon: "🟡"},
}

var aliases = map[string]string{
	"RED":    "MERAH",
	"PURPLE": "UNGU",
	"BLUE":   "BIRU",
	"GREEN":  "HIJAU",
	"YELLOW": "KUNING",
}

// For returns the style for color, matching case-insensitively after trimming.
func For(color string) Style {
	key := strings.ToUpper(strings.TrimSpace(color))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	if s, ok := styles[key]; ok {
		return s
	}
	return Neutral
}
