package chromedp_scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCover(t *testing.T) {
	testCases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "open graph image",
			html: `<html><head>
				<meta name="thumbnail" content="https://books.google.com/thumb.jpg">
				<meta property="og:image" content=" https://books.google.com/og.jpg ">
			</head><body></body></html>`,
			want: "https://books.google.com/og.jpg",
		},
		{
			name: "image_src link when no meta",
			html: `<html><head><link rel="image_src" href="https://books.google.com/link.jpg"></head></html>`,
			want: "https://books.google.com/link.jpg",
		},
		{
			name: "relative urls are ignored",
			html: `<html><head><meta property="og:image" content="/relative.jpg"></head>
				<body><img id="summary-frontcover" src="https://books.google.com/front.jpg"></body></html>`,
			want: "https://books.google.com/front.jpg",
		},
		{
			name: "nothing found",
			html: `<html><body><p>canvas only</p></body></html>`,
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractCover(tc.html)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAgentPoolRotates(t *testing.T) {
	pool := NewAgentPool()
	first := pool.Next()
	second := pool.Next()
	third := pool.Next()

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
	assert.Equal(t, first, pool.Next())
}
