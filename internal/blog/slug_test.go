package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World!!", "hello-world"},
		{"Hello World", "hello-world"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"CamelCase Title", "camelcase-title"},
		{"100% Go, 0% JS", "100-go-0-js"},
		{"---already-dashed---", "already-dashed"},
		{"ünïcödé glyphs", "n-c-d-glyphs"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestSlugifyCharset(t *testing.T) {
	slug := Slugify("Some TITLE with 42 Numbers & Symbols?!")
	for _, r := range slug {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, ok, "unexpected rune %q in slug %q", r, slug)
	}
	assert.NotEmpty(t, slug)
	assert.NotEqual(t, byte('-'), slug[0])
	assert.NotEqual(t, byte('-'), slug[len(slug)-1])
}
