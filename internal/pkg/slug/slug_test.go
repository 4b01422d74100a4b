package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Hello World":           "hello-world",
		"  spaced   out  ":      "spaced-out",
		"Go 1.24 Released!":     "go-1-24-released",
		"already-a-slug":        "already-a-slug",
		"CafÉ au Lait":          "café-au-lait",
		"___":                   "",
		"Trailing punctuation!": "trailing-punctuation",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "input %q", in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello-world", 8))
	assert.Equal(t, "abcde", Truncate("abcdefgh", 5))
}
