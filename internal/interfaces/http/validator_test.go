package http

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidHexColor(t *testing.T) {
	assert.True(t, ValidHexColor("#4F46E5"))
	assert.True(t, ValidHexColor("#000000"))
	assert.False(t, ValidHexColor("4F46E5"))
	assert.False(t, ValidHexColor("#4F46E"))
	assert.False(t, ValidHexColor("#GGGGGG"))
	assert.False(t, ValidHexColor(""))
}

func TestValidPosition(t *testing.T) {
	assert.True(t, ValidPosition("bottom-right"))
	assert.True(t, ValidPosition("top-left"))
	assert.False(t, ValidPosition("center"))
	assert.False(t, ValidPosition(""))
}

func TestValidUUID(t *testing.T) {
	assert.True(t, ValidUUID("8b7d9c1e-4f2a-4b6c-9d3e-1a2b3c4d5e6f"))
	assert.False(t, ValidUUID("not-a-uuid"))
	assert.False(t, ValidUUID(""))
	assert.False(t, ValidUUID("8b7d9c1e4f2a4b6c9d3e1a2b3c4d5e6f"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("he\x00llo"))
	assert.Equal(t, "plain", SanitizeString("plain"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
	assert.Equal(t, "abc", TruncateString("abc", 10))
}

func TestTruncateStringKeepsRunesWhole(t *testing.T) {
	// The cut lands mid-rune; the whole rune must go, not half of it
	assert.Equal(t, "h", TruncateString("héllo", 2))
	assert.Equal(t, "hé", TruncateString("héllo", 3))
	assert.Equal(t, "", TruncateString("日本語", 2))
	assert.Equal(t, "日", TruncateString("日本語", 4))

	for _, n := range []int{0, 1, 2, 3, 4, 5} {
		assert.True(t, utf8.ValidString(TruncateString("日本語", n)))
	}
}
