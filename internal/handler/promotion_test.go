package handler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "short", truncateContent("short", 200))

	// A multibyte rune straddling the byte boundary must survive whole.
	straddling := strings.Repeat("a", 199) + "日本語"
	got := truncateContent(straddling, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 199)+"日", got)

	got = truncateContent(strings.Repeat("日", 250), 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("日", 200), got)
}
