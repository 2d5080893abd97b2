package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeForMarkdown(t *testing.T) {
	assert.Equal(t, "Yahoo\\! JAPAN Ads", EscapeForMarkdown("Yahoo! JAPAN Ads"))
	assert.Equal(t, "2024\\.01\\.10", EscapeForMarkdown("2024.01.10"))
	assert.Equal(t, "a\\_b\\*c\\[d\\]\\(e\\)", EscapeForMarkdown("a_b*c[d](e)"))
	assert.Equal(t, "c:\\\\path", EscapeForMarkdown("c:\\path"))
	assert.Equal(t, "日本語", EscapeForMarkdown("日本語"))
}

func TestLink(t *testing.T) {
	assert.Equal(t,
		"[New \\(beta\\)](https://example.com/a_(b\\))",
		Link("New (beta)", "https://example.com/a_(b)"),
	)
}
