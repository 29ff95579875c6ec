package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	result := RenderMarkdown("hello world")
	assert.Contains(t, result, "hello world")
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**bold text**")
	assert.Contains(t, result, "<strong>bold text</strong>")
}

func TestRenderMarkdown_Table(t *testing.T) {
	result := RenderMarkdown("| a | b |\n| - | - |\n| 1 | 2 |")
	assert.Contains(t, result, "<table>")
}

func TestRenderMarkdown_InlineCode(t *testing.T) {
	result := RenderMarkdown("use `auth` mode")
	assert.Contains(t, result, "<code>auth</code>")
}

func TestRenderMarkdown_StripsScript(t *testing.T) {
	result := RenderMarkdown(`hello <script>alert("x")</script>`)
	assert.NotContains(t, result, "<script>")
	assert.Contains(t, result, "hello")
}
