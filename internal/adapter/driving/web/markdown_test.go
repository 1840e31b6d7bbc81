package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	result := RenderMarkdown("A quick weeknight dinner.")
	assert.Contains(t, result, "A quick weeknight dinner.")
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**crispy** edges")
	assert.Contains(t, result, "<strong>crispy</strong>")
}

func TestRenderMarkdown_Link(t *testing.T) {
	result := RenderMarkdown("[source](https://example.com)")
	assert.Contains(t, result, `<a href="https://example.com"`)
	assert.Contains(t, result, "source</a>")
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	result := RenderMarkdown(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}

func TestRenderMarkdown_GFMStrikethrough(t *testing.T) {
	result := RenderMarkdown("~~butter~~ oil")
	assert.Contains(t, result, "<del>butter</del>")
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Whisk the eggs.", want: "Whisk the eggs."},
		{name: "strips tags", in: "Bake <b>20</b> minutes", want: "Bake 20 minutes"},
		{name: "drops script", in: `<script>alert(1)</script>Stir`, want: "Stir"},
		{name: "escapes ampersand", in: "Salt & pepper", want: "Salt &amp; pepper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}
