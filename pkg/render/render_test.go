package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRenderString(t *testing.T) {
	r := New(zaptest.NewLogger(t))

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "heading id",
			body: "# Green bonds explained\n",
			want: []string{`<h1 id="green-bonds-explained">Green bonds explained</h1>`},
		},
		{
			name: "gfm table",
			body: "| Standard | Scope |\n|---|---|\n| CSRD | EU |\n",
			want: []string{"<table>", "<th>Standard</th>", "<td>CSRD</td>"},
		},
		{
			name: "strikethrough",
			body: "~~greenwashing~~\n",
			want: []string{"<del>greenwashing</del>"},
		},
		{
			name: "autolink",
			body: "see https://example.com\n",
			want: []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name: "hard wraps",
			body: "scope 1\nscope 2\n",
			want: []string{"scope 1<br>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := r.RenderString(tt.body)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, html, want)
			}
		})
	}
}

func TestRenderRawHTML(t *testing.T) {
	body := "<script>alert(1)</script>\n"

	html, err := New(zaptest.NewLogger(t)).RenderString(body)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")

	html, err = New(zaptest.NewLogger(t), WithUnsafe(true)).RenderString(body)
	require.NoError(t, err)
	assert.Contains(t, html, "<script>")
}

func TestRenderEmpty(t *testing.T) {
	html, err := New(zaptest.NewLogger(t)).RenderString("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
