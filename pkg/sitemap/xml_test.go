package sitemap

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/foomo/sitemapserver/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeXML(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeXML(&buf, []*content.SitemapEntry{
		{URL: "https://example.com/", LastModified: "2024-05-17"},
		{URL: "https://example.com/blog/undated"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://example.com/</loc>")
	assert.Contains(t, out, "<lastmod>2024-05-17</lastmod>")
	assert.Equal(t, 1, strings.Count(out, "<lastmod>"), "empty lastmod must be omitted")

	var set xmlURLSet
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &set))
	require.Len(t, set.URLs, 2)
	assert.Equal(t, "https://example.com/blog/undated", set.URLs[1].Loc)
}

func TestEncodeXMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeXML(&buf, nil))
	assert.Contains(t, buf.String(), "urlset")
	assert.NotContains(t, buf.String(), "<url>")
}

func TestWriteRobots(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRobots(&buf, "https://example.com"))
	assert.Contains(t, buf.String(), "User-agent: *")
	assert.Contains(t, buf.String(), "Sitemap: https://example.com/sitemap.xml")
}
