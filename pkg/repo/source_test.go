package repo

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/foomo/sitemapserver/content"
	"github.com/foomo/sitemapserver/pkg/repo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestURLSource(t *testing.T) {
	mockServer, _ := mock.GetMockData(t)

	records, err := NewURLSource(mockServer.URL+"/records-ok.json", URLSourceWithHTTPClient(mockServer.Client())).Records(t.Context())
	require.NoError(t, err)
	assert.Equal(t, mock.MakeRecords(), records)

	_, err = NewURLSource(mockServer.URL + "/records-broken.json").Records(t.Context())
	require.Error(t, err)
}

func TestURLSourceStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewURLSource(server.URL).Records(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDirSource(t *testing.T) {
	records, err := NewDirSource(mock.PostsDir()).Records(t.Context())
	require.NoError(t, err)

	paths := make([]string, 0, len(records))
	for _, record := range records {
		paths = append(paths, record.Path)
	}
	assert.Equal(t, []string{
		"blog/2024/carbon-accounting",
		"blog/2024",
		"blog/a-sustainable-portfolio",
		"events/agm-2024",
	}, paths)

	carbon := records[0]
	assert.Equal(t, "Carbon accounting", carbon.Title)
	assert.Equal(t, "2024-02-20", carbon.Date)
	assert.Equal(t, "2024-02-28", carbon.LastModified)
	assert.False(t, carbon.Draft)

	assert.True(t, records[1].Draft)

	portfolio := records[2]
	assert.Equal(t, "2024-01-05", portfolio.Date, "unquoted dates are kept verbatim")
	assert.Equal(t, "Building blocks of an ESG portfolio.", portfolio.Summary)
	assert.Contains(t, portfolio.Body, "Diversify across **impact** themes.")
	assert.NotContains(t, portfolio.Body, "title:")
}

func TestDirSourcePrefix(t *testing.T) {
	records, err := NewDirSource(mock.PostsDir(), DirSourceWithPrefix("/insights/")).Records(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, "insights/2024/carbon-accounting", records[0].Path)
}

func TestDirSourceErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.md"), []byte("---\ndate: 2024-01-01\n---\nok\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken-a.md"), []byte("---\ndate: [2024\n---\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken-b.mdx"), []byte("---\ntitle: {\n---\n"), 0o600))

	_, err := NewDirSource(dir).Records(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken-a.md")
	assert.Contains(t, err.Error(), "broken-b.mdx")

	_, err = NewDirSource(filepath.Join(dir, "no-have")).Records(t.Context())
	require.Error(t, err)
}

func TestDirSourceEmpty(t *testing.T) {
	records, err := NewDirSource(t.TempDir()).Records(t.Context())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"net-zero.mdx":              "net-zero",
		"2024/net-zero.md":          "2024/net-zero",
		"reports/index.mdx":         "reports",
		"index.md":                  "",
		filepath.Join("a", "b.mdx"): "a/b",
	}
	for in, want := range tests {
		assert.Equal(t, want, slug(in), in)
	}
}

func TestDirSourceIntoRepo(t *testing.T) {
	r := NewTestRepo(t, zaptest.NewLogger(t), NewDirSource(mock.PostsDir()), t.TempDir())
	response := r.Update(t.Context())
	require.True(t, response.Success, response.ErrorMessage)
	assert.Equal(t, 4, response.Stats.NumberOfRecords)
	assert.Equal(t, 1, response.Stats.NumberOfDrafts)

	record, ok := r.Record("events/agm-2024")
	require.True(t, ok)
	assert.Equal(t, &content.Record{
		Path:  "events/agm-2024",
		Date:  "2024-05-20",
		Title: "Annual general meeting",
		Body:  record.Body,
	}, record)
}
