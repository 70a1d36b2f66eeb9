package mock

import (
	"net/http"
	"net/http/httptest"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/foomo/sitemapserver/content"
)

// Dir directory containing the mock files
func Dir() string {
	_, filename, _, _ := runtime.Caller(0)
	return path.Dir(filename)
}

// PostsDir directory with mock mdx posts
func PostsDir() string {
	return path.Join(Dir(), "posts")
}

// GetMockData serves the mock files and returns a temporary history dir
func GetMockData(tb testing.TB) (*httptest.Server, string) {
	tb.Helper()
	mockDir := Dir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(time.Millisecond * 10)
		http.ServeFile(w, req, path.Join(mockDir, req.URL.Path[1:]))
	}))
	tb.Cleanup(server.Close)

	return server, tb.TempDir()
}

// MakeRecords the records of records-ok.json
func MakeRecords() []*content.Record {
	return []*content.Record{
		{
			Path:    "blog/green-bonds-explained",
			Date:    "2024-01-10",
			Title:   "Green bonds explained",
			Summary: "How green bonds finance the transition.",
			Body:    "# Green bonds explained\n\nUse of proceeds matters.\n",
		},
		{
			Path:         "blog/esg-reporting-2024",
			Date:         "2024-02-01",
			LastModified: "2024-03-15",
			Title:        "ESG reporting in 2024",
			Body:         "# ESG reporting in 2024\n\n| Standard | Scope |\n|---|---|\n| CSRD | EU |\n",
		},
		{
			Path:  "blog/unpublished-outlook",
			Draft: true,
			Date:  "2024-04-01",
			Title: "Unpublished outlook",
		},
	}
}
