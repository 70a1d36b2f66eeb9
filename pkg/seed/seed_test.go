package seed_test

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/foomo/sitemapserver/content"
	"github.com/foomo/sitemapserver/pkg/repo"
	"github.com/foomo/sitemapserver/pkg/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 17, 23, 30, 0, 0, time.UTC)

func TestFixtures(t *testing.T) {
	records := seed.Fixtures(testNow)
	require.Len(t, records, 4)

	var drafts, modified int
	for _, record := range records {
		if record.Draft {
			drafts++
		}
		if record.LastModified != "" {
			modified++
		}
	}
	assert.Equal(t, 1, drafts)
	assert.Equal(t, 1, modified)
	assert.Equal(t, "2024-04-17", records[0].Date)
	assert.Equal(t, "blog/impact-report-2024", records[2].Path)
	assert.Equal(t, seed.Fixtures(testNow), records)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	records := seed.Fixtures(testNow)

	files, err := seed.Write(dir, records)
	require.NoError(t, err)
	require.Len(t, files, len(records))
	assert.Equal(t, filepath.Join(dir, "blog", "net-zero-roadmap.mdx"), files[0])

	read, err := repo.NewDirSource(dir, repo.DirSourceWithPrefix("ignored")).Records(t.Context())
	require.NoError(t, err)

	byPath := func(records []*content.Record) []*content.Record {
		ret := make([]*content.Record, 0, len(records))
		for _, record := range records {
			r := *record
			r.Body = strings.TrimSpace(r.Body)
			ret = append(ret, &r)
		}
		sort.Slice(ret, func(i, j int) bool { return ret[i].Path < ret[j].Path })
		return ret
	}
	assert.Equal(t, byPath(records), byPath(read))
}

func TestWriteWithoutPath(t *testing.T) {
	_, err := seed.Write(t.TempDir(), []*content.Record{{Title: "no path"}})
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	data, err := seed.Encode(&content.Record{Path: "/blog/x/", Date: "2024-01-01", Body: "hello\n"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\npath: blog/x\n"))
	assert.True(t, strings.HasSuffix(string(data), "---\n\nhello\n"))
	assert.NotContains(t, string(data), "draft")
}
