package seed

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/foomo/sitemapserver/content"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// Extension of the written content files
	Extension = ".mdx"
	delimiter = "---\n"
)

type frontMatter struct {
	Path         string `yaml:"path"`
	Title        string `yaml:"title,omitempty"`
	Date         string `yaml:"date,omitempty"`
	LastModified string `yaml:"lastModified,omitempty"`
	Draft        bool   `yaml:"draft,omitempty"`
	Summary      string `yaml:"summary,omitempty"`
}

// Fixtures a deterministic set of posts relative to now
func Fixtures(now time.Time) []*content.Record {
	day := func(offset int) string {
		return now.UTC().AddDate(0, 0, offset).Format(content.DateLayout)
	}
	year := strconv.Itoa(now.UTC().Year())

	return []*content.Record{
		{
			Path:    "blog/net-zero-roadmap",
			Date:    day(-30),
			Title:   "Our net zero roadmap",
			Summary: "Milestones on the way to net zero.",
			Body:    "# Our net zero roadmap\n\n| Year | Target |\n|---|---|\n| 2030 | -50% |\n| 2050 | net zero |\n",
		},
		{
			Path:         "blog/green-bonds-explained",
			Date:         day(-60),
			LastModified: day(-7),
			Title:        "Green bonds explained",
			Summary:      "How green bonds finance the transition.",
			Body:         "# Green bonds explained\n\nUse of proceeds matters.\n",
		},
		{
			Path:  "blog/impact-report-" + year,
			Date:  day(-14),
			Title: "Impact report " + year,
			Body:  "# Impact report " + year + "\n\nRead the ~~draft~~ final figures.\n",
		},
		{
			Path:  "blog/stewardship-outlook",
			Draft: true,
			Date:  day(0),
			Title: "Stewardship outlook",
			Body:  "Coming soon.\n",
		},
	}
}

// Write materialises records as mdx files with yaml front matter below dir
func Write(dir string, records []*content.Record) ([]string, error) {
	files := make([]string, 0, len(records))
	for _, record := range records {
		recordPath := strings.Trim(record.Path, content.PathSeparator)
		if recordPath == "" {
			return files, errors.New("can not write a record without a path")
		}

		data, err := Encode(record)
		if err != nil {
			return files, err
		}

		file := filepath.Join(dir, filepath.FromSlash(recordPath)+Extension)
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return files, errors.Wrapf(err, "failed to create dir for %q", file)
		}
		if err := os.WriteFile(file, data, 0o600); err != nil {
			return files, errors.Wrapf(err, "failed to write %q", file)
		}
		files = append(files, file)
	}
	return files, nil
}

// Encode renders a record as front matter document
func Encode(record *content.Record) ([]byte, error) {
	header, err := yaml.Marshal(frontMatter{
		Path:         strings.Trim(record.Path, content.PathSeparator),
		Title:        record.Title,
		Date:         record.Date,
		LastModified: record.LastModified,
		Draft:        record.Draft,
		Summary:      record.Summary,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode front matter of %q", record.Path)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter)
	buf.Write(header)
	buf.WriteString(delimiter)
	buf.WriteString("\n")
	buf.WriteString(record.Body)
	return buf.Bytes(), nil
}
