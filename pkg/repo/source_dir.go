package repo

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/foomo/sitemapserver/content"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ContentExtensions file extensions read by the DirSource
var ContentExtensions = []string{".md", ".mdx"}

type (
	// DirSource reads records from markdown / mdx files with front matter
	DirSource struct {
		dir    string
		prefix string
	}
	DirSourceOption func(*DirSource)
	frontMatter     struct {
		Path         string `yaml:"path" json:"path" toml:"path"`
		Title        string `yaml:"title" json:"title" toml:"title"`
		Date         string `yaml:"date" json:"date" toml:"date"`
		LastModified string `yaml:"lastModified" json:"lastModified" toml:"lastModified"`
		Draft        bool   `yaml:"draft" json:"draft" toml:"draft"`
		Summary      string `yaml:"summary" json:"summary" toml:"summary"`
	}
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewDirSource(dir string, opts ...DirSourceOption) *DirSource {
	inst := &DirSource{
		dir:    dir,
		prefix: "blog",
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

// DirSourceWithPrefix url path prefix of records without an explicit path
func DirSourceWithPrefix(v string) DirSourceOption {
	return func(o *DirSource) {
		o.prefix = strings.Trim(v, content.PathSeparator)
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (s *DirSource) Name() string {
	return "dir"
}

// Records in lexical file order
func (s *DirSource) Records(ctx context.Context) ([]*content.Record, error) {
	var (
		records []*content.Record
		errs    error
	)
	walkErr := filepath.WalkDir(s.dir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if file != s.dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isContentFile(d.Name()) {
			return nil
		}
		record, err := s.readRecord(file)
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		records = append(records, record)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, "failed to walk content dir %q", s.dir)
	}
	if errs != nil {
		return nil, errs
	}
	return records, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (s *DirSource) readRecord(file string) (*content.Record, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", file)
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse front matter of %q", file)
	}

	recordPath := strings.Trim(fm.Path, content.PathSeparator)
	if recordPath == "" {
		rel, err := filepath.Rel(s.dir, file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %q", file)
		}
		recordPath = path.Join(s.prefix, slug(rel))
	}

	return &content.Record{
		Path:         recordPath,
		Draft:        fm.Draft,
		Date:         fm.Date,
		LastModified: fm.LastModified,
		Title:        fm.Title,
		Summary:      fm.Summary,
		Body:         string(body),
	}, nil
}

// slug "2024/net-zero.mdx" => "2024/net-zero", "reports/index.md" => "reports"
func slug(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return ""
	}
	return strings.TrimSuffix(rel, "/index")
}

func isContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, contentExt := range ContentExtensions {
		if ext == contentExt {
			return true
		}
	}
	return false
}
