package repo

import (
	"context"

	"github.com/foomo/sitemapserver/content"
)

// Source loads the complete, ordered collection of content records
type Source interface {
	Name() string
	Records(ctx context.Context) ([]*content.Record, error)
}
