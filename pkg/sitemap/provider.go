package sitemap

import (
	"context"

	"github.com/foomo/sitemapserver/content"
)

type (
	// Provider supplies an ordered collection of content records
	Provider interface {
		Records(ctx context.Context) ([]*content.Record, error)
	}
	// ProviderFunc adapter
	ProviderFunc func(ctx context.Context) ([]*content.Record, error)
	// StaticProvider a fixed list of records
	StaticProvider []*content.Record
)

func (f ProviderFunc) Records(ctx context.Context) ([]*content.Record, error) {
	return f(ctx)
}

func (p StaticProvider) Records(ctx context.Context) ([]*content.Record, error) {
	return p, nil
}
