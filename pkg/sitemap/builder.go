package sitemap

import (
	"context"
	"io"
	"time"

	"github.com/foomo/sitemapserver/content"
	"github.com/foomo/sitemapserver/pkg/metrics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	Builder struct {
		l        *zap.Logger
		origin   string
		routes   []content.SiteRoute
		provider Provider
		now      func() time.Time
	}
	BuilderOption func(*Builder)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewBuilder origin is the absolute site url without a trailing slash
func NewBuilder(l *zap.Logger, origin string, provider Provider, opts ...BuilderOption) *Builder {
	inst := &Builder{
		l:        l.Named("sitemap"),
		origin:   origin,
		routes:   DefaultRoutes,
		provider: provider,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithRoutes(v []content.SiteRoute) BuilderOption {
	return func(o *Builder) {
		o.routes = v
	}
}

func WithClock(v func() time.Time) BuilderOption {
	return func(o *Builder) {
		o.now = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Getter
// ------------------------------------------------------------------------------------------------

func (b *Builder) Origin() string {
	return b.origin
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Build fetches the current records and aggregates them with the static routes
func (b *Builder) Build(ctx context.Context) ([]*content.SitemapEntry, error) {
	records, err := b.provider.Records(ctx)
	if err != nil {
		metrics.SitemapBuildCounter.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "failed to get content records")
	}

	entries := Aggregate(b.origin, b.routes, records, b.now())
	metrics.SitemapBuildCounter.WithLabelValues("success").Inc()
	metrics.SitemapEntriesGauge.WithLabelValues().Set(float64(len(entries)))

	b.l.Debug("built sitemap",
		zap.Int("routes", len(b.routes)),
		zap.Int("records", len(records)),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

// WriteXML builds the sitemap and writes it as an urlset document
func (b *Builder) WriteXML(ctx context.Context, w io.Writer) error {
	entries, err := b.Build(ctx)
	if err != nil {
		return err
	}
	return EncodeXML(w, entries)
}

// WriteRobots writes a robots.txt pointing to the sitemap of the origin
func (b *Builder) WriteRobots(w io.Writer) error {
	return WriteRobots(w, b.origin)
}
