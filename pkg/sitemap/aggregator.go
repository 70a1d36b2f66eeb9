package sitemap

import (
	"time"

	"github.com/foomo/sitemapserver/content"
)

// Aggregate combines the static routes with the published records into a list
// of sitemap entries. Static routes come first in their declared order, records
// follow in the order given. Static routes are stamped with the UTC calendar
// day of now, records with their own modification date.
//
// Neither origin nor paths are validated and colliding urls are not removed.
func Aggregate(origin string, routes []content.SiteRoute, records []*content.Record, now time.Time) []*content.SitemapEntry {
	today := now.UTC().Format(content.DateLayout)
	entries := make([]*content.SitemapEntry, 0, len(routes)+len(records))
	for _, route := range routes {
		entries = append(entries, content.NewSitemapEntry(origin, route.Path(), today))
	}
	for _, record := range records {
		if record == nil || !record.Published() {
			continue
		}
		entries = append(entries, content.NewSitemapEntry(origin, record.Path, record.Modified()))
	}
	return entries
}
