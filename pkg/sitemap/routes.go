package sitemap

import (
	"github.com/foomo/sitemapserver/content"
)

// DefaultRoutes hand maintained sections of the site
var DefaultRoutes = []content.SiteRoute{
	"",
	"about",
	"blog",
	"calendar",
	"careers",
	"contact",
	"cookies",
	"gdpr",
	"projects",
	"reports",
	"team",
}

// ParseRoutes converts route names, e.g. from configuration, and keeps their order
func ParseRoutes(names []string) []content.SiteRoute {
	routes := make([]content.SiteRoute, 0, len(names))
	for _, name := range names {
		routes = append(routes, content.SiteRoute(name))
	}
	return routes
}
