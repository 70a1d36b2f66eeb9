package handler

// Route type
type Route string

const (
	// RouteSitemap the sitemap document
	RouteSitemap Route = "sitemap.xml"
	// RouteRobots robots.txt pointing to the sitemap
	RouteRobots Route = "robots.txt"
	// RouteContent rendered content records
	RouteContent Route = "content"
	// RouteEntries sitemap entries as json
	RouteEntries Route = "entries"
	// RouteRecords the whole records snapshot
	RouteRecords Route = "records"
	// RouteUpdate update repo
	RouteUpdate Route = "update"
)

// label keeps the metric cardinality bounded
func (r Route) label() Route {
	switch r {
	case RouteEntries, RouteRecords, RouteUpdate:
		return r
	default:
		return "unknown"
	}
}
