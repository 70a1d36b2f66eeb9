// contains data structures that describe site content and its sitemap
package content

const (
	// PathSeparator separator for paths in URLs
	PathSeparator = "/"
	// DateLayout calendar date granularity used for lastModified values
	DateLayout = "2006-01-02"
)
