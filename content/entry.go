package content

// SitemapEntry one indexable url and its freshness
type SitemapEntry struct {
	URL          string `json:"url"`
	LastModified string `json:"lastModified"`
}

// NewSitemapEntry constructor
func NewSitemapEntry(origin, path, lastModified string) *SitemapEntry {
	return &SitemapEntry{
		URL:          origin + PathSeparator + path,
		LastModified: lastModified,
	}
}
