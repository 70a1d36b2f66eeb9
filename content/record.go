package content

// Record a unit of authored content, e.g. a blog post
type Record struct {
	Path         string `json:"path"`                   // relative url path, without a leading slash
	Draft        bool   `json:"draft"`                  // drafts are never published
	Date         string `json:"date"`                   // publication date, fallback for LastModified
	LastModified string `json:"lastModified,omitempty"` // overrides Date when set
	Title        string `json:"title,omitempty"`
	Summary      string `json:"summary,omitempty"`
	Body         string `json:"body,omitempty"` // markdown / mdx source
}

// Published is the record visible to the public
func (r *Record) Published() bool {
	return !r.Draft
}

// Modified returns LastModified if present, Date otherwise. The value is not
// reformatted.
func (r *Record) Modified() string {
	if r.LastModified != "" {
		return r.LastModified
	}
	return r.Date
}
