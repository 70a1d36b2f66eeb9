package content

// SiteRoute a fixed, hand maintained section of the site, "" is the root
type SiteRoute string

// Path relative url path of the route
func (r SiteRoute) Path() string {
	return string(r)
}
