package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/foomo/sitemapserver/content"
	"github.com/pkg/errors"
)

const (
	Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	// Filename well known location of the sitemap below the origin
	Filename = "sitemap.xml"
	// RobotsFilename well known location of the robots file below the origin
	RobotsFilename = "robots.txt"
)

type (
	xmlURL struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod,omitempty"`
	}
	xmlURLSet struct {
		XMLName xml.Name `xml:"urlset"`
		XMLNS   string   `xml:"xmlns,attr"`
		URLs    []xmlURL `xml:"url"`
	}
)

// EncodeXML writes entries as a sitemaps.org urlset
func EncodeXML(w io.Writer, entries []*content.SitemapEntry) error {
	set := xmlURLSet{
		XMLNS: Namespace,
		URLs:  make([]xmlURL, 0, len(entries)),
	}
	for _, entry := range entries {
		set.URLs = append(set.URLs, xmlURL{
			Loc:     entry.URL,
			LastMod: entry.LastModified,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "failed to write xml header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return errors.Wrap(err, "failed to encode urlset")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, "failed to write xml trailer")
	}
	return nil
}

// WriteRobots allows everything and announces the sitemap
func WriteRobots(w io.Writer, origin string) error {
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/%s\n", origin, Filename)
	return err
}
