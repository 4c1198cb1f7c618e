package site

import (
	"encoding/xml"
	"fmt"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// PageURL is the public address of the landing page
func PageURL(origin, prefix string) string {
	return origin + prefix + "/"
}

// Robots builds robots.txt for a deployment at origin + prefix
func Robots(origin, prefix string) []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s%s/%s\n", origin, prefix, SitemapFile))
}

// Sitemap builds sitemap.xml listing the landing page
func Sitemap(origin, prefix string) ([]byte, error) {
	set := urlset{
		Xmlns: sitemapNS,
		URLs: []sitemapURL{
			{Loc: PageURL(origin, prefix), ChangeFreq: "monthly", Priority: "0.8"},
		},
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}

	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}
