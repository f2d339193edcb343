package docsite

// Feature is one entry of the landing page features section. Features are
// stored in SQLite and edited from the admin dashboard.
type Feature struct {
	Slug        string
	Title       string
	Description string // inline markdown
	Image       string // optional path under /public/
	Position    int
	Published   bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
