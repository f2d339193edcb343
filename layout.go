package docsite

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the site shell: head metadata, navbar and footer.
// Empty meta fields fall back to the site configuration.
func Layout(meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sc, err := FromContext(ctx)
		if err != nil {
			return err
		}
		cfg := sc.SiteConfig
		m := withMetaDefaults(meta, cfg)

		h := NewHTMLWriter(w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>`)
		h.Text(m.Title)
		h.Raw(`</title><meta name="description"`)
		h.Attr("content", m.Description)
		h.Raw(`><link rel="canonical"`)
		h.Attr("href", m.URL)
		h.Raw(`><meta property="og:title"`)
		h.Attr("content", m.Title)
		h.Raw(`><meta property="og:description"`)
		h.Attr("content", m.Description)
		h.Raw(`><meta property="og:url"`)
		h.Attr("content", m.URL)
		h.Raw(`><meta property="og:type"`)
		h.Attr("content", m.OGType)
		h.Raw(`><link rel="stylesheet" href="/public/site.css">`)
		h.Raw(`</head><body>`)
		h.Raw(`<nav class="navbar"><div class="navbar__inner"><a class="navbar__brand" href="/">`)
		h.Text(cfg.Title)
		h.Raw(`</a></div></nav>`)
		h.Render(ctx, body)
		h.Raw(`<footer class="footer"><div class="container">`)
		h.Text(cfg.Copyright)
		h.Raw(`</div></footer></body></html>`)
		return h.Err()
	})
}

func withMetaDefaults(meta PageMeta, cfg SiteConfig) PageMeta {
	if meta.Title == "" {
		meta.Title = cfg.Title
	}
	if meta.Description == "" {
		meta.Description = cfg.Tagline
	}
	if meta.URL == "" {
		meta.URL = BuildURL(cfg.URL)
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	return meta
}
