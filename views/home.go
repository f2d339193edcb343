// Package views holds the site's pages. Each page is a templ.Component that
// reads the site configuration from docsite.FromContext while rendering.
package views

import (
	"context"
	"io"
	"math"

	"github.com/a-h/templ"

	"github.com/tailcallhq/docsite"
)

// WaitlistURL is the call-to-action target of the hero banner.
const WaitlistURL = "https://docs.google.com/forms/d/e/1FAIpQLSdNnaVhv1lR-EN6I9HAH6eIycN_0T-1URIch9IdXo0yZm9t3Q/viewform"

const homeDescription = "Simplify your edge layer with Tailcall's developer platform."

// maxHeroWidth caps the hero box width in CSS pixels.
const maxHeroWidth = 800

// ComputeDimensions sizes a 16:9 box to the screen, never wider than 800px.
// A negative width means the screen was not measured and yields docsite.Unmeasured.
func ComputeDimensions(screenWidth int) docsite.Dimensions {
	if screenWidth < 0 {
		return docsite.Unmeasured
	}
	width := min(maxHeroWidth, screenWidth)
	height := int(math.Round(float64(width) * 9 / 16))
	return docsite.Dimensions{Width: width, Height: height}
}

// HomepageHeader renders the hero banner.
func HomepageHeader() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := docsite.FromContext(ctx); err != nil {
			return err
		}
		h := docsite.NewHTMLWriter(w)
		h.Raw(`<header class="hero hero--primary heroBanner"><div class="container">`)
		h.Raw(`<h1 class="hero__title"><span>GraphQL for fearless scaling, </span>`)
		h.Raw(`<span style="color: white; text-shadow: rgb(0 0 0 / 92%) 0px 2px 4px">unleashed!</span></h1>`)
		h.Raw(`<p class="hero__subtitle">Tailcall&#39;s <b>developer platform</b> dramatically simplifies `)
		h.Raw(`infrastructural complexity and streamlines collaboration between teams.</p>`)
		h.Raw(`<div class="buttons"><a class="button button--secondary button--lg"`)
		h.Attr("href", WaitlistURL)
		h.Raw(` target="_blank" rel="noopener noreferrer">Join the waitlist!</a></div>`)
		h.Raw(`</div></header>`)
		return h.Err()
	})
}

// Home is the landing page: hero banner followed by the features section.
// It re-measures the hero box on every render and keeps the result in the
// request's view state.
func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sc, err := docsite.FromContext(ctx)
		if err != nil {
			return err
		}
		sc.State.Dimensions = ComputeDimensions(sc.ScreenWidth)

		meta := docsite.PageMeta{
			Title:       "Hello from " + sc.SiteConfig.Title,
			Description: homeDescription,
		}
		return docsite.Layout(meta, templ.Join(HomepageHeader(), homeMain())).Render(ctx, w)
	})
}

func homeMain() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := docsite.NewHTMLWriter(w)
		h.Raw(`<main>`)
		h.Render(ctx, HomepageFeatures())
		h.Raw(`</main>`)
		return h.Err()
	})
}
