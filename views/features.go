package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tailcallhq/docsite"
	"github.com/tailcallhq/docsite/markdown"
)

// HomepageFeatures renders the published features the framework loaded for
// this request. It takes no arguments; everything comes from the context.
func HomepageFeatures() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sc, err := docsite.FromContext(ctx)
		if err != nil {
			return err
		}
		h := docsite.NewHTMLWriter(w)
		h.Raw(`<section class="features"><div class="container"><div class="row">`)
		for _, f := range sc.Features {
			h.Raw(`<div class="feature">`)
			if src := markdown.SafeURL(f.Image); src != "" {
				// SafeURL output is already attribute-escaped.
				h.Raw(`<div class="text--center"><img class="featureImage" role="img" src="` + src + `"`)
				h.Attr("alt", f.Title)
				h.Raw(`></div>`)
			}
			h.Raw(`<div class="text--center padding-horiz--md"><h3>`)
			h.Text(f.Title)
			h.Raw(`</h3><p>`)
			h.Render(ctx, markdown.Inline(f.Description))
			h.Raw(`</p></div></div>`)
		}
		h.Raw(`</div></div></section>`)
		return h.Err()
	})
}
