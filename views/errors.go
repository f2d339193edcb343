package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tailcallhq/docsite"
)

// NotFound is rendered for unknown routes.
func NotFound() templ.Component {
	return errorPage("Page Not Found", "We could not find what you were looking for.")
}

// ServerError is rendered when a page fails.
func ServerError() templ.Component {
	return errorPage("Something went wrong", "The page failed to render. Please try again later.")
}

func errorPage(title, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := docsite.NewHTMLWriter(w)
		h.Raw(`<main class="container margin-vert--xl"><h1 class="hero__title">`)
		h.Text(title)
		h.Raw(`</h1><p>`)
		h.Text(message)
		h.Raw(`</p><p><a href="/">Back to the home page</a></p></main>`)
		return h.Err()
	})
	return docsite.Layout(docsite.PageMeta{Title: title}, body)
}
