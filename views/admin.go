package views

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/tailcallhq/docsite"
)

func adminPage(title string, body templ.Component) templ.Component {
	return docsite.Layout(docsite.PageMeta{Title: title + " | Admin"}, body)
}

func csrfField(h *docsite.HTMLWriter, token string) {
	h.Raw(`<input type="hidden" name="_csrf"`)
	h.Attr("value", token)
	h.Raw(`>`)
}

// AdminLogin renders the password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminPage("Sign in", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := docsite.NewHTMLWriter(w)
		h.Raw(`<main class="container admin"><h1>Sign in</h1>`)
		if showError {
			h.Raw(`<p class="admin__error" role="alert">Wrong password.</p>`)
		}
		h.Raw(`<form method="post" action="/admin/login/">`)
		csrfField(h, csrfToken)
		h.Raw(`<label>Password <input type="password" name="password" required autofocus></label>`)
		h.Raw(`<button class="button button--secondary" type="submit">Sign in</button></form></main>`)
		return h.Err()
	}))
}

// AdminDashboard lists every feature with edit and delete actions, followed
// by an empty form for adding a new one.
func AdminDashboard(features []docsite.Feature, message string, csrfToken string) templ.Component {
	return adminPage("Features", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := docsite.NewHTMLWriter(w)
		h.Raw(`<main class="container admin"><h1>Features</h1>`)
		if message != "" {
			h.Raw(`<p class="admin__message" role="status">`)
			h.Text(message)
			h.Raw(`</p>`)
		}
		h.Raw(`<form method="post" action="/admin/logout/">`)
		csrfField(h, csrfToken)
		h.Raw(`<button type="submit">Sign out</button></form>`)

		h.Raw(`<table class="admin__table"><thead><tr><th>Position</th><th>Title</th><th>Slug</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, f := range features {
			editURL := "/admin/feature/" + templ.EscapeString(url.PathEscape(f.Slug)) + "/"
			h.Raw(`<tr><td>`)
			h.Text(strconv.Itoa(f.Position))
			h.Raw(`</td><td>`)
			h.Text(f.Title)
			h.Raw(`</td><td><code>`)
			h.Text(f.Slug)
			h.Raw(`</code></td><td>`)
			if f.Published {
				h.Raw(`published`)
			} else {
				h.Raw(`draft`)
			}
			h.Raw(`</td><td><a href="` + editURL + `">Edit</a> `)
			h.Raw(`<form class="admin__inline" method="post" action="` + editURL + `">`)
			h.Raw(`<input type="hidden" name="_method" value="DELETE">`)
			csrfField(h, csrfToken)
			h.Raw(`<button type="submit">Delete</button></form></td></tr>`)
		}
		h.Raw(`</tbody></table><h2>New feature</h2>`)
		featureForm(h, docsite.Feature{Published: true, Position: len(features)}, csrfToken)
		h.Raw(`</main>`)
		return h.Err()
	}))
}

// AdminFeatureForm renders the edit form for a single feature.
func AdminFeatureForm(feature docsite.Feature, csrfToken string) templ.Component {
	return adminPage("Edit "+feature.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := docsite.NewHTMLWriter(w)
		h.Raw(`<main class="container admin"><h1>Edit feature</h1>`)
		featureForm(h, feature, csrfToken)
		h.Raw(`<p><a href="/admin/">Back to features</a></p></main>`)
		return h.Err()
	}))
}

func featureForm(h *docsite.HTMLWriter, f docsite.Feature, csrfToken string) {
	h.Raw(`<form class="admin__form" method="post" action="/admin/save/">`)
	csrfField(h, csrfToken)
	h.Raw(`<label>Title <input type="text" name="title" required`)
	h.Attr("value", f.Title)
	h.Raw(`></label><label>Slug <input type="text" name="slug" placeholder="derived from title"`)
	h.Attr("value", f.Slug)
	h.Raw(`></label><label>Image <input type="text" name="image" placeholder="/public/img/feature.svg"`)
	h.Attr("value", f.Image)
	h.Raw(`></label><label>Position <input type="number" name="position"`)
	h.Attr("value", strconv.Itoa(f.Position))
	h.Raw(`></label><label>Description <textarea name="description" rows="4">`)
	h.Text(f.Description)
	h.Raw(`</textarea></label><label><input type="checkbox" name="published" value="1"`)
	if f.Published {
		h.Raw(` checked`)
	}
	h.Raw(`> Published</label><button class="button button--secondary" type="submit">Save</button></form>`)
}
