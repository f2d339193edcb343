package docsite

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrNoContext is returned by components rendered outside a request that the
// App prepared, for example a test that forgot WithContext.
var ErrNoContext = errors.New("docsite: no site context")

// UnknownScreenWidth is reported when the client sent no usable viewport hint.
const UnknownScreenWidth = -1

// Dimensions is a width/height pair in CSS pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Unmeasured is the value view state holds before a component measures anything.
var Unmeasured = Dimensions{Width: -1, Height: -1}

// ViewState is scratch state owned by the page being rendered. It lives for
// one request and is discarded with it.
type ViewState struct {
	Dimensions Dimensions
}

// NewViewState returns view state with every measurement unset.
func NewViewState() *ViewState {
	return &ViewState{Dimensions: Unmeasured}
}

// Context is what pages read from the framework while rendering.
type Context struct {
	SiteConfig  SiteConfig
	Features    []Feature
	ScreenWidth int
	State       *ViewState
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying sc.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// FromContext returns the site context stored by WithContext.
func FromContext(ctx context.Context) (*Context, error) {
	sc, ok := ctx.Value(contextKey{}).(*Context)
	if !ok || sc == nil {
		return nil, ErrNoContext
	}
	if sc.State == nil {
		sc.State = NewViewState()
	}
	return sc, nil
}

// clientHintHeaders lists the viewport client hints in order of preference.
var clientHintHeaders = []string{"Sec-CH-Viewport-Width", "Viewport-Width"}

// ScreenWidthFromRequest reads the client's viewport width from client hint
// headers. It returns UnknownScreenWidth when no valid hint is present.
func ScreenWidthFromRequest(r *http.Request) int {
	for _, h := range clientHintHeaders {
		v := strings.TrimSpace(r.Header.Get(h))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			continue
		}
		return n
	}
	return UnknownScreenWidth
}
