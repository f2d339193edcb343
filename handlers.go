package docsite

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	sc, err := FromContext(c.Request().Context())
	if err != nil {
		return err
	}
	features, err := a.Cache.ListFeatures()
	if err != nil {
		return fmt.Errorf("docsite: load features: %w", err)
	}
	sc.Features = features
	return Render(c, a.Views.Home())
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleRobots generates robots.txt from the configured site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n", BuildURL(a.Config.URL)+"sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// httpErrorHandler is the framework error boundary. Pages return errors and
// this decides what the visitor sees.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if _, ctxErr := FromContext(c.Request().Context()); ctxErr != nil {
		req := c.Request()
		c.SetRequest(req.WithContext(WithContext(req.Context(), &Context{
			SiteConfig:  a.Config,
			ScreenWidth: UnknownScreenWidth,
			State:       NewViewState(),
		})))
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		a.renderErrorPage(c, http.StatusNotFound, a.Views.NotFound, err)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		a.renderErrorPage(c, code, a.Views.ServerError, err)
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) renderErrorPage(c echo.Context, code int, view func() templ.Component, cause error) {
	if view == nil {
		a.Echo.DefaultHTTPErrorHandler(cause, c)
		return
	}
	if err := RenderStatus(c, code, view()); err != nil {
		c.Logger().Errorf("render error page: %v", err)
		if !c.Response().Committed {
			_ = c.String(code, http.StatusText(code))
		}
	}
}
