// Package docsite hosts a documentation website's landing page with Echo and templ.
// It owns everything around the pages: configuration, layout, middleware,
// the feature store behind the landing page, and a small admin dashboard.
//
// Sites provide their own templ components via the ViewFuncs struct; pages
// read the site configuration back through FromContext while rendering.
package docsite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the site's templ components. The framework calls them when
// rendering pages; every component can reach the request's *Context.
type ViewFuncs struct {
	Home             func() templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(features []Feature, message string, csrfToken string) templ.Component
	AdminFeatureForm func(feature Feature, csrfToken string) templ.Component
}

// App is the central docsite application. It wires together the store,
// cache, handlers, middleware, and site templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *FeatureStore
	Cache  *FeatureCache
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	sitemapPaths []string
	staticDir    string
	initialized  bool
}

// New creates a new docsite App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, seeds features, and installs middleware and routes
// without starting the listener. Start calls it; tests call it directly and
// drive a.Echo through httptest.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Views.Home == nil {
		return fmt.Errorf("docsite: Views.Home is required")
	}
	if a.Config.adminEnabled() {
		if a.Config.SessionSecret == "" {
			return fmt.Errorf("docsite: SessionSecret is required when AdminPassword is set")
		}
		if a.Views.AdminLogin == nil || a.Views.AdminDashboard == nil || a.Views.AdminFeatureForm == nil {
			return fmt.Errorf("docsite: admin views are required when AdminPassword is set")
		}
	}

	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("docsite: init store: %w", err)
		}
		a.Store = store
	}

	if a.Config.FeatureSeed != "" {
		features, err := LoadFeatureSeed(a.Config.FeatureSeed)
		if err != nil {
			return err
		}
		n, err := SeedFeatures(a.Store, features)
		if err != nil {
			return err
		}
		if n > 0 {
			a.Echo.Logger.Infof("seeded %d features from %s", n, a.Config.FeatureSeed)
		}
	}

	a.Cache = NewFeatureCache(a.Store, a.Config.FeatureCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.initialized = true
	return nil
}

// Start initializes the App and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets first so they win over same-named files in the static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", handleHealth)
	e.GET("/", a.handleHome)

	if a.Config.adminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.GET("/admin/feature/:slug/", a.handleAdminFeature)
		e.POST("/admin/save/", a.handleAdminSave)
		e.DELETE("/admin/feature/:slug/", a.handleAdminDelete)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
