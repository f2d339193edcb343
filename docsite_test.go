package docsite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func textComponent(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

// stubViews renders plain-text markers so tests can assert what the
// framework handed to each view.
func stubViews() ViewFuncs {
	return ViewFuncs{
		Home: func() templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				sc, err := FromContext(ctx)
				if err != nil {
					return err
				}
				var titles []string
				for _, f := range sc.Features {
					titles = append(titles, f.Title)
				}
				_, err = fmt.Fprintf(w, "home title=%s features=%s width=%d", sc.SiteConfig.Title, strings.Join(titles, ","), sc.ScreenWidth)
				return err
			})
		},
		NotFound:    func() templ.Component { return textComponent("not found page") },
		ServerError: func() templ.Component { return textComponent("server error page") },
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return textComponent("login error=%v token=%s;", showError, csrfToken)
		},
		AdminDashboard: func(features []Feature, message string, csrfToken string) templ.Component {
			return textComponent("dashboard msg=%s count=%d token=%s;", message, len(features), csrfToken)
		},
		AdminFeatureForm: func(feature Feature, csrfToken string) templ.Component {
			return textComponent("form slug=%s title=%s", feature.Slug, feature.Title)
		},
	}
}

func newTestApp(t *testing.T, cfg SiteConfig, views ViewFuncs) *App {
	t.Helper()
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(t.TempDir(), "site.db")
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = -1
	}
	a := New(cfg, views, WithStaticDir(t.TempDir()))
	if err := a.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

// client replays cookies between requests regardless of path.
type client struct {
	t       *testing.T
	a       *App
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, a *App) *client {
	return &client{t: t, a: a, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.a.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func tokenFrom(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, "token=")
	if i < 0 {
		t.Fatalf("no token in %q", body)
	}
	rest := body[i+len("token="):]
	j := strings.Index(rest, ";")
	if j < 0 {
		t.Fatalf("unterminated token in %q", body)
	}
	return rest[:j]
}

func TestInitRequiresHomeView(t *testing.T) {
	a := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "site.db")}, ViewFuncs{})
	defer a.Close()
	if err := a.Init(); err == nil {
		t.Fatal("expected error without a Home view")
	}
}

func TestInitRequiresSessionSecretWithAdmin(t *testing.T) {
	a := New(SiteConfig{
		DatabasePath:  filepath.Join(t.TempDir(), "site.db"),
		AdminPassword: "pw",
	}, stubViews())
	defer a.Close()
	if err := a.Init(); err == nil || !strings.Contains(err.Error(), "SessionSecret") {
		t.Fatalf("expected SessionSecret error, got %v", err)
	}
}

func TestHomeGetsConfigFeaturesAndViewport(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []Feature{
		{Slug: "one", Title: "One", Position: 0, Published: true},
		{Slug: "two", Title: "Two", Position: 1, Published: true},
		{Slug: "draft", Title: "Draft", Position: 2},
	} {
		if err := store.SaveFeature(f); err != nil {
			t.Fatal(err)
		}
	}
	a := New(SiteConfig{Title: "Tailcall", RateLimit: -1}, stubViews(), WithStore(store), WithStaticDir(t.TempDir()))
	if err := a.Init(); err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Sec-CH-Viewport-Width", "1920")
	rec := newClient(t, a).do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got, want := rec.Body.String(), "home title=Tailcall features=One,Two width=1920"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
	if rec.Header().Get("Accept-CH") != "Sec-CH-Viewport-Width" {
		t.Errorf("missing Accept-CH header: %v", rec.Header())
	}
	if !strings.Contains(rec.Header().Get("Vary"), "Sec-CH-Viewport-Width") {
		t.Errorf("missing Vary on viewport hint: %v", rec.Header())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id")
	}
}

func TestHomeWithoutHintReportsUnknownWidth(t *testing.T) {
	a := newTestApp(t, SiteConfig{Title: "T"}, stubViews())
	rec := newClient(t, a).get("/")
	if !strings.HasSuffix(rec.Body.String(), "width=-1") {
		t.Errorf("body = %q, want unknown width", rec.Body.String())
	}
}

func TestSeedOnInit(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "features.yaml")
	if err := writeFile(seed, sampleSeed); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, SiteConfig{Title: "T", FeatureSeed: seed}, stubViews())
	rec := newClient(t, a).get("/")
	if !strings.Contains(rec.Body.String(), "features=Easy to Use,Built for Scale ") {
		t.Errorf("seeded features missing: %q", rec.Body.String())
	}
}

func TestServerErrorBoundary(t *testing.T) {
	views := stubViews()
	views.Home = func() templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return errors.New("features component exploded")
		})
	}
	a := newTestApp(t, SiteConfig{}, views)
	rec := newClient(t, a).get("/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.String() != "server error page" {
		t.Errorf("body = %q, want server error page", rec.Body.String())
	}
}

func TestNotFoundUsesView(t *testing.T) {
	a := newTestApp(t, SiteConfig{}, stubViews())
	rec := newClient(t, a).get("/missing/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if rec.Body.String() != "not found page" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t, SiteConfig{}, stubViews())
	rec := newClient(t, a).get("/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
}

func TestRobotsAndSitemap(t *testing.T) {
	a := newTestApp(t, SiteConfig{URL: "https://tailcall.run"}, stubViews())
	a.AddSitemapPath("docs")
	c := newClient(t, a)

	rec := c.get("/robots.txt")
	if !strings.Contains(rec.Body.String(), "Sitemap: https://tailcall.run/sitemap.xml") {
		t.Errorf("robots.txt = %q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Disallow: /admin/") {
		t.Errorf("robots.txt should hide admin: %q", rec.Body.String())
	}

	rec = c.get("/sitemap.xml")
	body := rec.Body.String()
	if !strings.Contains(body, "<loc>https://tailcall.run/</loc>") || !strings.Contains(body, "<loc>https://tailcall.run/docs/</loc>") {
		t.Errorf("sitemap = %q", body)
	}
}

func TestEmbeddedStylesheet(t *testing.T) {
	a := newTestApp(t, SiteConfig{}, stubViews())
	rec := newClient(t, a).get("/public/site.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".heroBanner") {
		t.Error("stylesheet missing hero rules")
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "immutable") {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	a := newTestApp(t, SiteConfig{}, stubViews())
	rec := newClient(t, a).get("/admin/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAdminFeatureLifecycle(t *testing.T) {
	a := newTestApp(t, SiteConfig{Title: "T", AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"}, stubViews())
	c := newClient(t, a)

	rec := c.get("/admin/")
	if !strings.HasPrefix(rec.Body.String(), "login error=false") {
		t.Fatalf("expected login page, got %q", rec.Body.String())
	}
	token := tokenFrom(t, rec.Body.String())

	rec = c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized || !strings.HasPrefix(rec.Body.String(), "login error=true") {
		t.Fatalf("wrong password: status=%d body=%q", rec.Code, rec.Body.String())
	}

	rec = c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"pw"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", rec.Code)
	}

	rec = c.get("/admin/")
	if !strings.HasPrefix(rec.Body.String(), "dashboard msg= count=0") {
		t.Fatalf("expected empty dashboard, got %q", rec.Body.String())
	}

	rec = c.postForm("/admin/save/", url.Values{
		"_csrf":       {token},
		"title":       {"Fast Edge"},
		"description": {"Runs **close** to users."},
		"position":    {"1"},
		"published":   {"1"},
	})
	if !strings.HasPrefix(rec.Body.String(), "dashboard msg=saved count=1") {
		t.Fatalf("save: %q", rec.Body.String())
	}

	rec = c.get("/admin/feature/fast-edge/")
	if rec.Body.String() != "form slug=fast-edge title=Fast Edge" {
		t.Errorf("edit form = %q", rec.Body.String())
	}

	rec = c.get("/")
	if !strings.Contains(rec.Body.String(), "features=Fast Edge ") {
		t.Errorf("saved feature not on home page: %q", rec.Body.String())
	}

	rec = c.postForm("/admin/feature/fast-edge/", url.Values{"_csrf": {token}, "_method": {"DELETE"}})
	if !strings.HasPrefix(rec.Body.String(), "dashboard msg=deleted count=0") {
		t.Fatalf("delete: status=%d body=%q", rec.Code, rec.Body.String())
	}

	rec = c.postForm("/admin/logout/", url.Values{"_csrf": {token}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout status = %d", rec.Code)
	}
	rec = c.get("/admin/")
	if !strings.HasPrefix(rec.Body.String(), "login") {
		t.Errorf("expected login page after logout, got %q", rec.Body.String())
	}
}

func TestAdminRejectsMissingCSRF(t *testing.T) {
	a := newTestApp(t, SiteConfig{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"}, stubViews())
	c := newClient(t, a)
	c.get("/admin/")
	rec := c.postForm("/admin/login/", url.Values{"password": {"pw"}})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAdminSaveRequiresSession(t *testing.T) {
	a := newTestApp(t, SiteConfig{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"}, stubViews())
	c := newClient(t, a)
	token := tokenFrom(t, c.get("/admin/").Body.String())
	rec := c.postForm("/admin/save/", url.Values{"_csrf": {token}, "title": {"Sneaky"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect to login", rec.Code)
	}
	if n, _ := a.Store.CountFeatures(); n != 0 {
		t.Errorf("unauthenticated save stored %d features", n)
	}
}

func TestAdminSaveRequiresTitle(t *testing.T) {
	a := newTestApp(t, SiteConfig{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"}, stubViews())
	c := newClient(t, a)
	token := tokenFrom(t, c.get("/admin/").Body.String())
	if rec := c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"pw"}}); rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d", rec.Code)
	}

	rec := c.postForm("/admin/save/", url.Values{"_csrf": {token}, "slug": {"untitled"}, "title": {"  "}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "msg=Title+is+required") {
		t.Errorf("Location = %q, want a title message", loc)
	}
	if n, _ := a.Store.CountFeatures(); n != 0 {
		t.Errorf("untitled save stored %d features", n)
	}
}

func TestAdminLoginLocksOutAfterFailures(t *testing.T) {
	a := newTestApp(t, SiteConfig{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"}, stubViews())
	c := newClient(t, a)
	token := tokenFrom(t, c.get("/admin/").Body.String())

	for i := 0; i < 5; i++ {
		rec := c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"wrong"}})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, rec.Code)
		}
	}
	rec := c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"pw"}})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status after lockout = %d, want 429", rec.Code)
	}
}

func TestAdminSuccessfulLoginsDoNotCount(t *testing.T) {
	a := newTestApp(t, SiteConfig{AdminPassword: "pw", SessionSecret: "0123456789abcdef0123456789abcdef"}, stubViews())
	c := newClient(t, a)
	token := tokenFrom(t, c.get("/admin/").Body.String())

	for i := 0; i < 4; i++ {
		c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"wrong"}})
	}
	for i := 0; i < 6; i++ {
		rec := c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"pw"}})
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("successful login %d: status = %d, want 303", i+1, rec.Code)
		}
	}
	rec := c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("fifth failure: status = %d, want 401", rec.Code)
	}
	rec = c.postForm("/admin/login/", url.Values{"_csrf": {token}, "password": {"pw"}})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("after five failures: status = %d, want 429", rec.Code)
	}
}

func TestGlobalRateLimit(t *testing.T) {
	a := newTestApp(t, SiteConfig{RateLimit: 0.4}, stubViews())
	c := newClient(t, a)

	if rec := c.get("/"); rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", rec.Code)
	}
	if rec := c.get("/"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", rec.Code)
	}
	if rec := c.get("/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz: status = %d, want 200 (not rate limited)", rec.Code)
	}
}

func TestRateLimitBurst(t *testing.T) {
	tests := []struct {
		perSecond float64
		want      int
	}{
		{0.1, 1},
		{0.4, 1},
		{0.5, 1},
		{0.6, 2},
		{20, 40},
	}
	for _, tt := range tests {
		if got := rateLimitBurst(tt.perSecond); got != tt.want {
			t.Errorf("rateLimitBurst(%v) = %d, want %d", tt.perSecond, got, tt.want)
		}
	}
}
