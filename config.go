package docsite

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// SiteConfig holds all configuration for a docsite.
type SiteConfig struct {
	Title     string // Site title shown in the navbar and page titles (default "Tailcall")
	Tagline   string // Short tagline used as the default meta description
	URL       string // Canonical URL (default "http://localhost:3000")
	Copyright string // Footer copyright line

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")
	FeatureSeed  string // Optional YAML file imported when the feature store is empty

	AdminPassword string // Enables the admin dashboard when set
	SessionSecret string // Required with AdminPassword
	CookieSecure  bool   // Set true for HTTPS

	FeatureCacheTTL time.Duration // Feature cache TTL (default 5min)
	RateLimit       float64       // Requests per second per IP (default 20, <0 disables)
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "Tailcall"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.Copyright == "" {
		c.Copyright = fmt.Sprintf("Copyright © %d %s", time.Now().Year(), c.Title)
	}
	if c.FeatureCacheTTL == 0 {
		c.FeatureCacheTTL = 5 * time.Minute
	}
	if c.RateLimit == 0 {
		c.RateLimit = 20
	}
}

func (c SiteConfig) adminEnabled() bool {
	return c.AdminPassword != ""
}

type fileConfig struct {
	Title           string  `toml:"title"`
	Tagline         string  `toml:"tagline"`
	URL             string  `toml:"url"`
	Copyright       string  `toml:"copyright"`
	Addr            string  `toml:"addr"`
	DatabasePath    string  `toml:"database_path"`
	FeatureSeed     string  `toml:"feature_seed"`
	CookieSecure    bool    `toml:"cookie_secure"`
	FeatureCacheTTL string  `toml:"feature_cache_ttl"`
	RateLimit       float64 `toml:"rate_limit"`
}

// LoadConfig reads a TOML site configuration. Keys missing from the file keep
// their zero value so setDefaults can fill them later. Secrets are never read
// from the file; use ApplyEnv for those.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("docsite: load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return SiteConfig{}, fmt.Errorf("docsite: unknown config key %q", undecoded[0].String())
	}

	cfg.Title = strings.TrimSpace(raw.Title)
	cfg.Tagline = strings.TrimSpace(raw.Tagline)
	cfg.URL = strings.TrimRight(strings.TrimSpace(raw.URL), "/")
	cfg.Copyright = raw.Copyright
	cfg.Addr = strings.TrimSpace(raw.Addr)
	cfg.DatabasePath = strings.TrimSpace(raw.DatabasePath)
	cfg.FeatureSeed = strings.TrimSpace(raw.FeatureSeed)
	cfg.CookieSecure = raw.CookieSecure

	if meta.IsDefined("feature_cache_ttl") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.FeatureCacheTTL))
		if err != nil {
			return SiteConfig{}, fmt.Errorf("docsite: parse feature_cache_ttl: %w", err)
		}
		cfg.FeatureCacheTTL = d
	}
	if meta.IsDefined("rate_limit") {
		cfg.RateLimit = raw.RateLimit
	}
	return cfg, nil
}

// ApplyEnv overlays DOCSITE_* environment variables onto cfg.
// Variables that are unset leave the existing value untouched.
func ApplyEnv(cfg SiteConfig) (SiteConfig, error) {
	cfg.Title = EnvOr("DOCSITE_TITLE", cfg.Title)
	cfg.Tagline = EnvOr("DOCSITE_TAGLINE", cfg.Tagline)
	cfg.URL = strings.TrimRight(EnvOr("DOCSITE_URL", cfg.URL), "/")
	cfg.Addr = EnvOr("DOCSITE_ADDR", cfg.Addr)
	cfg.DatabasePath = EnvOr("DOCSITE_DATABASE_PATH", cfg.DatabasePath)
	cfg.FeatureSeed = EnvOr("DOCSITE_FEATURE_SEED", cfg.FeatureSeed)
	cfg.AdminPassword = EnvOr("DOCSITE_ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.SessionSecret = EnvOr("DOCSITE_SESSION_SECRET", cfg.SessionSecret)

	if v := EnvOr("DOCSITE_COOKIE_SECURE", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("docsite: parse DOCSITE_COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v := EnvOr("DOCSITE_FEATURE_CACHE_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("docsite: parse DOCSITE_FEATURE_CACHE_TTL: %w", err)
		}
		cfg.FeatureCacheTTL = d
	}
	if v := EnvOr("DOCSITE_RATE_LIMIT", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("docsite: parse DOCSITE_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = f
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithStore uses an already opened FeatureStore instead of opening
// Config.DatabasePath on Start. The App takes ownership and closes it.
func WithStore(s *FeatureStore) Option {
	return func(a *App) {
		a.Store = s
	}
}
