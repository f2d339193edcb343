// Command docsite serves the documentation site's landing page.
//
// Usage:
//
//	docsite serve -config docsite.toml
//	docsite seed -config docsite.toml features.yaml
//	docsite init mysite
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/tailcallhq/docsite"
	"github.com/tailcallhq/docsite/scaffold"
	"github.com/tailcallhq/docsite/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "version":
		fmt.Printf("docsite %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Println(`docsite - landing page server for documentation sites

Usage:
  docsite <command> [arguments]

Commands:
  serve [-config file]              Start the web server
  seed [-config file] <file.yaml>   Import features into an empty store
  init <dir>                        Write a starter config and feature list
  version                           Print the docsite version
  help                              Show this help message

Environment:
  DOCSITE_ADMIN_PASSWORD, DOCSITE_SESSION_SECRET enable the admin dashboard.
  Any DOCSITE_* variable overrides the matching config file key.`)
}

// loadConfig reads the optional TOML file and overlays the environment.
func loadConfig(path string) (docsite.SiteConfig, error) {
	var cfg docsite.SiteConfig
	if path != "" {
		var err error
		cfg, err = docsite.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	return docsite.ApplyEnv(cfg)
}

func siteViews() docsite.ViewFuncs {
	return docsite.ViewFuncs{
		Home:             views.Home,
		NotFound:         views.NotFound,
		ServerError:      views.ServerError,
		AdminLogin:       views.AdminLogin,
		AdminDashboard:   views.AdminDashboard,
		AdminFeatureForm: views.AdminFeatureForm,
	}
}

func runServe(args []string) error {
	fset := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fset.String("config", docsite.EnvOr("DOCSITE_CONFIG", ""), "path to docsite.toml")
	staticDir := fset.String("static", "public", "directory served under /public/")
	if err := fset.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	app := docsite.New(cfg, siteViews(), docsite.WithStaticDir(*staticDir))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("docsite: shutdown: %w", err)
	}
	return <-errc
}

func runSeed(args []string) error {
	fset := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fset.String("config", docsite.EnvOr("DOCSITE_CONFIG", ""), "path to docsite.toml")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() != 1 {
		return fmt.Errorf("usage: docsite seed [-config file] <file.yaml>")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/site.db"
	}

	features, err := docsite.LoadFeatureSeed(fset.Arg(0))
	if err != nil {
		return err
	}
	store, err := docsite.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := docsite.SeedFeatures(store, features)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Printf("%s already holds features, nothing imported\n", cfg.DatabasePath)
		return nil
	}
	fmt.Printf("imported %d features into %s\n", n, cfg.DatabasePath)
	return nil
}

func runInit(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: docsite init <dir>")
	}
	dir := args[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	created, err := scaffold.Write(dir, scaffold.Data{SiteTitle: scaffold.ToTitle(filepath.Base(dir))})
	if err != nil {
		return err
	}
	for _, p := range created {
		fmt.Printf("  created %s\n", p)
	}
	fmt.Printf("\nNext steps:\n\n  cd %s\n  docsite serve -config docsite.toml\n", dir)
	return nil
}
