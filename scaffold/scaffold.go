// Package scaffold holds the starter files written by `docsite init`.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the variables passed to every scaffold template.
type Data struct {
	SiteTitle string
}

// Write renders every template into dir and returns the created paths.
// It refuses to overwrite files: if any output already exists nothing is
// written, and a failure part way through removes the files it created.
func Write(dir string, data Data) ([]string, error) {
	files, err := plan(dir)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := os.Lstat(f.out); err == nil {
			return nil, fmt.Errorf("%s already exists", f.out)
		}
	}

	var created []string
	for _, f := range files {
		if err := writeFile(f, data); err != nil {
			for _, p := range created {
				os.Remove(p)
			}
			return nil, err
		}
		created = append(created, f.out)
	}
	return created, nil
}

type scaffoldFile struct {
	tmpl string // path inside Templates
	out  string
}

// plan maps every embedded template to its output path under dir.
func plan(dir string) ([]scaffoldFile, error) {
	const root = "templates"
	var files []scaffoldFile
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}
		files = append(files, scaffoldFile{tmpl: path, out: outPath})
		return nil
	})
	return files, err
}

func writeFile(f scaffoldFile, data Data) (err error) {
	content, err := Templates.ReadFile(f.tmpl)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.tmpl, err)
	}
	tmpl, err := template.New(filepath.Base(f.tmpl)).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", f.tmpl, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.out), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(f.out, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.out, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", f.out, cerr)
		}
		if err != nil {
			os.Remove(f.out)
		}
	}()
	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("execute template %s: %w", f.tmpl, err)
	}
	return nil
}

// ToTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-docs" -> "My Docs", "tailcall" -> "Tailcall"
func ToTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
