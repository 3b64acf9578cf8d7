// Package docroot checks that site routes referenced by the navigation have
// source documents in the project's include directories.
package docroot

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// documentExtensions are the source extensions the generator renders as pages.
var documentExtensions = []string{".md", ".mdx"}

// indexNames are the files that back a directory route.
var indexNames = []string{"index.md", "index.mdx", "README.md"}

// Check looks up every internal link of cfg below projectRoot and returns a
// missing-doc warning for each route no include directory can serve.
func Check(cfg *site.Config, projectRoot string) (*site.Report, error) {
	report := &site.Report{}
	var dirs []string
	for i, inc := range cfg.Includes() {
		dir := filepath.Join(projectRoot, filepath.FromSlash(inc))
		ok, err := isDir(dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			report.Warnf(site.CodeMissingDoc, fmt.Sprintf("resolve.includes[%d]", i), "include directory %q does not exist", inc)
			continue
		}
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		return report, nil
	}

	checked := map[string]bool{}
	for _, ref := range cfg.Links() {
		route := ref.Link.Path
		if ref.Link.External() || !strings.HasPrefix(route, "/") {
			continue
		}
		found, seen := checked[route]
		if !seen {
			var err error
			if found, err = resolves(dirs, route); err != nil {
				return nil, err
			}
			checked[route] = found
		}
		if !found {
			report.Warnf(site.CodeMissingDoc, ref.Location, "no document found for route %q", route)
		}
	}
	return report, nil
}

// Candidates lists the files that can serve route inside dir, in lookup order.
func Candidates(dir, route string) []string {
	rel := strings.Trim(route, "/")
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	var out []string
	if rel != "" {
		base := filepath.Join(dir, filepath.FromSlash(rel))
		for _, ext := range documentExtensions {
			out = append(out, base+ext)
		}
	}
	for _, name := range indexNames {
		out = append(out, filepath.Join(dir, filepath.FromSlash(rel), name))
	}
	return out
}

func resolves(dirs []string, route string) (bool, error) {
	for _, dir := range dirs {
		for _, candidate := range Candidates(dir, route) {
			info, err := os.Stat(candidate)
			switch {
			case err == nil && !info.IsDir():
				slog.Debug("Route resolved", logfields.Route(route), logfields.Path(candidate))
				return true, nil
			case err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission):
				return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to inspect document").
					WithContext("path", candidate).
					Build()
			}
		}
	}
	return false, nil
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to inspect include directory").
			WithContext("path", path).
			Build()
	}
}
