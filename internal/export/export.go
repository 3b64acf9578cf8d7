// Package export renders a resolved site configuration in the forms the
// documentation generator reads: a TypeScript config module, JSON or YAML.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/foundation/normalization"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// Format is an output encoding.
type Format string

const (
	FormatTS   Format = "ts"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var formatNormalizer = normalization.NewNormalizer("format", map[string]Format{
	"ts":         FormatTS,
	"typescript": FormatTS,
	"json":       FormatJSON,
	"yaml":       FormatYAML,
	"yml":        FormatYAML,
})

const (
	tsHeader = "import { defineConfig } from 'dumi';\n\nexport default defineConfig("
	tsFooter = ");\n"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	f, err := formatNormalizer.Parse(s)
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryConfig, "unsupported export format").UserAction().Build()
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".js", ".mjs":
		return FormatTS, true
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Write encodes cfg to w.
func Write(w io.Writer, cfg *site.Config, f Format) error {
	data, err := Render(cfg, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write export").Build()
	}
	return nil
}

// Render returns the encoded configuration.
func Render(cfg *site.Config, f Format) ([]byte, error) {
	switch f {
	case FormatTS:
		body, err := indentedJSON(cfg)
		if err != nil {
			return nil, err
		}
		return []byte(tsHeader + strings.TrimSuffix(string(body), "\n") + tsFooter), nil
	case FormatJSON:
		return indentedJSON(cfg)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode YAML").Build()
		}
		if err := enc.Close(); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode YAML").Build()
		}
		return buf.Bytes(), nil
	default:
		return nil, derrors.ConfigError(fmt.Sprintf("unsupported export format %q", f)).Build()
	}
}

func indentedJSON(cfg *site.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode JSON").Build()
	}
	return buf.Bytes(), nil
}

// WriteFile renders cfg and replaces path atomically. Unchanged content is
// not rewritten, so file watchers downstream see no event.
func WriteFile(path string, cfg *site.Config, f Format) (bool, error) {
	data, err := Render(cfg, f)
	if err != nil {
		return false, err
	}
	// #nosec G304 -- path is the user-selected export target
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create temporary export file").
			WithContext("dir", dir).
			Build()
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write export").WithContext("path", path).Build()
	}
	if err := tmp.Close(); err != nil {
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write export").WithContext("path", path).Build()
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to set export permissions").WithContext("path", path).Build()
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to replace export").WithContext("path", path).Build()
	}
	return true, nil
}
