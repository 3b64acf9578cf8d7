package site

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
)

// Policy decides how a rule violation is reported.
type Policy string

const (
	PolicyError Policy = "error"
	PolicyWarn  Policy = "warn"
)

// ValidateOptions tunes Validate.
type ValidateOptions struct {
	// DanglingMenus applies to menu routes the top navigation never links to.
	// The zero value behaves like PolicyError.
	DanglingMenus Policy
}

// Validate checks the semantic rules of a decoded configuration. Structural
// issues (malformed or nested entries) are found by Decode and are not repeated.
func (c *Config) Validate(opts ValidateOptions) *Report {
	v := &validator{cfg: c, report: &Report{}}
	v.metadata()
	v.options()
	v.navigation()
	v.menus(opts.DanglingMenus)
	return v.report
}

type validator struct {
	cfg    *Config
	report *Report
}

func (v *validator) metadata() {
	if strings.TrimSpace(v.cfg.Title) == "" {
		v.report.Errorf(CodeMissingField, "title", "site title is required")
	}
	if v.cfg.Favicon != "" {
		v.ref("favicon", v.cfg.Favicon)
	}
	if v.cfg.Logo != "" {
		v.ref("logo", v.cfg.Logo)
	}
	if p := v.cfg.OutputPath; p != "" && (strings.HasPrefix(p, "/") || strings.HasPrefix(p, "..")) {
		v.report.Warnf(CodeInvalidPath, "outputPath", "output path %q points outside the project", p)
	}
	switch v.cfg.Mode {
	case "", ModeSite, ModeDoc:
	default:
		v.report.Errorf(CodeInvalidValue, "mode", "unsupported mode %q (allowed: site|doc)", v.cfg.Mode)
	}
}

func (v *validator) options() {
	if t := v.cfg.NodeModulesTransform; t != nil {
		switch t.Type {
		case TransformAll, TransformNone:
		case "":
			v.report.Errorf(CodeMissingField, "nodeModulesTransform.type", "transform type is required (all|none)")
		default:
			v.report.Errorf(CodeInvalidValue, "nodeModulesTransform.type", "unsupported transform type %q (allowed: all|none)", t.Type)
		}
	}
	for i, p := range v.cfg.ExtraBabelPlugins {
		if strings.TrimSpace(p.Name) == "" {
			v.report.Errorf(CodeMissingField, fmt.Sprintf("extraBabelPlugins[%d]", i), "babel plugin name is required")
		}
	}
	if r := v.cfg.Resolve; r != nil {
		for i, inc := range r.Includes {
			if strings.TrimSpace(inc) == "" {
				v.report.Errorf(CodeInvalidPath, fmt.Sprintf("resolve.includes[%d]", i), "include directory is empty")
			}
		}
	}
}

func (v *validator) navigation() {
	v.titles("navs", v.cfg.Navs)
	seen := map[string]string{}
	for _, ref := range v.cfg.Links() {
		v.ref(ref.Location+".path", ref.Link.Path)
		if ref.Section != "" || ref.Link.External() {
			continue
		}
		if first, dup := seen[ref.Link.Path]; dup {
			v.report.Warnf(CodeDuplicateRoute, ref.Location, "route %q is already linked at %s", ref.Link.Path, first)
			continue
		}
		seen[ref.Link.Path] = ref.Location
	}
}

func (v *validator) menus(dangling Policy) {
	declared := v.cfg.NavRoutes()
	for _, s := range v.cfg.Menus {
		loc := menuLocation(s.Route)
		v.titles(loc, s.Entries)
		if !isInternal(s.Route) {
			v.report.Errorf(CodeInvalidPath, loc, "menu route %q must start with /", s.Route)
			continue
		}
		if !slices.Contains(declared, s.Route) {
			msg := fmt.Sprintf("menu route %q has no entry in the top navigation, so its sidebar is unreachable", s.Route)
			if dangling == PolicyWarn {
				v.report.Warnf(CodeDanglingMenu, loc, "%s", msg)
			} else {
				v.report.Errorf(CodeDanglingMenu, loc, "%s", msg)
			}
		}
	}
	for _, ref := range v.cfg.Links() {
		if ref.Section == "" || !isInternal(ref.Section) || !isInternal(ref.Link.Path) {
			continue
		}
		if !underRoute(ref.Link.Path, ref.Section) {
			v.report.Warnf(CodeOutsideSection, ref.Location, "sidebar link %q is outside section %q", ref.Link.Path, ref.Section)
		}
	}
}

func (v *validator) titles(prefix string, nodes []Node) {
	for i, n := range nodes {
		loc := fmt.Sprintf("%s[%d]", prefix, i)
		if strings.TrimSpace(n.Label()) == "" {
			v.report.Errorf(CodeMissingField, loc+".title", "%s title is required", n.Kind())
		}
		if g, ok := AsGroup(n); ok {
			for j, c := range g.Children {
				if strings.TrimSpace(c.Title) == "" {
					v.report.Errorf(CodeMissingField, fmt.Sprintf("%s.children[%d].title", loc, j), "link title is required")
				}
			}
		}
	}
}

// ref checks a value that must be a site route or an absolute http(s) URL.
func (v *validator) ref(loc, p string) {
	switch {
	case strings.TrimSpace(p) == "":
		v.report.Errorf(CodeMissingField, loc, "path is required")
	case isInternal(p):
		if strings.IndexFunc(p, unicode.IsSpace) >= 0 {
			v.report.Errorf(CodeInvalidPath, loc, "route %q contains whitespace", p)
		}
	case isExternal(p):
		if err := checkURL(p); err != nil {
			v.report.Errorf(CodeInvalidURL, loc, "%v", err)
		}
	default:
		v.report.Errorf(CodeInvalidPath, loc, "%q must be a site route starting with / or an absolute http(s) URL", p)
	}
}

func isInternal(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}

func isExternal(p string) bool {
	return strings.Contains(p, "://") || strings.HasPrefix(p, "//")
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", raw)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return fmt.Errorf("URL %q has an invalid host: %w", raw, err)
	}
	return nil
}

func underRoute(p, route string) bool {
	if route == "/" || p == route {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(route, "/")+"/")
}
