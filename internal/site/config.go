package site

import (
	"fmt"
	"slices"
)

// Mode selects the layout the generator renders.
type Mode string

const (
	ModeSite Mode = "site" // home page plus top navigation
	ModeDoc  Mode = "doc"  // single documentation sidebar
)

// TransformType controls which node_modules dependencies the generator compiles.
type TransformType string

const (
	TransformAll  TransformType = "all"
	TransformNone TransformType = "none"
)

// Config is the complete site configuration record. Field names follow the
// generator's schema; see MarshalYAML/MarshalJSON for the wire form.
type Config struct {
	Title      string
	Favicon    string
	Logo       string
	OutputPath string
	Mode       Mode
	Hash       bool

	ExportStatic         *ExportStatic
	DynamicImport        *DynamicImport
	Manifest             *Manifest
	NodeModulesTransform *NodeModulesTransform
	ExtraBabelPlugins    []BabelPlugin
	Resolve              *Resolve

	Navs  []Node
	Menus Menus
}

// ExportStatic enables one HTML file per route. An empty value ({}) turns it on with defaults.
type ExportStatic struct {
	HTMLSuffix  bool `yaml:"htmlSuffix,omitempty" json:"htmlSuffix,omitempty"`
	DynamicRoot bool `yaml:"dynamicRoot,omitempty" json:"dynamicRoot,omitempty"`
}

// DynamicImport enables route-level code splitting.
type DynamicImport struct {
	Loading string `yaml:"loading,omitempty" json:"loading,omitempty"`
}

// Manifest emits asset-manifest.json.
type Manifest struct {
	FileName string `yaml:"fileName,omitempty" json:"fileName,omitempty"`
	BasePath string `yaml:"basePath,omitempty" json:"basePath,omitempty"`
}

// NodeModulesTransform selects dependency transpilation.
type NodeModulesTransform struct {
	Type    TransformType `yaml:"type" json:"type"`
	Exclude []string      `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Resolve lists the directories the generator scans for documents.
type Resolve struct {
	Includes []string `yaml:"includes,omitempty" json:"includes,omitempty"`
}

// BabelPlugin is one entry of extraBabelPlugins. On the wire it is either the
// bare plugin name or the tuple [name, options, alias].
type BabelPlugin struct {
	Name    string
	Options map[string]any
	Alias   string
}

// MenuSection is the sidebar shown under one route prefix.
type MenuSection struct {
	Route   string
	Entries []Node
}

// Menus is the ordered route -> sidebar mapping.
type Menus []MenuSection

// Lookup returns the sidebar entries for route.
func (m Menus) Lookup(route string) ([]Node, bool) {
	for _, s := range m {
		if s.Route == route {
			return s.Entries, true
		}
	}
	return nil, false
}

// Routes returns the menu keys in document order.
func (m Menus) Routes() []string {
	out := make([]string, 0, len(m))
	for _, s := range m {
		out = append(out, s.Route)
	}
	return out
}

// LinkRef is a Link together with where it appears in the document.
type LinkRef struct {
	Link     Link
	Location string
	// Section is the menu route for sidebar links, empty for top navigation.
	Section string
}

// Links returns every Link in document order: top navigation first, then menus.
func (c *Config) Links() []LinkRef {
	var out []LinkRef
	collect := func(prefix, section string, nodes []Node) {
		for i, n := range nodes {
			loc := fmt.Sprintf("%s[%d]", prefix, i)
			switch v := n.(type) {
			case Link:
				out = append(out, LinkRef{Link: v, Location: loc, Section: section})
			case Group:
				for j, child := range v.Children {
					out = append(out, LinkRef{Link: child, Location: fmt.Sprintf("%s.children[%d]", loc, j), Section: section})
				}
			}
		}
	}
	collect("navs", "", c.Navs)
	for _, s := range c.Menus {
		collect(menuLocation(s.Route), s.Route, s.Entries)
	}
	return out
}

// NavRoutes returns the distinct site routes declared by the top navigation,
// including routes inside dropdown groups, in document order.
func (c *Config) NavRoutes() []string {
	var out []string
	for _, ref := range c.Links() {
		if ref.Section != "" || !isInternal(ref.Link.Path) {
			continue
		}
		if !slices.Contains(out, ref.Link.Path) {
			out = append(out, ref.Link.Path)
		}
	}
	return out
}

// Includes returns resolve.includes or nil.
func (c *Config) Includes() []string {
	if c.Resolve == nil {
		return nil
	}
	return c.Resolve.Includes
}

func menuLocation(route string) string {
	return fmt.Sprintf("menus[%q]", route)
}
