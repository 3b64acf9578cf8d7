package testing

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/siteconf/internal/site"
)

// ConfigBuilder provides a fluent interface for creating test configurations
type ConfigBuilder struct {
	config       *site.Config
	environments map[string]map[string]any
	envOrder     []string
	t            *testing.T
}

// NewConfigBuilder creates a new configuration builder for tests
func NewConfigBuilder(t *testing.T) *ConfigBuilder {
	return &ConfigBuilder{
		config: &site.Config{
			Title: "Test Documentation",
			Mode:  site.ModeSite,
		},
		environments: make(map[string]map[string]any),
		t:            t,
	}
}

// WithTitle sets the site title
func (cb *ConfigBuilder) WithTitle(title string) *ConfigBuilder {
	cb.config.Title = title
	return cb
}

// WithMode sets the layout mode
func (cb *ConfigBuilder) WithMode(mode site.Mode) *ConfigBuilder {
	cb.config.Mode = mode
	return cb
}

// WithOutputPath sets the generator output directory
func (cb *ConfigBuilder) WithOutputPath(path string) *ConfigBuilder {
	cb.config.OutputPath = path
	return cb
}

// WithIncludes sets resolve.includes
func (cb *ConfigBuilder) WithIncludes(dirs ...string) *ConfigBuilder {
	cb.config.Resolve = &site.Resolve{Includes: dirs}
	return cb
}

// WithNav appends a top navigation link
func (cb *ConfigBuilder) WithNav(title, path string) *ConfigBuilder {
	cb.config.Navs = append(cb.config.Navs, site.Link{Title: title, Path: path})
	return cb
}

// WithNavGroup appends a top navigation dropdown
func (cb *ConfigBuilder) WithNavGroup(title string, children ...site.Link) *ConfigBuilder {
	cb.config.Navs = append(cb.config.Navs, site.Group{Title: title, Children: children})
	return cb
}

// WithMenu appends a sidebar section
func (cb *ConfigBuilder) WithMenu(route string, entries ...site.Node) *ConfigBuilder {
	cb.config.Menus = append(cb.config.Menus, site.MenuSection{Route: route, Entries: entries})
	return cb
}

// WithEnvironment adds a raw overlay to the environments block
func (cb *ConfigBuilder) WithEnvironment(name string, overlay map[string]any) *ConfigBuilder {
	if _, ok := cb.environments[name]; !ok {
		cb.envOrder = append(cb.envOrder, name)
	}
	cb.environments[name] = overlay
	return cb
}

// Build returns the built configuration
func (cb *ConfigBuilder) Build() *site.Config {
	return cb.config
}

// Document renders the configuration, followed by the environments block when
// overlays were added
func (cb *ConfigBuilder) Document() []byte {
	cb.t.Helper()
	data, err := yaml.Marshal(cb.config)
	if err != nil {
		cb.t.Fatalf("Failed to marshal config: %v", err)
	}
	if len(cb.envOrder) == 0 {
		return data
	}

	envs := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range cb.envOrder {
		var overlay yaml.Node
		if err := overlay.Encode(cb.environments[name]); err != nil {
			cb.t.Fatalf("Failed to encode environment %s: %v", name, err)
		}
		envs.Content = append(envs.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &overlay)
	}
	block, err := yaml.Marshal(map[string]*yaml.Node{"environments": envs})
	if err != nil {
		cb.t.Fatalf("Failed to marshal environments: %v", err)
	}
	return append(data, block...)
}

// BuildAndSave builds the configuration and saves it to a file
func (cb *ConfigBuilder) BuildAndSave(filePath string) *site.Config {
	cb.t.Helper()
	if err := os.WriteFile(filePath, cb.Document(), testFilePermissions); err != nil {
		cb.t.Fatalf("Failed to save config to %s: %v", filePath, err)
	}
	return cb.config
}

// ConfigFactory provides common configuration patterns for tests
type ConfigFactory struct {
	t *testing.T
}

// NewConfigFactory creates a new configuration factory
func NewConfigFactory(t *testing.T) *ConfigFactory {
	return &ConfigFactory{t: t}
}

// MinimalConfig creates a minimal valid configuration
func (cf *ConfigFactory) MinimalConfig() *site.Config {
	return NewConfigBuilder(cf.t).Build()
}

// GuideConfig creates a configuration with one navigation route and its sidebar
func (cf *ConfigFactory) GuideConfig() *ConfigBuilder {
	return NewConfigBuilder(cf.t).
		WithNav("Guide", "/guide").
		WithNavGroup("Links", site.Link{Title: "GitHub", Path: "https://github.com/umijs/dumi"}).
		WithMenu("/guide",
			site.Link{Title: "Intro", Path: "/guide/intro"},
			site.Group{Title: "Advanced", Children: []site.Link{{Title: "Theming", Path: "/guide/theming"}}},
		)
}

// DanglingMenuConfig creates a configuration whose only sidebar is unreachable from the navigation
func (cf *ConfigFactory) DanglingMenuConfig() *ConfigBuilder {
	return NewConfigBuilder(cf.t).
		WithNav("Guide", "/guide").
		WithMenu("/api", site.Link{Title: "Client", Path: "/api/client"})
}
