package config

import "git.home.luguber.info/inful/siteconf/internal/site"

// Defaults applied after normalization.
const (
	DefaultOutputPath = "dist"
	DefaultMode       = site.ModeDoc
	DefaultInclude    = "docs"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *site.Config)
	Domain() string
}

// OutputDefaultApplier handles output location and layout defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *site.Config) {
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
}

// ResolveDefaultApplier handles document discovery defaults.
type ResolveDefaultApplier struct{}

func (ResolveDefaultApplier) Domain() string { return "resolve" }

func (ResolveDefaultApplier) ApplyDefaults(cfg *site.Config) {
	if cfg.Resolve == nil {
		cfg.Resolve = &site.Resolve{}
	}
	if len(cfg.Resolve.Includes) == 0 {
		cfg.Resolve.Includes = []string{DefaultInclude}
	}
}

var defaultAppliers = []DefaultApplier{
	OutputDefaultApplier{},
	ResolveDefaultApplier{},
}

func applyDefaults(cfg *site.Config) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}
