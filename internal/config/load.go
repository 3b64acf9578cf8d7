package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/observability"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// Options controls how a configuration file is resolved.
type Options struct {
	// Environment selects an overlay from the environments block. Empty means base only.
	Environment string
	// ExpandEnv substitutes $VAR and ${VAR} before parsing.
	ExpandEnv bool
	// SkipEnvFiles disables loading .env/.env.local next to the file.
	SkipEnvFiles bool
	// Strict turns warnings into errors.
	Strict bool
	// DanglingMenus is the policy for menu routes missing from the top navigation.
	DanglingMenus site.Policy
}

// Result is a resolved, validated configuration together with what was found
// on the way.
type Result struct {
	Config      *site.Config
	Report      *site.Report
	Environment string
	EnvFile     string
	LoadID      string
}

// Load reads, resolves and validates the configuration at path. Documents with
// error-severity issues produce a CategoryValidation error wrapping
// *site.ReportError, which carries the full report.
func Load(path string, opts Options) (*Result, error) {
	var (
		envFile string
		dotenv  map[string]string
	)
	if !opts.SkipEnvFiles {
		f, vars, err := readEnvFile(filepath.Dir(path))
		if err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to load environment file").
				WithContext("dir", filepath.Dir(path)).
				Build()
		}
		envFile, dotenv = f, vars
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.WrapError(err, derrors.CategoryNotFound, fmt.Sprintf("configuration file not found: %s", path)).
				UserAction().
				WithHint("run 'siteconf init' to create one").
				WithContext("path", path).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	res, err := parse(data, opts, envLookup(dotenv))
	if err != nil {
		if ce, ok := derrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	res.EnvFile = envFile
	return res, nil
}

// Parse resolves an in-memory document the way Load does, without touching
// the filesystem. Variables expand from the process environment only.
func Parse(data []byte, opts Options) (*Result, error) {
	return parse(data, opts, os.Getenv)
}

func parse(data []byte, opts Options, lookup func(string) string) (*Result, error) {
	res := &Result{Environment: opts.Environment, LoadID: observability.NewLoadID()}

	if opts.ExpandEnv {
		data = []byte(os.Expand(string(data), lookup))
	}

	root, envs, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if opts.Environment != "" {
		overlay, ok := envs.get(opts.Environment)
		if !ok {
			return nil, derrors.NotFoundError(fmt.Sprintf("unknown environment %q", opts.Environment)).
				WithContext("environment", opts.Environment).
				WithContext("available", envs.names).
				WithHint("run 'siteconf envs' to list the declared environments").
				Build()
		}
		if err := applyOverlay(root, overlay); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid environment overlay").
				UserAction().
				WithContext("environment", opts.Environment).
				Build()
		}
	}

	cfg, report, err := site.DecodeNode(root)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to decode configuration").UserAction().Build()
	}

	norm, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "normalization failed").Build()
	}
	for _, issue := range norm.Respelled {
		report.Add(issue)
	}

	applyDefaults(cfg)

	report.Merge(cfg.Validate(site.ValidateOptions{DanglingMenus: opts.DanglingMenus}))
	if opts.Strict {
		report.Escalate()
	}
	res.Config = cfg
	res.Report = report

	if err := report.Err(); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation,
			fmt.Sprintf("configuration has %d error(s)", len(report.Errors()))).
			UserAction().
			WithContext("environment", opts.Environment).
			Build()
	}
	return res, nil
}

// Environments lists the overlay names declared in the file, in document order.
func Environments(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, derrors.WrapError(err, derrors.CategoryNotFound, fmt.Sprintf("configuration file not found: %s", path)).
			UserAction().
			WithContext("path", path).
			Build()
	}
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}
	_, envs, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return envs.names, nil
}

func parseDocument(data []byte) (*yaml.Node, overlays, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, overlays{}, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse configuration").UserAction().Build()
	}
	if len(doc.Content) == 0 {
		return nil, overlays{}, derrors.WrapError(site.ErrEmptyDocument, derrors.CategoryConfig, "configuration file is empty").UserAction().Build()
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, overlays{}, derrors.ConfigError(fmt.Sprintf("line %d: configuration root must be a mapping", root.Line)).Build()
	}
	envs, err := splitEnvironments(root)
	if err != nil {
		return nil, overlays{}, derrors.WrapError(err, derrors.CategoryConfig, "invalid environments block").UserAction().Build()
	}
	return root, envs, nil
}
