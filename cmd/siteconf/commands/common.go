package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/siteconf/internal/config"
	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/observability"
	"git.home.luguber.info/inful/siteconf/internal/site"
	"git.home.luguber.info/inful/siteconf/internal/version"
)

// Global is shared with every command.
type Global struct {
	Logger   *slog.Logger
	Stdout   io.Writer
	Stderr   io.Writer
	Recorder metrics.Recorder
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config        string           `short:"c" help:"Configuration file path" default:"siteconf.yaml" env:"SITECONF_CONFIG"`
	Env           string           `short:"e" help:"Environment overlay to apply" env:"SITECONF_ENV"`
	Verbose       bool             `short:"v" help:"Enable verbose logging"`
	LogFormat     string           `help:"Log output format" enum:"text,json" default:"text" env:"SITECONF_LOG_FORMAT"`
	DanglingMenus string           `help:"Policy for menu routes missing from the navigation" enum:"error,warn" default:"error" env:"SITECONF_DANGLING_MENUS"`
	Strict        bool             `help:"Treat warnings as errors"`
	ExpandEnv     bool             `help:"Expand $VAR references in the configuration" default:"true" negatable:""`
	EnvFiles      bool             `help:"Load .env and .env.local next to the configuration" default:"true" negatable:""`
	Version       kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" help:"Validate the configuration and print every issue"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Export   ExportCmd   `cmd:"" help:"Export the resolved configuration for the site generator"`
	Tree     TreeCmd     `cmd:"" help:"Print the navigation and sidebar menus as a tree"`
	Diff     DiffCmd     `cmd:"" help:"Show what an environment overlay changes"`
	Watch    WatchCmd    `cmd:"" help:"Revalidate (and re-export) whenever the configuration changes"`
	Envs     EnvsCmd     `cmd:"" help:"List the environments declared in the configuration"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(g.Stderr, opts)
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	}
	g.Logger = slog.New(handler)
	slog.SetDefault(g.Logger)
	return nil
}

func (c *CLI) loadOptions(env string) config.Options {
	return config.Options{
		Environment:   env,
		ExpandEnv:     c.ExpandEnv,
		SkipEnvFiles:  !c.EnvFiles,
		Strict:        c.Strict,
		DanglingMenus: site.Policy(c.DanglingMenus),
	}
}

type exitCode int

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) (code int) {
	var cli CLI
	global := &Global{
		Logger:   slog.Default(),
		Stdout:   stdout,
		Stderr:   stderr,
		Recorder: metrics.NoopRecorder{},
	}

	// kong reports --help and --version through Exit; unwind instead of terminating the process.
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	parser, err := kong.New(&cli,
		kong.Name("siteconf"),
		kong.Description("Validate, resolve and export dumi site configuration."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		var perr *kong.ParseError
		if errors.As(err, &perr) {
			_ = perr.Context.PrintUsage(true)
		}
		return 1
	}

	adapter := derrors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
	return adapter.Report(stderr, kctx.Run(&cli))
}

// commandContext seeds the log context shared by everything a command logs.
func commandContext(command string, root *CLI) context.Context {
	ctx := observability.WithCommand(context.Background(), command)
	ctx = observability.WithConfigPath(ctx, root.Config)
	return observability.WithEnvironment(ctx, root.Env)
}

// reportOf returns the issues carried by a load error, or by the result.
func reportOf(res *config.Result, err error) *site.Report {
	var reportErr *site.ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Report
	}
	if res != nil {
		return res.Report
	}
	return nil
}

// printIssues writes one line per issue, prefixed with the configuration path.
func printIssues(w io.Writer, path string, report *site.Report) {
	if report == nil {
		return
	}
	for _, issue := range report.Issues {
		_, _ = fmt.Fprintf(w, "%s: %s\n", path, issue)
	}
}

// envName is the label used for an environment in human output.
func envName(env string) string {
	if env == "" {
		return baseEnvironment
	}
	return env
}

// baseEnvironment names the document without any overlay on the command line.
const baseEnvironment = "base"

func parseEnvArg(arg string) string {
	if strings.EqualFold(strings.TrimSpace(arg), baseEnvironment) {
		return ""
	}
	return strings.TrimSpace(arg)
}
