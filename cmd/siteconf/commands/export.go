package commands

import (
	"git.home.luguber.info/inful/siteconf/internal/export"
	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/observability"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Format string `short:"f" help:"Output format (ts, json, yaml); inferred from --output when omitted"`
	Output string `short:"o" help:"Write to this file instead of stdout"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	ctx := commandContext("export", root)
	format, err := resolveFormat(e.Format, e.Output)
	if err != nil {
		return err
	}
	res, err := loadEnv(ctx, g, root, root.Env)
	if err != nil {
		return err
	}

	if e.Output == "" {
		if err := export.Write(g.Stdout, res.Config, format); err != nil {
			return err
		}
		g.Recorder.IncExport(string(format), true)
		return nil
	}
	_, err = exportFile(g.Recorder, e.Output, res.Config, format)
	if err != nil {
		return err
	}
	observability.InfoContext(observability.WithLoadID(ctx, res.LoadID), "Exported configuration",
		logfields.Path(e.Output), logfields.Format(string(format)))
	return nil
}

// resolveFormat picks the explicit format, else the one implied by the output
// file extension, else TypeScript.
func resolveFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		f, err := export.ParseFormat(flag)
		if err != nil {
			return "", derrors.WrapError(err, derrors.CategoryConfig, "invalid export format").
				UserAction().
				WithContext("format", flag).
				Build()
		}
		return f, nil
	}
	if f, ok := export.FormatFromPath(output); ok {
		return f, nil
	}
	return export.FormatTS, nil
}

func exportFile(r metrics.Recorder, path string, cfg *site.Config, format export.Format) (bool, error) {
	changed, err := export.WriteFile(path, cfg, format)
	if err != nil {
		return false, err
	}
	r.IncExport(string(format), changed)
	return changed, nil
}
