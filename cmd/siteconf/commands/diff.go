package commands

import (
	"encoding/json"
	"fmt"

	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// DiffCmd implements the 'diff' command.
type DiffCmd struct {
	From   string `arg:"" help:"Environment to compare from (\"base\" for the document without overlays)"`
	To     string `arg:"" help:"Environment to compare to"`
	Format string `short:"f" help:"Output format" enum:"text,json" default:"text"`
}

func (d *DiffCmd) Run(g *Global, root *CLI) error {
	ctx := commandContext("diff", root)
	from, err := loadEnv(ctx, g, root, parseEnvArg(d.From))
	if err != nil {
		return err
	}
	to, err := loadEnv(ctx, g, root, parseEnvArg(d.To))
	if err != nil {
		return err
	}

	changes := site.Diff(from.Config, to.Config)
	if d.Format == "json" {
		if changes == nil {
			changes = []site.Change{}
		}
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(changes); err != nil {
			return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode diff").Build()
		}
		return nil
	}

	_, _ = fmt.Fprintf(g.Stdout, "--- %s\n+++ %s\n", envName(parseEnvArg(d.From)), envName(parseEnvArg(d.To)))
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "no differences")
		return nil
	}
	for _, c := range changes {
		_, _ = fmt.Fprintln(g.Stdout, c)
	}
	return nil
}
