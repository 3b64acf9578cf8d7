package commands

import (
	"fmt"

	"git.home.luguber.info/inful/siteconf/internal/config"
)

// EnvsCmd implements the 'envs' command.
type EnvsCmd struct{}

func (e *EnvsCmd) Run(g *Global, root *CLI) error {
	names, err := config.Environments(root.Config)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.Stdout, baseEnvironment)
	for _, name := range names {
		_, _ = fmt.Fprintln(g.Stdout, name)
	}
	return nil
}
