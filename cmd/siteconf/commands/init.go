package commands

import (
	"fmt"

	"git.home.luguber.info/inful/siteconf/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		_, _ = fmt.Fprintln(g.Stdout, "Initialization failed")
		return err
	}
	envs, err := config.Environments(root.Config)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "Initialized successfully (environments: %v)\n", envs)
	return nil
}
