package cmd

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/objectid/internal/cmd/base"
	"github.com/hashicorp-forge/objectid/internal/cmd/commands/check"
	"github.com/hashicorp-forge/objectid/internal/cmd/commands/operator"
	"github.com/hashicorp-forge/objectid/internal/cmd/commands/version"
)

// Commands is the mapping of all the available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{
		Log: log,
		UI:  ui,
	}

	Commands = map[string]cli.CommandFactory{
		"check": func() (cli.Command, error) {
			return &check.Command{
				Command: b,
				Stdin:   os.Stdin,
			}, nil
		},
		"operator": func() (cli.Command, error) {
			return &operator.Command{
				Command: b,
			}, nil
		},
		"operator audit": func() (cli.Command, error) {
			return &operator.AuditCommand{
				Command: b,
			}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{
				Command: b,
			}, nil
		},
	}
}
