package version

import (
	"github.com/hashicorp-forge/objectid/internal/cmd/base"
	"github.com/hashicorp-forge/objectid/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: objectid version

  Print the version of objectid.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("objectid v" + version.Version)
	return 0
}
