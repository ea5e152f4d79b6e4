package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by every subcommand.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// FlagSet wraps a standard flag set and renders it for command help text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet returns a FlagSet whose parse errors are reported by the caller
// instead of being printed by the flag package.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(&bytes.Buffer{})
	return &FlagSet{FlagSet: f}
}

// Help returns the flag usage block appended to a command's Help text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if name, _ := flag.UnquoteUsage(fl); name != "" {
			fmt.Fprintf(&b, "=<%s>", name)
		}
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, " (default: %s)", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n    %s\n", fl.Usage)
	})
	return strings.TrimRight(b.String(), "\n")
}
