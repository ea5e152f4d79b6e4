package base

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSet_Help(t *testing.T) {
	var (
		config string
		batch  int
		dryRun bool
	)
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.StringVar(&config, "config", "", "Path to config `file`")
	f.IntVar(&batch, "batch-size", 100, "Rows per batch.")
	f.BoolVar(&dryRun, "dry-run", false, "Do nothing.")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-config=<file>")
	assert.Contains(t, help, "-batch-size=<int> (default: 100)")
	assert.Contains(t, help, "-dry-run\n    Do nothing.")
	assert.NotContains(t, help, "(default: false)")
}

func TestFlagSet_ParseErrorsAreNotPrinted(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	err := f.Parse([]string{"-unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
