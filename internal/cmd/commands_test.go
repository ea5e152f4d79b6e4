package cmd

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	initCommands(hclog.NewNullLogger(), cli.NewMockUi())

	for _, name := range []string{"check", "operator", "operator audit", "version"} {
		t.Run(name, func(t *testing.T) {
			factory, ok := Commands[name]
			require.True(t, ok)

			c, err := factory()
			require.NoError(t, err)
			assert.NotEmpty(t, c.Synopsis())
			assert.NotEmpty(t, c.Help())
		})
	}
}

func TestMain_Check(t *testing.T) {
	assert.Equal(t, 0, Main([]string{"objectid", "check", "507f191e810c19729de860ea"}))
	assert.Equal(t, 1, Main([]string{"objectid", "check", "507f191e810c19729de860"}))
}
