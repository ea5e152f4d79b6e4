package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/objectid/pkg/objectid"
)

func TestParse(t *testing.T) {
	t.Run("empty config gets defaults", func(t *testing.T) {
		cfg, err := Parse("config.hcl", []byte(""))
		require.NoError(t, err)
		assert.Equal(t, objectid.DefaultLabel, cfg.Label)
		assert.Equal(t, objectid.DefaultMessage, cfg.Message)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Nil(t, cfg.Database)
	})

	t.Run("full config", func(t *testing.T) {
		src := `
label     = "documentId"
message   = "{{.label}} is not an ObjectId"
log_level = "debug"

database {
  driver = "postgres"
  host   = "localhost"
  user   = "postgres"
  dbname = "documents"
}
`
		cfg, err := Parse("config.hcl", []byte(src))
		require.NoError(t, err)
		assert.Equal(t, "documentId", cfg.Label)
		assert.Equal(t, "{{.label}} is not an ObjectId", cfg.Message)
		assert.Equal(t, "debug", cfg.LogLevel)
		require.NotNil(t, cfg.Database)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		dbCfg := cfg.Database.DatabaseConfig()
		assert.Equal(t, "postgres", dbCfg.Driver)
		assert.Equal(t, "documents", dbCfg.DBName)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg, err := Parse("config.hcl", []byte(`
database {
  driver = "sqlite"
  path   = "ids.db"
}`))
		require.NoError(t, err)
		assert.Equal(t, "ids.db", cfg.Database.Path)
		assert.Equal(t, 0, cfg.Database.Port)
	})

	t.Run("postgres dsn skips host requirements", func(t *testing.T) {
		_, err := Parse("config.hcl", []byte(`
database {
  dsn = "postgres://u:p@localhost:5432/db?sslmode=disable"
}`))
		require.NoError(t, err)
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("OBJECTID_TEST_DB_PASSWORD", "s3cret")
		cfg, err := Parse("config.hcl", []byte(`
database {
  host     = "localhost"
  dbname   = "documents"
  password = env.OBJECTID_TEST_DB_PASSWORD
}`))
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.Database.Password)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Parse("config.hcl", []byte(`label = `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse configuration")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := Parse("config.hcl", []byte(`colour = "blue"`))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("all problems are reported", func(t *testing.T) {
		_, err := Parse("config.hcl", []byte(`
message   = "{{.label"
log_level = "loud"

database {
  driver = "sqlite"
}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, 2)
		assert.Contains(t, err.Error(), "LogLevel: must be a valid value")
		assert.Contains(t, err.Error(), "must be a valid message template")
		assert.Contains(t, err.Error(), "database:")
	})

	t.Run("postgres requires host and dbname", func(t *testing.T) {
		_, err := Parse("config.hcl", []byte(`
database {
  driver = "postgres"
}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Host: cannot be blank")
		assert.Contains(t, err.Error(), "DBName: cannot be blank")
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := Parse("config.hcl", []byte(`
database {
  driver = "mysql"
  path   = "x"
}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Driver: must be a valid value")
	})

	t.Run("bad sslmode", func(t *testing.T) {
		_, err := Parse("config.hcl", []byte(`
database {
  host    = "localhost"
  dbname  = "db"
  sslmode = "sometimes"
}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SSLMode")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration file not found")
	})

	t.Run("loads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "objectid.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`label = "ownerId"`), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "ownerId", cfg.Label)
	})
}

func TestDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestConfig_Rule(t *testing.T) {
	t.Run("default message and label", func(t *testing.T) {
		rule, err := Default().Rule("")
		require.NoError(t, err)

		assert.NoError(t, rule.Validate("507f191e810c19729de860ea"))
		err = rule.Validate("nope")
		require.Error(t, err)
		assert.Equal(t, `"value" must be a valid 24-character hex ObjectId`, err.Error())
	})

	t.Run("configured message and label override", func(t *testing.T) {
		cfg, err := Parse("config.hcl", []byte(`
label   = "documentId"
message = "{{.label}} is not an ObjectId"
`))
		require.NoError(t, err)

		rule, err := cfg.Rule("")
		require.NoError(t, err)
		assert.EqualError(t, rule.Validate("nope"), "documentId is not an ObjectId")

		rule, err = cfg.Rule("ownerId")
		require.NoError(t, err)
		assert.EqualError(t, rule.Validate("nope"), "ownerId is not an ObjectId")
	})
}

func TestIsTemplate(t *testing.T) {
	assert.NoError(t, isTemplate(objectid.DefaultMessage))
	assert.EqualError(t, isTemplate("{{.label"), "must be a valid message template")
	assert.EqualError(t, isTemplate(42), "must be a string")
	assert.EqualError(t, isTemplate(nil), "must be a string")
}
