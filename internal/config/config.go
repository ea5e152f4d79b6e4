package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/hashicorp-forge/objectid/pkg/database"
	"github.com/hashicorp-forge/objectid/pkg/objectid"
	"github.com/hashicorp-forge/objectid/pkg/schema"
)

const (
	DefaultLogLevel = "info"
)

// Config is the objectid CLI configuration.
type Config struct {
	// Label is substituted into error messages as the field label.
	Label string `hcl:"label,optional"`

	// Message overrides the INVALID_IDENTIFIER message template. It may
	// reference {{.label}}.
	Message string `hcl:"message,optional"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `hcl:"log_level,optional"`

	// Database configures the connection used by "operator audit".
	Database *Database `hcl:"database,block"`
}

// Database is the database block of the config file.
type Database struct {
	Driver   string `hcl:"driver,optional"`
	DSN      string `hcl:"dsn,optional"`
	Path     string `hcl:"path,optional"`
	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	User     string `hcl:"user,optional"`
	Password string `hcl:"password,optional"`
	DBName   string `hcl:"dbname,optional"`
	SSLMode  string `hcl:"sslmode,optional"`
}

var sslModes = regexp.MustCompile(`^(disable|allow|prefer|require|verify-ca|verify-full)$`)

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Label:    objectid.DefaultLabel,
		Message:  objectid.DefaultMessage,
		LogLevel: DefaultLogLevel,
	}
}

// LoadConfig loads and validates the configuration from an HCL file.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	var cfg Config
	if err := hclsimple.DecodeFile(filename, evalContext(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	return finish(&cfg)
}

// Parse decodes configuration from src. The filename is used for
// diagnostics and to select HCL or JSON syntax by extension.
func Parse(filename string, src []byte) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, src, evalContext(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return finish(&cfg)
}

// evalContext exposes the process environment to config expressions as
// env.NAME, e.g. password = env.OBJECTID_DB_PASSWORD.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func finish(cfg *Config) (*Config, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Label == "" {
		c.Label = objectid.DefaultLabel
	}
	if c.Message == "" {
		c.Message = objectid.DefaultMessage
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Database != nil {
		if c.Database.Driver == "" {
			c.Database.Driver = database.DriverPostgres
		}
		if c.Database.Driver == database.DriverPostgres {
			if c.Database.Port == 0 {
				c.Database.Port = 5432
			}
			if c.Database.SSLMode == "" {
				c.Database.SSLMode = "disable"
			}
		}
	}
}

// Validate validates the configuration. All problems are reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.Label, validation.Required),
		validation.Field(&c.Message, validation.Required, validation.By(isTemplate)),
		validation.Field(&c.LogLevel,
			validation.In("trace", "debug", "info", "warn", "error")),
	); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Database != nil {
		if err := c.Database.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("database: %w", err))
		}
	}

	return result.ErrorOrNil()
}

// Validate validates the database block.
func (d *Database) Validate() error {
	usesDSN := d.DSN != ""
	isPostgres := d.Driver == database.DriverPostgres
	isSQLite := d.Driver == database.DriverSQLite

	return validation.ValidateStruct(d,
		validation.Field(&d.Driver, validation.Required,
			validation.In(database.DriverPostgres, database.DriverSQLite)),
		validation.Field(&d.Path,
			validation.When(isSQLite && !usesDSN, validation.Required)),
		validation.Field(&d.Host,
			validation.When(isPostgres && !usesDSN, validation.Required)),
		validation.Field(&d.DBName,
			validation.When(isPostgres && !usesDSN, validation.Required)),
		validation.Field(&d.Port,
			validation.When(isPostgres && !usesDSN, validation.Min(1), validation.Max(65535))),
		validation.Field(&d.SSLMode,
			validation.When(isPostgres, validation.Match(sslModes))),
	)
}

// DatabaseConfig converts the database block for database.Connect.
func (d *Database) DatabaseConfig() database.Config {
	return database.Config{
		Driver:   d.Driver,
		DSN:      d.DSN,
		Path:     d.Path,
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		DBName:   d.DBName,
		SSLMode:  d.SSLMode,
	}
}

// Rule returns the objectId rule from a schema registry carrying the
// configured message. An empty label falls back to the configured one.
func (c *Config) Rule(label string) (objectid.Rule, error) {
	reg, err := objectid.Extend(schema.NewRegistry())
	if err != nil {
		return objectid.Rule{}, err
	}
	reg, err = reg.WithMessage(string(objectid.InvalidIdentifier), c.Message)
	if err != nil {
		return objectid.Rule{}, err
	}

	rule, err := reg.Rule(objectid.TypeName)
	if err != nil {
		return objectid.Rule{}, err
	}
	r, ok := rule.(objectid.Rule)
	if !ok {
		return objectid.Rule{}, fmt.Errorf("unexpected rule type %T", rule)
	}

	if label == "" {
		label = c.Label
	}
	return r.Label(label), nil
}

func isTemplate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_template_type", "must be a string")
	}
	if _, err := template.New("err").Parse(s); err != nil {
		return validation.NewError("validation_template_invalid", "must be a valid message template")
	}
	return nil
}
