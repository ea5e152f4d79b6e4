package check

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/objectid/internal/cmd/base"
	"github.com/hashicorp-forge/objectid/internal/config"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type Command struct {
	*base.Command

	// Stdin is read when no values are given as arguments.
	Stdin io.Reader

	flagConfig string
	flagLabel  string
	flagFormat string
}

// result is the per-value report for json and yaml output.
type result struct {
	Value string `json:"value" yaml:"value"`
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (c *Command) Synopsis() string {
	return "Check values are valid 24-character hex ObjectIds"
}

func (c *Command) Help() string {
	return `Usage: objectid check [options] [value ...]

  Check that each value is a 24-character hex ObjectId. Values are read one
  per line from standard input when none are given as arguments.

  The exit code is 0 when every value is valid and 1 otherwise.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("check", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "Path to an objectid config file.",
	)
	f.StringVar(
		&c.flagLabel, "label", "",
		"Label used in error messages (overrides the config file).",
	)
	f.StringVar(
		&c.flagFormat, "format", formatText,
		"Output format: text, json or yaml.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if err := validation.Validate(c.flagFormat,
		validation.In(formatText, formatJSON, formatYAML),
	); err != nil {
		ui.Error(fmt.Sprintf("invalid format %q: %v", c.flagFormat, err))
		return 1
	}

	cfg := config.Default()
	if c.flagConfig != "" {
		var err error
		cfg, err = config.LoadConfig(c.flagConfig)
		if err != nil {
			ui.Error(fmt.Sprintf("error loading config: %v", err))
			return 1
		}
	}
	logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	rule, err := cfg.Rule(c.flagLabel)
	if err != nil {
		ui.Error(fmt.Sprintf("error building rule: %v", err))
		return 1
	}

	values := flags.Args()
	if len(values) == 0 {
		values, err = readValues(c.Stdin)
		if err != nil {
			ui.Error(fmt.Sprintf("error reading values: %v", err))
			return 1
		}
	}
	if len(values) == 0 {
		ui.Error("no values to check")
		return 1
	}

	results := make([]result, 0, len(values))
	var invalid *multierror.Error
	for _, v := range values {
		r := result{Value: v, Valid: true}
		if err := rule.Validate(v); err != nil {
			r.Valid = false
			r.Error = err.Error()
			invalid = multierror.Append(invalid, fmt.Errorf("%s: %w", v, err))
		}
		logger.Debug("checked value", "value", v, "valid", r.Valid)
		results = append(results, r)
	}

	switch c.flagFormat {
	case formatJSON:
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			ui.Error(fmt.Sprintf("error encoding results: %v", err))
			return 1
		}
		ui.Output(string(out))
	case formatYAML:
		out, err := yaml.Marshal(results)
		if err != nil {
			ui.Error(fmt.Sprintf("error encoding results: %v", err))
			return 1
		}
		ui.Output(strings.TrimRight(string(out), "\n"))
	default:
		for _, r := range results {
			if r.Valid {
				ui.Output(fmt.Sprintf("%s: ok", r.Value))
			} else {
				ui.Error(fmt.Sprintf("%s: %s", r.Value, r.Error))
			}
		}
	}

	if err := invalid.ErrorOrNil(); err != nil {
		logger.Debug("invalid values found", "error", err)
		if c.flagFormat == formatText {
			ui.Error(fmt.Sprintf("%d of %d values are not valid ObjectIds",
				len(invalid.Errors), len(values)))
		}
		return 1
	}
	return 0
}

// readValues returns the non-blank lines of r.
func readValues(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}

	var values []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
