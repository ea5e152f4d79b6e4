package operator

import (
	"flag"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hashicorp-forge/objectid/internal/cmd/base"
	"github.com/hashicorp-forge/objectid/internal/config"
	"github.com/hashicorp-forge/objectid/pkg/database"
)

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type AuditCommand struct {
	*base.Command

	flagConfig    string
	flagTable     string
	flagColumn    string
	flagKey       string
	flagBatchSize int
	flagRequired  bool
	flagVerbose   bool
}

// auditStats are the totals reported at the end of an audit.
type auditStats struct {
	total   int64
	checked int64
	missing int64
	invalid int64
}

func (c *AuditCommand) Synopsis() string {
	return "Audit a database column for invalid ObjectIds"
}

func (c *AuditCommand) Help() string {
	return `Usage: objectid operator audit -config=<path> -table=<table> -column=<column>

  This command checks that every value in a database column is a valid
  24-character hex ObjectId. Rows are read in batches ordered by the key
  column, and each invalid row is reported by its key.

  Table and column names may be given in camelCase; they are converted to
  snake_case. NULL values are counted as missing and only fail the audit
  when -required is set.` +
		c.Flags().Help()
}

func (c *AuditCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("audit", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"(Required) Path to an objectid config file with a database block.",
	)
	f.StringVar(
		&c.flagTable, "table", "", "(Required) Table to audit.",
	)
	f.StringVar(
		&c.flagColumn, "column", "", "(Required) Column holding ObjectIds.",
	)
	f.StringVar(
		&c.flagKey, "key", "id", "Column identifying each row in reports.",
	)
	f.IntVar(
		&c.flagBatchSize, "batch-size", 100,
		"Number of rows to read per batch.",
	)
	f.BoolVar(
		&c.flagRequired, "required", false,
		"Treat NULL values as invalid.",
	)
	f.BoolVar(
		&c.flagVerbose, "verbose", false,
		"Print every checked row and connection pool statistics.",
	)

	return f
}

func (c *AuditCommand) Run(args []string) int {
	logger, ui := c.Log, c.UI

	// Parse flags.
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	table := strcase.ToSnake(c.flagTable)
	column := strcase.ToSnake(c.flagColumn)
	key := strcase.ToSnake(c.flagKey)

	// Validate flags.
	if err := (validation.Errors{
		"config":     validation.Validate(c.flagConfig, validation.Required),
		"table":      validation.Validate(table, validation.Required, validation.Match(identifier)),
		"column":     validation.Validate(column, validation.Required, validation.Match(identifier)),
		"key":        validation.Validate(key, validation.Required, validation.Match(identifier)),
		"batch-size": validation.Validate(c.flagBatchSize, validation.Min(1)),
	}).Filter(); err != nil {
		ui.Error(fmt.Sprintf("invalid flags: %v", err))
		return 1
	}

	// Parse configuration.
	cfg, err := config.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}
	if cfg.Database == nil {
		ui.Error("config file has no database block")
		return 1
	}
	logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	// Tag log lines with a per-run ID.
	runID := uuid.New()
	logger = logger.With("audit_id", runID.String())
	logger.Info("starting audit", "table", table, "column", column)

	rule, err := cfg.Rule(c.flagColumn)
	if err != nil {
		ui.Error(fmt.Sprintf("error building rule: %v", err))
		return 1
	}
	rules := []validation.Rule{rule}
	if c.flagRequired {
		rules = append([]validation.Rule{validation.Required}, rules...)
	}

	// Initialize database.
	db, err := database.Connect(cfg.Database.DatabaseConfig(), logger)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	stats, err := c.audit(logger, db, table, column, key, rules)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	// Final summary.
	ui.Info("")
	ui.Info(fmt.Sprintf("=== Summary (audit %s) ===", runID))
	ui.Info(fmt.Sprintf("Rows checked: %d", stats.checked))
	ui.Info(fmt.Sprintf("Missing values: %d", stats.missing))
	ui.Info(fmt.Sprintf("Invalid values: %d", stats.invalid))

	if c.flagVerbose {
		if pool, err := database.GetPoolStats(db); err == nil {
			ui.Info(fmt.Sprintf("Connections: %d open, %d in use, %d idle (max %d)",
				pool.OpenConnections, pool.InUse, pool.Idle, pool.MaxOpenConnections))
		}
	}

	logger.Info("audit finished",
		"checked", stats.checked, "missing", stats.missing, "invalid", stats.invalid)

	if stats.invalid > 0 {
		ui.Error(fmt.Sprintf("%s.%s has %d invalid ObjectIds", table, column, stats.invalid))
		return 1
	}

	ui.Info("Audit completed successfully")
	return 0
}

// audit reads table in batches ordered by key and validates column in each
// row.
func (c *AuditCommand) audit(
	logger hclog.Logger, db *gorm.DB, table, column, key string, rules []validation.Rule,
) (auditStats, error) {
	ui := c.UI
	var stats auditStats

	if err := db.Table(table).Count(&stats.total).Error; err != nil {
		return stats, fmt.Errorf("error counting rows in %s: %w", table, err)
	}
	if stats.total == 0 {
		ui.Info(fmt.Sprintf("Table %s has no rows", table))
		return stats, nil
	}

	ui.Info(fmt.Sprintf("Found %d rows in %s", stats.total, table))
	ui.Info(fmt.Sprintf("Processing in batches of %d rows", c.flagBatchSize))

	for offset := 0; int64(offset) < stats.total; offset += c.flagBatchSize {
		var rows []map[string]interface{}
		if err := db.Table(table).
			Select(key, column).
			Order(clause.OrderByColumn{Column: clause.Column{Name: key}}).
			Limit(c.flagBatchSize).
			Offset(offset).
			Find(&rows).Error; err != nil {
			return stats, fmt.Errorf("error fetching rows at offset %d: %w", offset, err)
		}

		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			stats.checked++

			id := normalize(row[key])
			value := normalize(row[column])
			if value == nil {
				stats.missing++
			}

			if err := validation.Validate(value, rules...); err != nil {
				stats.invalid++
				ui.Warn(fmt.Sprintf("%s=%v: %v", key, id, err))
				logger.Debug("invalid row", "table", table, key, id, "value", value)
				continue
			}

			if c.flagVerbose {
				ui.Info(fmt.Sprintf("[%d/%d] %s=%v: ok", stats.checked, stats.total, key, id))
			}
		}

		// Progress update after each batch.
		if !c.flagVerbose {
			ui.Info(fmt.Sprintf("Progress: %d/%d rows checked (%.1f%%)",
				stats.checked, stats.total, float64(stats.checked)/float64(stats.total)*100))
		}
	}

	return stats, nil
}

// normalize converts driver byte slices to strings so text columns validate
// the same way on every driver.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
