package doctor

import (
	"context"
	"database/sql"
	"fmt"
)

// DatabaseCheck runs SQLite's integrity check and reports the schema version.
type DatabaseCheck struct {
	conn *sql.DB
}

// NewDatabaseCheck creates a database check over conn.
func NewDatabaseCheck(conn *sql.DB) *DatabaseCheck {
	return &DatabaseCheck{conn: conn}
}

func (c *DatabaseCheck) Name() string {
	return "Database"
}

func (c *DatabaseCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	var integrity string
	if err := c.conn.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "integrity",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	item := CheckItem{Label: "integrity", Status: StatusPass, Detail: integrity}
	if integrity != "ok" {
		item.Status = StatusFail
	}
	result.Items = append(result.Items, item)

	var version sql.NullInt64
	err := c.conn.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version)
	switch {
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "schema",
			Status: StatusFail,
			Detail: err.Error(),
		})
	case !version.Valid:
		result.Items = append(result.Items, CheckItem{
			Label:  "schema",
			Status: StatusWarn,
			Detail: "no migrations applied",
		})
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  "schema",
			Status: StatusPass,
			Detail: fmt.Sprintf("version %d", version.Int64),
		})
	}

	return result
}
