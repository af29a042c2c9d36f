package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ResetSequence moves the id sequence of table to the highest id it holds, so rows
// inserted with explicit ids do not collide with later generated ones.
// Only PostgreSQL needs this: SQLite keeps numbering past the largest rowid.
func ResetSequence(db *gorm.DB, table string) error {
	switch db.Dialector.Name() {
	case "postgres":
		// table names come from the gorm schema, never from user input
		stmt := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]q), 0) + 1, false)`,
			table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("reset sequence for %s: %w", table, err)
		}
		log.WithFields(logrus.Fields{"table": table}).Debug("Sequence reset to current maximum id")
		return nil
	default:
		return nil
	}
}

// TableName resolves the table gorm uses for model
func TableName(db *gorm.DB, model any) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", fmt.Errorf("parse model: %w", err)
	}
	return stmt.Schema.Table, nil
}
