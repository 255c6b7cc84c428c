package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// ColumnType is an expected column: name, base data type, and whether NULL is
// allowed. DataType is the base type only; sizes are ignored, so "varchar"
// matches varchar(191).
type ColumnType struct {
	Name     string
	DataType string
	Nullable bool
}

// TableSchema is the expected shape of one table.
type TableSchema struct {
	Name    string
	Columns []ColumnType
}

// SchemaGuard checks at startup that the tables the service writes to look
// the way the queries assume. Migrations run out of band; the guard catches a
// binary rolled out ahead of its migration.
type SchemaGuard struct {
	db *sql.DB
}

// NewSchemaGuard creates a schema guard over the given connection.
func NewSchemaGuard(db *sql.DB) *SchemaGuard {
	return &SchemaGuard{db: db}
}

// ValidateTable checks that the table exists and carries the expected columns.
func (sg *SchemaGuard) ValidateTable(schema TableSchema) error {
	query := `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE()
		AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := sg.db.Query(query, schema.Name)
	if err != nil {
		return fmt.Errorf("failed to query table schema for %s: %w", schema.Name, err)
	}
	defer rows.Close()

	actual := make(map[string]ColumnType)
	for rows.Next() {
		var name, dataType, isNullable string
		if err := rows.Scan(&name, &dataType, &isNullable); err != nil {
			return fmt.Errorf("failed to scan column info: %w", err)
		}
		actual[name] = ColumnType{
			Name:     name,
			DataType: dataType,
			Nullable: isNullable == "YES",
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns of %s: %w", schema.Name, err)
	}

	if len(actual) == 0 {
		return fmt.Errorf("table %s does not exist or has no columns", schema.Name)
	}

	for _, expected := range schema.Columns {
		col, exists := actual[expected.Name]
		if !exists {
			return fmt.Errorf("table %s missing expected column: %s", schema.Name, expected.Name)
		}
		if !baseTypeMatches(col.DataType, expected.DataType) {
			return fmt.Errorf("table %s column %s has type %s, expected %s",
				schema.Name, expected.Name, col.DataType, expected.DataType)
		}
		if col.Nullable && !expected.Nullable {
			return fmt.Errorf("table %s column %s is nullable, expected NOT NULL",
				schema.Name, expected.Name)
		}
	}
	return nil
}

// ValidateTables validates every table, stopping at the first mismatch.
func (sg *SchemaGuard) ValidateTables(schemas []TableSchema) error {
	for _, schema := range schemas {
		if err := sg.ValidateTable(schema); err != nil {
			return err
		}
	}
	return nil
}

func baseTypeMatches(actual, expected string) bool {
	actual = strings.ToLower(actual)
	expected = strings.ToLower(expected)
	return actual == expected || strings.HasPrefix(actual, expected)
}
