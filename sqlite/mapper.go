package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/asaidimu/storefront/core/schema"
	"go.uber.org/zap"
)

// Options controls DDL generation.
type Options struct {
	// IfNotExists adds IF NOT EXISTS to CREATE TABLE statements.
	IfNotExists bool

	// DropIfExists drops the table before creating it.
	DropIfExists bool

	// CreateIndexes creates the indexes of a table along with it.
	CreateIndexes bool

	// TablePrefix is prepended to every table name.
	TablePrefix string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		IfNotExists:   true,
		CreateIndexes: true,
	}
}

// quoteIdentifier quotes a table or column name.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// getTableName applies the configured prefix and quotes the result.
func (i *Interactor) getTableName(baseName string) string {
	return quoteIdentifier(i.options.TablePrefix + baseName)
}

// CreateTable validates table and creates it along with its indexes.
func (i *Interactor) CreateTable(ctx context.Context, table schema.TableDefinition) error {
	if err := table.Validate(); err != nil {
		return err
	}

	if i.options.DropIfExists {
		if err := i.DropTable(ctx, table.Name); err != nil {
			return err
		}
	}

	statements, err := i.CreateTableSQL(table)
	if err != nil {
		return fmt.Errorf("failed to generate SQL for table %s: %w", table.Name, err)
	}

	for _, stmt := range statements {
		i.logger.Debug("Executing DDL", zap.String("sql", stmt))
		if _, err := i.runner().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute SQL statement '%s': %w", stmt, err)
		}
	}
	return nil
}

// CreateTableSQL generates the CREATE TABLE statement for table followed by
// one CREATE INDEX statement per secondary index when CreateIndexes is set.
func (i *Interactor) CreateTableSQL(table schema.TableDefinition) ([]string, error) {
	fullTableName := i.getTableName(table.Name)

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if i.options.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(fullTableName + " (\n")

	var primaryKeys []string
	for _, index := range table.Indexes {
		if index.Type == schema.IndexTypePrimary && len(index.Fields) > 0 {
			primaryKeys = index.Fields
			break
		}
	}

	columns := make([]string, 0, len(table.Fields))
	for _, field := range table.Fields {
		columnDef, err := i.buildColumnDefinition(field)
		if err != nil {
			return nil, fmt.Errorf("error on field '%s': %w", field.Name, err)
		}
		columns = append(columns, "    "+columnDef)
	}
	sb.WriteString(strings.Join(columns, ",\n"))

	if len(primaryKeys) > 0 {
		quoted := make([]string, len(primaryKeys))
		for n, pk := range primaryKeys {
			quoted[n] = quoteIdentifier(pk)
		}
		sb.WriteString(",\n    PRIMARY KEY (" + strings.Join(quoted, ", ") + ")")
	}
	sb.WriteString("\n);")

	statements := []string{sb.String()}
	if i.options.CreateIndexes {
		for _, index := range table.Indexes {
			stmt := i.CreateIndexSQL(table.Name, index)
			if stmt != "" {
				statements = append(statements, stmt)
			}
		}
	}
	return statements, nil
}

// buildColumnDefinition renders a single column with its constraints.
func (i *Interactor) buildColumnDefinition(field *schema.FieldDefinition) (string, error) {
	parts := []string{quoteIdentifier(field.Name), GetColumnType(field.Type)}

	if field.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
		if field.AutoIncrement {
			parts = append(parts, "AUTOINCREMENT")
		}
	}
	if field.Required != nil && *field.Required {
		parts = append(parts, "NOT NULL")
	}
	if field.Unique != nil && *field.Unique {
		parts = append(parts, "UNIQUE")
	}
	if field.Collate != "" {
		parts = append(parts, "COLLATE "+field.Collate)
	}
	if field.Default != nil {
		defVal, err := formatDefaultValue(field.Default, field.Type)
		if err != nil {
			return "", err
		}
		parts = append(parts, "DEFAULT "+defVal)
	}
	return strings.Join(parts, " "), nil
}

// GetColumnType maps a schema.FieldType to its SQLite column type.
func GetColumnType(fieldType schema.FieldType) string {
	switch fieldType {
	case schema.FieldTypeString:
		return "TEXT"
	case schema.FieldTypeNumber:
		return "REAL"
	case schema.FieldTypeInteger, schema.FieldTypeBoolean:
		return "INTEGER"
	default:
		return "BLOB"
	}
}

// formatDefaultValue formats a default value for use in DDL.
func formatDefaultValue(value any, fieldType schema.FieldType) (string, error) {
	if value == nil {
		return "NULL", nil
	}
	switch fieldType {
	case schema.FieldTypeString:
		return fmt.Sprintf("'%s'", strings.ReplaceAll(fmt.Sprintf("%v", value), "'", "''")), nil
	case schema.FieldTypeNumber, schema.FieldTypeInteger:
		switch value.(type) {
		case int, int32, int64, float32, float64:
			return fmt.Sprintf("%v", value), nil
		}
		return "", fmt.Errorf("default %v is not numeric", value)
	case schema.FieldTypeBoolean:
		if b, ok := value.(bool); ok && b {
			return "1", nil
		}
		return "0", nil
	default:
		return "", fmt.Errorf("unsupported type for default value: %s", fieldType)
	}
}

// CreateIndexSQL generates the CREATE INDEX statement for index. Primary key
// indexes are part of the table definition and yield "".
func (i *Interactor) CreateIndexSQL(table string, index schema.IndexDefinition) string {
	if index.Type == schema.IndexTypePrimary || len(index.Fields) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("CREATE ")
	if (index.Unique != nil && *index.Unique) || index.Type == schema.IndexTypeUnique {
		sb.WriteString("UNIQUE ")
	}
	sb.WriteString("INDEX IF NOT EXISTS ")
	indexName := index.Name
	if indexName == "" {
		indexName = fmt.Sprintf("idx_%s%s_%s", i.options.TablePrefix, table, strings.Join(index.Fields, "_"))
	}
	sb.WriteString(quoteIdentifier(indexName))
	sb.WriteString(" ON " + i.getTableName(table) + " (")

	fieldParts := make([]string, 0, len(index.Fields))
	for _, field := range index.Fields {
		part := quoteIdentifier(field)
		if index.Order != nil && strings.ToUpper(*index.Order) == "DESC" {
			part += " DESC"
		}
		fieldParts = append(fieldParts, part)
	}
	sb.WriteString(strings.Join(fieldParts, ", ") + ");")
	return sb.String()
}

// DropTable drops a table if it exists.
func (i *Interactor) DropTable(ctx context.Context, name string) error {
	fullTableName := i.getTableName(name)
	stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s;", fullTableName)
	i.logger.Debug("Executing DDL", zap.String("sql", stmt))
	if _, err := i.runner().ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", fullTableName, err)
	}
	return nil
}

// TableExists checks if a table exists in the database.
func (i *Interactor) TableExists(ctx context.Context, name string) (bool, error) {
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name = ?;"

	var found string
	err := i.runner().QueryRowContext(ctx, query, i.options.TablePrefix+name).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
