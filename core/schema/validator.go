package schema

import (
	"fmt"
	"strings"
)

// Issue describes one problem found in a table definition.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// ValidationError collects the issues of an invalid definition.
type ValidationError struct {
	Table  string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("invalid table %q: %s", e.Table, strings.Join(msgs, "; "))
}

// Validate checks that t can be turned into DDL: a name, at least one field,
// unique field names, known field types, at most one primary key and indexes
// over existing fields only.
func (t *TableDefinition) Validate() error {
	var issues []Issue
	add := func(code, path, format string, args ...any) {
		issues = append(issues, Issue{Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if t.Name == "" {
		add("TABLE_NAME_MISSING", "name", "table name is required")
	}
	if len(t.Fields) == 0 {
		add("NO_FIELDS", "fields", "table has no fields")
	}

	seen := map[string]bool{}
	primaryKeys := 0
	for i, f := range t.Fields {
		path := fmt.Sprintf("fields[%d]", i)
		if f == nil {
			add("FIELD_NIL", path, "field %d is nil", i)
			continue
		}
		if f.Name == "" {
			add("FIELD_NAME_MISSING", path, "field %d has no name", i)
			continue
		}
		if seen[f.Name] {
			add("DUPLICATE_FIELD", path, "field %s is declared twice", f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeBoolean:
		default:
			add("UNKNOWN_FIELD_TYPE", path, "field %s has unknown type %q", f.Name, f.Type)
		}
		if f.PrimaryKey {
			primaryKeys++
		}
		if f.AutoIncrement && (!f.PrimaryKey || f.Type != FieldTypeInteger) {
			add("INVALID_AUTOINCREMENT", path, "field %s: autoincrement requires an integer primary key", f.Name)
		}
	}

	for i, idx := range t.Indexes {
		path := fmt.Sprintf("indexes[%d]", i)
		if idx.Type == IndexTypePrimary {
			primaryKeys++
		}
		if len(idx.Fields) == 0 {
			add("INDEX_WITHOUT_FIELDS", path, "index %d has no fields", i)
		}
		for _, name := range idx.Fields {
			if !seen[name] {
				add("INDEX_UNKNOWN_FIELD", path, "index %d references unknown field %s", i, name)
			}
		}
	}
	if primaryKeys > 1 {
		add("MULTIPLE_PRIMARY_KEYS", "", "table declares %d primary keys", primaryKeys)
	}

	if len(issues) > 0 {
		return &ValidationError{Table: t.Name, Issues: issues}
	}
	return nil
}
