// Package schema describes relational tables so that drivers can generate the
// DDL to create them.
package schema

import "fmt"

// FieldType represents the column types supported by the schema system.
type FieldType string

const (
	FieldTypeString  FieldType = "string"  // Text data
	FieldTypeInteger FieldType = "integer" // Whole numbers
	FieldTypeNumber  FieldType = "number"  // Floating point numbers
	FieldTypeBoolean FieldType = "boolean" // Stored as 0 or 1
)

// IndexType represents index types.
type IndexType string

const (
	IndexTypeNormal  IndexType = "normal"  // General-purpose index
	IndexTypeUnique  IndexType = "unique"  // Unique index
	IndexTypePrimary IndexType = "primary" // Primary key index (implies unique)
)

// FieldDefinition defines a column within a table.
type FieldDefinition struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
	// Required adds NOT NULL.
	Required *bool `json:"required,omitempty"`
	// Default provides a default value for the column.
	Default any `json:"default,omitempty"`
	// Unique adds a UNIQUE constraint.
	Unique *bool `json:"unique,omitempty"`
	// PrimaryKey marks a single-column integer key, optionally auto-incremented.
	PrimaryKey    bool `json:"primaryKey,omitempty"`
	AutoIncrement bool `json:"autoIncrement,omitempty"`
	// Collate names a collation, e.g. NOCASE.
	Collate string `json:"collate,omitempty"`
	// Description provides a brief explanation of the field.
	Description *string `json:"description,omitempty"`
}

// IndexDefinition defines an index for optimizing queries or enforcing uniqueness.
type IndexDefinition struct {
	Fields []string  `json:"fields"`
	Type   IndexType `json:"type"`
	Unique *bool     `json:"unique,omitempty"`
	Order  *string   `json:"order,omitempty"` // "asc" | "desc"
	Name   string    `json:"name"`
}

// TableDefinition is a complete table. Fields keep their declaration order,
// which is the column order of the generated DDL.
type TableDefinition struct {
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Fields      []*FieldDefinition `json:"fields"`
	Indexes     []IndexDefinition  `json:"indexes,omitempty"`
}

// Bool returns a pointer to b, for the optional flags of a FieldDefinition.
func Bool(b bool) *bool {
	return &b
}

// ID is the conventional auto-incremented integer primary key.
func ID() *FieldDefinition {
	return &FieldDefinition{Name: "id", Type: FieldTypeInteger, PrimaryKey: true, AutoIncrement: true}
}

// Text returns a required TEXT column.
func Text(name string) *FieldDefinition {
	return &FieldDefinition{Name: name, Type: FieldTypeString, Required: Bool(true)}
}

// Integer returns a required INTEGER column.
func Integer(name string) *FieldDefinition {
	return &FieldDefinition{Name: name, Type: FieldTypeInteger, Required: Bool(true)}
}

// WithDefault sets the column default and returns f.
func (f *FieldDefinition) WithDefault(v any) *FieldDefinition {
	f.Default = v
	return f
}

// Optional drops NOT NULL and returns f.
func (f *FieldDefinition) Optional() *FieldDefinition {
	f.Required = nil
	return f
}

// String implements fmt.Stringer.
func (f *FieldDefinition) String() string {
	return fmt.Sprintf("%s %s", f.Name, f.Type)
}
