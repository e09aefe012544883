// Package statement turns declarative statement configurations into
// parameterized SQL text. Every caller value is bound through a positional
// `?` placeholder; the builder never concatenates values into the text, and
// each `?` it emits corresponds to exactly one value the caller supplies, in
// left-to-right order of appearance.
package statement

import "strings"

// Operation is the SQL verb a Config describes.
type Operation string

// Supported operations.
const (
	OperationSelect Operation = "SELECT"
	OperationInsert Operation = "INSERT"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// ParseOperation normalizes a case-insensitive verb. Unknown verbs are
// returned upper-cased and rejected later by Build.
func ParseOperation(s string) Operation {
	return Operation(strings.ToUpper(strings.TrimSpace(s)))
}

// Config describes one statement. Values are built per call, consumed by a
// Builder and discarded.
type Config struct {
	Operation Operation
	// Table overrides the builder's default table.
	Table   string
	Columns []Column     // SELECT projection or INSERT target columns
	Set     []Assignment // UPDATE assignments
	Joins   []Join       // always rendered as LEFT JOIN
	Filter  Node
	OrderBy []Order
	Limit   *int
	Offset  *int
}

// Column is a projected or inserted column.
type Column struct {
	Expression string
	Alias      string
}

// Cols is shorthand for a list of unaliased columns.
func Cols(names ...string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = Column{Expression: n}
	}
	return out
}

// As returns a column rendered as `expr AS alias`.
func As(expr, alias string) Column {
	return Column{Expression: expr, Alias: alias}
}

// AssignMode selects how an UPDATE assignment is rendered.
type AssignMode int

const (
	// Assign renders `col=?`.
	Assign AssignMode = iota
	// Increment renders `col = col + ?`; the bound value is the delta and may
	// be negative.
	Increment
)

// Assignment is one entry of an UPDATE SET list.
type Assignment struct {
	Column string
	Mode   AssignMode
}

// SetCols is shorthand for plain assignments.
func SetCols(names ...string) []Assignment {
	out := make([]Assignment, len(names))
	for i, n := range names {
		out[i] = Assignment{Column: n}
	}
	return out
}

// Add returns an increment assignment for column.
func Add(column string) Assignment {
	return Assignment{Column: column, Mode: Increment}
}

// Join is a LEFT JOIN against Table on a raw boolean expression.
type Join struct {
	Table string
	On    string
}

// Direction is an ORDER BY direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is one ORDER BY term.
type Order struct {
	Direction  Direction
	Expression string
}

func (o Order) valid() bool {
	return (o.Direction == Asc || o.Direction == Desc) && o.Expression != ""
}

// IntPtr returns a pointer to n, for Limit and Offset.
func IntPtr(n int) *int {
	return &n
}
