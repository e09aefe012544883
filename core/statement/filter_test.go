package statement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterText(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		depth    int
		expected string
		count    int
	}{
		{
			name:     "bare column",
			input:    "id",
			expected: "id=?",
			count:    1,
		},
		{
			name:     "alternates AND and OR by depth",
			input:    []any{"a", []any{"b", "c"}, "d"},
			expected: "a=? AND (b=? OR c=?) AND d=?",
			count:    4,
		},
		{
			name:     "empty nested group is omitted",
			input:    []any{"a", []any{}, "b"},
			expected: "a=? AND b=?",
			count:    2,
		},
		{
			name:     "third level switches back to AND",
			input:    []any{"a", []any{"b", []any{"c", "d"}}},
			expected: "a=? AND (b=? OR (c=? AND d=?))",
			count:    4,
		},
		{
			name:     "single nested group keeps its parentheses",
			input:    []any{[]string{"email", "username"}},
			expected: "(email=? OR username=?)",
			count:    2,
		},
		{
			name:     "only empty groups renders nothing",
			input:    []any{[]any{}, []any{[]any{}}},
			expected: "",
			count:    0,
		},
		{
			name:     "start depth one uses OR at the top",
			input:    []string{"a", "b"},
			depth:    1,
			expected: "a=? OR b=?",
			count:    2,
		},
		{
			name: "explicit leaf with literal binds nothing",
			input: []any{
				map[string]any{"column": "products.reviewcount", "operator": ">", "value": "0"},
			},
			expected: "products.reviewcount > 0",
			count:    0,
		},
		{
			name:     "explicit leaf defaults operator",
			input:    []any{map[string]any{"column": "name"}},
			expected: "name = ?",
			count:    1,
		},
		{
			name:     "explicit leaf without column keeps the placeholder default",
			input:    []any{map[string]any{"operator": "LIKE"}},
			expected: "? LIKE ?",
			count:    2,
		},
		{
			name:     "nil filter",
			input:    nil,
			expected: "",
			count:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Where(tt.input)
			require.NoError(t, err)

			text, count, err := FilterText(node, tt.depth)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestFilterText_Constructors(t *testing.T) {
	text, count, err := FilterText(Of(
		Cond("name", "LIKE", Placeholder{}),
		Of(Col("price"), Cond("stock", ">", Literal{SQL: "0"})),
		Leaf{},
	), 0)
	require.NoError(t, err)
	assert.Equal(t, "name LIKE ? AND (price=? OR stock > 0) AND ? = ?", text)
	assert.Equal(t, 4, count)
}

func TestFilterText_PointerNodes(t *testing.T) {
	leaf := Col("id")
	group := Match("a", "b")

	text, count, err := FilterText(&leaf, 0)
	require.NoError(t, err)
	assert.Equal(t, "id=?", text)
	assert.Equal(t, 1, count)

	text, _, err = FilterText(Of(&group, &leaf), 0)
	require.NoError(t, err)
	assert.Equal(t, "(a=? OR b=?) AND id=?", text)

	var nilGroup *Group
	_, _, err = FilterText(Of(nilGroup), 0)
	assert.ErrorIs(t, err, ErrMalformedFilter)
}

func TestFilterText_Subquery(t *testing.T) {
	node := Of(In("product_id", Config{
		Operation: OperationSelect,
		Table:     "products",
		Columns:   Cols("id"),
		Filter:    Col("user_id"),
	}))

	text, count, err := FilterText(node, 0)
	require.NoError(t, err)
	assert.Equal(t, "product_id in (SELECT id FROM products WHERE user_id=?)", text)
	assert.Equal(t, 1, count)
}

func TestFilterText_SubqueryUsesDefaultTable(t *testing.T) {
	b := NewBuilder("products")
	text, count, err := b.FilterText(In("id", Config{Columns: Cols("id"), Filter: Match("user_id", "stock")}), 0)
	require.NoError(t, err)
	assert.Equal(t, "id in (SELECT id FROM products WHERE user_id=? AND stock=?)", text)
	assert.Equal(t, 2, count)
}

func TestFilterText_Errors(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"non-select subquery", In("id", Config{Operation: OperationDelete, Table: "x"})},
		{"empty literal", Cond("id", "=", Literal{})},
		{"nil subquery pointer", Cond("id", "in", (*Subquery)(nil))},
		{"nil leaf inside group", Of((*Leaf)(nil))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, _, err := FilterText(tt.node, 0)
			assert.ErrorIs(t, err, ErrMalformedFilter)
			assert.Empty(t, text)
		})
	}

	_, _, err := FilterText(In("id", Config{Columns: Cols("id")}), 0)
	assert.ErrorIs(t, err, ErrMissingTable)
}

func TestWhere_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"number", 42},
		{"number inside group", []any{"a", 3}},
		{"empty column", ""},
		{"non-string column", []any{map[string]any{"column": 5}}},
		{"non-string operator", []any{map[string]any{"column": "a", "operator": true}}},
		{"non-string value", []any{map[string]any{"column": "a", "value": 1.5}}},
		{"unknown key", []any{map[string]any{"column": "a", "columnValue": "x"}}},
		{"value and subquery", map[string]any{"column": "a", "value": "1", "subquery": map[string]any{}}},
		{"subquery not an object", map[string]any{"column": "a", "subquery": "SELECT 1"}},
		{"bad subquery filter", map[string]any{"column": "a", "subquery": map[string]any{"table": "t", "where": 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Where(tt.input)
			require.Error(t, err)
			assert.Nil(t, node)

			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce))
			assert.ErrorIs(t, err, ErrMalformedFilter)
		})
	}
}
