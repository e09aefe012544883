package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "select with alias join and order",
			input: `
operation: select
table: products
columns:
  - products.*
  - column: product_parts.id
    alias: part_id
joins:
  - table: product_parts
    on: products.id = product_parts.product_id
where: products.id
orderBy:
  - direction: desc
    expression: products.id
limit: 5
`,
			expected: "SELECT products.*,product_parts.id AS part_id FROM products" +
				" LEFT JOIN product_parts ON products.id = product_parts.product_id" +
				" WHERE products.id=? ORDER BY products.id DESC LIMIT 5",
		},
		{
			name: "operation defaults to select",
			input: `
table: users
where:
  - - email
    - username
`,
			expected: "SELECT * FROM users WHERE (email=? OR username=?)",
		},
		{
			name: "update with increment",
			input: `
operation: update
table: products
set:
  - column: stock
    mode: increment
  - name
  - column: ignored
    mode: multiply
where: [id]
`,
			expected: "UPDATE products SET stock = stock + ?, name=? WHERE id=?",
		},
		{
			name: "delete with subquery",
			input: `
operation: delete
table: product_parts
where:
  - column: product_id
    operator: in
    subquery:
      table: products
      columns: [id]
      where: user_id
`,
			expected: "DELETE FROM product_parts WHERE product_id in (SELECT id FROM products WHERE user_id=?)",
		},
		{
			name: "literal comparand",
			input: `
table: products
where:
  - column: products.reviewcount
    operator: ">"
    value: "0"
`,
			expected: "SELECT * FROM products WHERE products.reviewcount > 0",
		},
		{
			name:     "json input",
			input:    `{"operation":"insert","table":"users","columns":["username","email"]}`,
			expected: "INSERT INTO users (username,email) VALUES(?,?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseDocument([]byte(tt.input))
			require.NoError(t, err)

			sql, err := Build(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
		})
	}
}

func TestParseDocument_Errors(t *testing.T) {
	_, err := ParseDocument([]byte("operation: [unterminated"))
	assert.Error(t, err)

	_, err = ParseDocument([]byte("table: t\nwhere: 12\n"))
	assert.ErrorIs(t, err, ErrMalformedFilter)

	cfg, err := ParseDocument([]byte("operation: merge\ntable: t\n"))
	require.NoError(t, err)
	_, err = Build(cfg)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestParseDocument_Joins(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"yaml on", "table: products\njoins:\n  - table: users\n    on: products.user_id = users.id\n"},
		{"yaml condition", "table: products\njoins:\n  - table: users\n    condition: products.user_id = users.id\n"},
		{"json on", `{"table":"products","joins":[{"table":"users","on":"products.user_id = users.id"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseDocument([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, []Join{{Table: "users", On: "products.user_id = users.id"}}, cfg.Joins)

			sql, err := Build(cfg)
			require.NoError(t, err)
			assert.Equal(t, "SELECT * FROM products LEFT JOIN users ON products.user_id = users.id", sql)
		})
	}
}

func TestParseDocument_IncompleteJoin(t *testing.T) {
	inputs := []string{
		"table: products\njoins:\n  - table: users\n",
		"table: products\njoins:\n  - on: products.user_id = users.id\n",
		"table: products\njoins:\n  - table: users\n    on: \"\"\n",
	}
	for _, input := range inputs {
		_, err := ParseDocument([]byte(input))
		assert.ErrorIs(t, err, ErrMalformedFilter, input)
	}
}

func TestDecode_SkipsUnknownShapes(t *testing.T) {
	cfg, err := Decode(Document{
		Table:   "t",
		Columns: []any{"a", 3, map[string]any{"column": "b", "alias": "c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, OperationSelect, cfg.Operation)
	assert.Equal(t, []Column{{Expression: "a"}, {Expression: "b", Alias: "c"}}, cfg.Columns)
}

func TestWhere_PassesNodesThrough(t *testing.T) {
	leaf := Cond("a", ">", Literal{SQL: "1"})
	node, err := Where(leaf)
	require.NoError(t, err)
	assert.Equal(t, leaf, node)

	node, err = Where([]any{leaf, "b"})
	require.NoError(t, err)
	text, count, err := FilterText(node, 0)
	require.NoError(t, err)
	assert.Equal(t, "a > 1 AND b=?", text)
	assert.Equal(t, 1, count)
}
