package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns its standard output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	content := "database:\n  driver: sqlite\n  path: " + filepath.Join(dir, "shop.db") +
		"\nlog:\n  level: error\nshop:\n  bcrypt_cost: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	doc := `
operation: select
columns: [name, price]
where: [user_id, [name, price]]
orderBy:
  - direction: ASC
    expression: name
limit: 5
`
	out, err := run(t, doc, "render", "-f", "-", "--table", "products")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT name,price FROM products WHERE user_id=? AND (name=? OR price=?) ORDER BY name ASC LIMIT 5\n-- placeholders: 3\n",
		out)
}

func TestRenderCommand_MissingTable(t *testing.T) {
	_, err := run(t, "operation: delete\n", "render", "-f", "-", "--table", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering statement")
}

func TestRenderCommand_Join(t *testing.T) {
	doc := `
operation: select
columns: [products.name, users.name]
joins:
  - table: users
    on: products.user_id = users.id
where: [products.id]
`
	out, err := run(t, doc, "render", "-f", "-", "--table", "products")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT products.name,users.name FROM products LEFT JOIN users ON products.user_id = users.id WHERE products.id=?\n-- placeholders: 1\n",
		out)
}

func TestRenderCommand_IncompleteJoin(t *testing.T) {
	doc := "operation: select\njoins:\n  - table: users\n"
	_, err := run(t, doc, "render", "-f", "-", "--table", "products")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing document")
}

func TestRenderCommand_RawPlaceholder(t *testing.T) {
	doc := "operation: select\njoins:\n  - table: users\n    on: users.id = ?\n"
	_, err := run(t, doc, "render", "-f", "-", "--table", "products")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering statement")
}

func TestShopCommands(t *testing.T) {
	config := writeConfig(t)

	out, err := run(t, "", "seed", "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded")

	out, err = run(t, "", "search", "--config", config, "s")
	require.NoError(t, err)
	assert.Contains(t, out, "skumtomtar")
	assert.NotContains(t, out, "rocks")

	out, err = run(t, "", "search", "--config", config, "zebra")
	require.NoError(t, err)
	assert.Equal(t, "No products found.\n", out)

	out, err = run(t, "", "top", "--config", config, "-n", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "PRODUCT")
	assert.Contains(t, out, "USER")

	out, err = run(t, "", "config", "show", "--config", config, "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: "+config)
	assert.Contains(t, out, "driver: sqlite")
	assert.Contains(t, out, "bcrypt_cost: 4")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "storefront "))
	assert.Contains(t, out, "revision: ")
	assert.Contains(t, out, "go:       go")

	out, err = run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, readBuildInfo().Version+"\n", out)
	versionShort = false
}

func TestBuildInfo_String(t *testing.T) {
	b := buildInfo{Version: "v1.2.0", Revision: "abc123", Modified: true, GoVersion: "go1.24.0"}
	assert.Equal(t, "storefront v1.2.0\n  revision: abc123+dirty\n  go:       go1.24.0\n", b.String())
}
