// Package main provides the storefront CLI.
//
// The CLI supports:
//   - seed: Recreate the storefront tables and fill them with demo data
//   - render: Print the SQL of a statement document
//   - top: List the top-rated products and users
//   - search: Find products by name prefix
//   - config show: Print the effective configuration
//   - version: Print the storefront build
//
// Usage:
//
//	storefront [flags] <command>
package main

func main() {
	Execute()
}
