// Package testing holds helpers shared by package and command tests: a
// fluent site configuration builder, an in-process CLI runner and file
// assertions rooted at a temporary directory.
package testing

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)
