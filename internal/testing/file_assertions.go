package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FileAssertions checks files below a root directory, usually t.TempDir().
type FileAssertions struct {
	t    *testing.T
	root string
}

func NewFileAssertions(t *testing.T, root string) *FileAssertions {
	return &FileAssertions{t: t, root: root}
}

func (fa *FileAssertions) path(rel string) string {
	return filepath.Join(fa.root, filepath.FromSlash(rel))
}

func (fa *FileAssertions) AssertFileExists(rel string) *FileAssertions {
	fa.t.Helper()
	assert.FileExists(fa.t, fa.path(rel))
	return fa
}

func (fa *FileAssertions) AssertFileNotExists(rel string) *FileAssertions {
	fa.t.Helper()
	assert.NoFileExists(fa.t, fa.path(rel))
	return fa
}

func (fa *FileAssertions) AssertFileContains(rel, want string) *FileAssertions {
	fa.t.Helper()
	assert.Contains(fa.t, fa.GetFileContent(rel), want, rel)
	return fa
}

// AssertFileHasPrefix checks a generated header such as the dumi import line.
func (fa *FileAssertions) AssertFileHasPrefix(rel, prefix string) *FileAssertions {
	fa.t.Helper()
	content := fa.GetFileContent(rel)
	head := content[:min(len(prefix), len(content))]
	assert.Equal(fa.t, prefix, head, "%s starts with unexpected content:\n%s", rel, content)
	return fa
}

// ModTime is used to prove that a file was left untouched.
func (fa *FileAssertions) ModTime(rel string) time.Time {
	fa.t.Helper()
	info, err := os.Stat(fa.path(rel))
	require.NoError(fa.t, err)
	return info.ModTime()
}

// WriteFile creates rel and its parent directories and returns the full path.
func (fa *FileAssertions) WriteFile(rel, content string) string {
	fa.t.Helper()
	full := fa.path(rel)
	require.NoError(fa.t, os.MkdirAll(filepath.Dir(full), testDirPermissions))
	require.NoError(fa.t, os.WriteFile(full, []byte(content), testFilePermissions))
	return full
}

func (fa *FileAssertions) GetFileContent(rel string) string {
	fa.t.Helper()
	// #nosec G304 -- test helper reading files it was pointed at
	data, err := os.ReadFile(fa.path(rel))
	require.NoError(fa.t, err)
	return string(data)
}
