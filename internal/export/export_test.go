package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/siteconf/internal/config"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

func productionConfig(t *testing.T) *site.Config {
	t.Helper()
	res, err := config.Parse(config.Example(), config.Options{Environment: "production"})
	require.NoError(t, err)
	return res.Config
}

func TestTypeScriptGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, productionConfig(t), FormatTS))

	goldenPath := filepath.Join("testdata", "production.umirc.ts.golden")
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		require.NoError(t, os.WriteFile(goldenPath, buf.Bytes(), 0o600))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	// #nosec G304 -- test utility reading golden file from testdata
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file: %s", goldenPath)
	assert.Equal(t, string(golden), buf.String())
}

func TestJSONAndYAMLReadBack(t *testing.T) {
	want := productionConfig(t)
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Render(want, f)
			require.NoError(t, err)

			var got site.Config
			if f == FormatJSON {
				require.NoError(t, json.Unmarshal(data, &got))
			} else {
				require.NoError(t, yaml.Unmarshal(data, &got))
			}
			assert.Equal(t, want, &got)
		})
	}
}

func TestYAMLUsesTwoSpaceIndent(t *testing.T) {
	data, err := Render(&site.Config{Title: "T", Resolve: &site.Resolve{Includes: []string{"docs"}}}, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "title: T\nresolve:\n  includes:\n    - docs\n", string(data))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"ts": FormatTS, "TypeScript": FormatTS, " JSON ": FormatJSON, "yml": FormatYAML}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options")
}

func TestFormatFromPath(t *testing.T) {
	f, ok := FormatFromPath(".umirc.ts")
	assert.True(t, ok)
	assert.Equal(t, FormatTS, f)

	f, ok = FormatFromPath("out/config.YML")
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, f)

	_, ok = FormatFromPath("config.toml")
	assert.False(t, ok)
}

func TestWriteFileSkipsUnchangedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".umirc.ts")
	cfg := productionConfig(t)

	changed, err := WriteFile(path, cfg, FormatTS)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = WriteFile(path, cfg, FormatTS)
	require.NoError(t, err)
	assert.False(t, changed)

	cfg.OutputPath = "docs-dist"
	changed, err = WriteFile(path, cfg, FormatTS)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "import { defineConfig } from 'dumi';"))
	assert.Contains(t, string(data), `"outputPath": "docs-dist"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(&site.Config{Title: "T"}, Format("toml"))
	assert.Error(t, err)
}
