package site

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fullConfig() *Config {
	return &Config{
		Title:                "牧游博客",
		Favicon:              "/images/muyou.png",
		Logo:                 "/images/muyou.png",
		OutputPath:           "dist",
		Mode:                 ModeSite,
		Hash:                 true,
		ExportStatic:         &ExportStatic{},
		DynamicImport:        &DynamicImport{},
		Manifest:             &Manifest{},
		NodeModulesTransform: &NodeModulesTransform{Type: TransformNone},
		ExtraBabelPlugins: []BabelPlugin{
			{Name: "babel-plugin-import", Options: map[string]any{"libraryName": "antd", "libraryDirectory": "es", "style": true}, Alias: "antd"},
			{Name: "babel-plugin-lodash"},
		},
		Resolve: &Resolve{Includes: []string{"docs"}},
		Navs: []Node{
			Link{Title: "首页", Path: "/home"},
			Group{Title: "其他网站", Children: []Link{
				{Title: "github", Path: "https://github.com/jackywq"},
				{Title: "稀土掘金", Path: "https://juejin.cn/user/747323636066125/posts"},
			}},
		},
		Menus: Menus{
			{Route: "/home", Entries: []Node{
				Group{Title: "算法", Children: []Link{{Title: "leetcode", Path: "/home/leetcode"}}},
				Group{Title: "工程化", Children: []Link{{Title: "CICD", Path: "/home/cicd"}, {Title: "Docker部署", Path: "/home/docker"}}},
			}},
			{Route: "/about", Entries: []Node{Link{Title: "me", Path: "/about/me"}}},
		},
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	want := fullConfig()
	data, err := yaml.Marshal(want)
	require.NoError(t, err)

	var got Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, want, &got)
	assert.Equal(t, []string{"/home", "/about"}, got.Menus.Routes())
}

func TestJSONRoundTrip(t *testing.T) {
	want := fullConfig()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got Config
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, &got)
	assert.Equal(t, want.Fingerprint(), got.Fingerprint())
}

func TestJSONKeepsMenuOrder(t *testing.T) {
	data, err := json.Marshal(fullConfig())
	require.NoError(t, err)
	s := string(data)
	assert.Less(t, strings.Index(s, `"/home":`), strings.Index(s, `"/about":`))
	assert.Less(t, strings.Index(s, `"title":"算法"`), strings.Index(s, `"title":"工程化"`))
}

func TestBabelPluginWireForms(t *testing.T) {
	data, err := json.Marshal(fullConfig().ExtraBabelPlugins)
	require.NoError(t, err)
	assert.JSONEq(t, `[["babel-plugin-import",{"libraryDirectory":"es","libraryName":"antd","style":true},"antd"],"babel-plugin-lodash"]`, string(data))

	var plugins []BabelPlugin
	require.NoError(t, yaml.Unmarshal([]byte("- [a]\n- [b, {}, alias]\n- c\n"), &plugins))
	assert.Equal(t, []BabelPlugin{{Name: "a"}, {Name: "b", Alias: "alias"}, {Name: "c"}}, plugins)

	require.Error(t, yaml.Unmarshal([]byte("- [a, {}, b, c]\n"), &plugins))
	require.Error(t, yaml.Unmarshal([]byte("- {name: a}\n"), &plugins))
}

func TestUnmarshalRejectsInvalidStructure(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("title: T\nnavs:\n  - title: X\n"), &cfg)
	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, CodeMalformedNode, reportErr.Report.Errors()[0].Code)
}

func TestEmptyOptionsAreOmitted(t *testing.T) {
	data, err := yaml.Marshal(&Config{Title: "T", ExportStatic: &ExportStatic{}})
	require.NoError(t, err)
	assert.Equal(t, "title: T\nexportStatic: {}\n", string(data))
}

func TestFingerprintChangesWithNavigation(t *testing.T) {
	a, b := fullConfig(), fullConfig()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	b.Navs = b.Navs[:1]
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
