package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogYAML = `
title: 牧游博客
favicon: /images/muyou.png
logo: /images/muyou.png
outputPath: dist
mode: site
navs:
  - title: 首页
    path: /home
  - title: 其他网站
    children:
      - title: github
        path: https://github.com/jackywq
      - title: 稀土掘金
        path: https://juejin.cn/user/747323636066125/posts
menus:
  /home:
    - title: 技术family
      children:
        - title: 工作学习
          path: /home/work
        - title: Linux技术大全
          path: /home/linux
    - title: 工程化
      children:
        - title: CICD
          path: /home/cicd
        - title: Docker部署
          path: /home/docker
    - title: 算法
      children:
        - title: leetcode
          path: /home/leetcode
`

func decodeBlog(t *testing.T) *Config {
	t.Helper()
	cfg, report, err := Decode([]byte(blogYAML))
	require.NoError(t, err)
	require.Empty(t, report.Issues)
	return cfg
}

func TestDecodeClassifiesLeafAndGroup(t *testing.T) {
	cfg := decodeBlog(t)
	require.Len(t, cfg.Navs, 2)

	home, ok := AsLink(cfg.Navs[0])
	require.True(t, ok, "首页 should be a link")
	assert.Equal(t, Link{Title: "首页", Path: "/home"}, home)
	assert.Equal(t, KindLink, cfg.Navs[0].Kind())

	other, ok := AsGroup(cfg.Navs[1])
	require.True(t, ok, "其他网站 should be a group")
	assert.Equal(t, "其他网站", other.Title)
	require.Len(t, other.Children, 2)
	assert.Equal(t, "github", other.Children[0].Title)
	assert.Equal(t, "https://github.com/jackywq", other.Children[0].Path)
	assert.Equal(t, "稀土掘金", other.Children[1].Title)
	assert.True(t, other.Children[1].External())
}

func TestDecodeMenuLookup(t *testing.T) {
	cfg := decodeBlog(t)
	assert.Equal(t, []string{"/home"}, cfg.Menus.Routes())

	entries, ok := cfg.Menus.Lookup("/home")
	require.True(t, ok)
	require.Len(t, entries, 3)
	first, ok := AsGroup(entries[0])
	require.True(t, ok)
	assert.Equal(t, "/home/work", first.Children[0].Path)

	_, ok = cfg.Menus.Lookup("/missing")
	assert.False(t, ok)
}

func TestDecodeJSONDocument(t *testing.T) {
	doc := `{"title":"Docs","navs":[{"title":"Guide","path":"/guide"}],"menus":{"/guide":[{"title":"Intro","path":"/guide/intro"}]}}`
	cfg, report, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
	assert.Equal(t, "Docs", cfg.Title)
	assert.Equal(t, []string{"/guide"}, cfg.NavRoutes())
}

func TestDecodeStructuralIssues(t *testing.T) {
	tests := []struct {
		name     string
		navs     string
		code     Code
		severity Severity
		kept     int
	}{
		{
			name: "both path and children",
			navs: "  - title: X\n    path: /x\n    children:\n      - {title: Y, path: /y}\n",
			code: CodeMalformedNode, severity: SeverityError, kept: 0,
		},
		{
			name: "neither path nor children",
			navs: "  - title: X\n",
			code: CodeMalformedNode, severity: SeverityError, kept: 0,
		},
		{
			name: "nested group",
			navs: "  - title: X\n    children:\n      - title: Y\n        children:\n          - {title: Z, path: /z}\n",
			code: CodeNestedGroup, severity: SeverityError, kept: 1,
		},
		{
			name: "empty group",
			navs: "  - title: X\n    children: []\n",
			code: CodeEmptyGroup, severity: SeverityError, kept: 1,
		},
		{
			name: "unknown field",
			navs: "  - title: X\n    path: /x\n    icon: star\n",
			code: CodeUnknownField, severity: SeverityWarning, kept: 1,
		},
		{
			name: "scalar entry",
			navs: "  - just-a-string\n",
			code: CodeMalformedNode, severity: SeverityError, kept: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, report, err := Decode([]byte("title: T\nnavs:\n" + tt.navs))
			require.NoError(t, err)
			require.NotEmpty(t, report.Issues)
			issue := report.Issues[0]
			assert.Equal(t, tt.code, issue.Code)
			assert.Equal(t, tt.severity, issue.Severity)
			assert.Equal(t, "navs[0]", issue.Location[:len("navs[0]")])
			assert.Positive(t, issue.Line)
			assert.Len(t, cfg.Navs, tt.kept)
		})
	}
}

func TestDecodeDuplicateMenuKey(t *testing.T) {
	doc := "title: T\nmenus:\n  /a:\n    - {title: A, path: /a/x}\n  /a:\n    - {title: B, path: /a/y}\n"
	cfg, report, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.True(t, report.HasErrors())
	assert.Equal(t, CodeDuplicateMenu, report.Errors()[0].Code)
	entries, _ := cfg.Menus.Lookup("/a")
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].Label())
}

func TestDecodeEmptySectionWarns(t *testing.T) {
	cfg, report, err := Decode([]byte("title: T\nmenus:\n  /a: []\n"))
	require.NoError(t, err)
	assert.False(t, report.HasErrors())
	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, CodeEmptySection, report.Warnings()[0].Code)
	assert.Equal(t, []string{"/a"}, cfg.Menus.Routes())
}

func TestDecodeWarnsAboutUnknownTopLevelFields(t *testing.T) {
	doc := "title: Docs\nfavicn: /x.png\nthemeConfig: {a: 1}\nexportStatic: {htmlSufix: true}\nresolve: {includes: [docs]}\n"
	cfg, report, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.False(t, report.HasErrors())

	var locations []string
	for _, w := range report.Warnings() {
		assert.Equal(t, CodeUnknownField, w.Code)
		locations = append(locations, w.Location)
	}
	assert.Equal(t, []string{"favicn", "themeConfig", "exportStatic.htmlSufix"}, locations)
	assert.Equal(t, 2, report.Warnings()[0].Line)
	assert.Empty(t, cfg.Favicon)
	assert.Equal(t, &ExportStatic{}, cfg.ExportStatic)
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := Decode([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, _, err = Decode([]byte("- a\n- b\n"))
	assert.Error(t, err)

	_, _, err = Decode([]byte("title: [unterminated\n"))
	assert.Error(t, err)

	_, _, err = Decode([]byte("title: T\nmenus: [a]\n"))
	assert.Error(t, err)
}

func TestLinksLocations(t *testing.T) {
	cfg := decodeBlog(t)
	refs := cfg.Links()
	require.Len(t, refs, 8)
	assert.Equal(t, "navs[0]", refs[0].Location)
	assert.Equal(t, "navs[1].children[1]", refs[2].Location)
	assert.Equal(t, `menus["/home"][0].children[0]`, refs[3].Location)
	assert.Equal(t, "/home", refs[3].Section)
}
