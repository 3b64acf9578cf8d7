package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(issues []Issue) []Code {
	out := make([]Code, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestValidateBlogIsClean(t *testing.T) {
	cfg := decodeBlog(t)
	report := cfg.Validate(ValidateOptions{})
	assert.Empty(t, report.Issues)
	assert.NoError(t, report.Err())
}

func TestValidateDanglingMenu(t *testing.T) {
	cfg := decodeBlog(t)
	cfg.Menus = append(cfg.Menus, MenuSection{Route: "/about", Entries: []Node{Link{Title: "Me", Path: "/about/me"}}})

	report := cfg.Validate(ValidateOptions{DanglingMenus: PolicyError})
	require.True(t, report.HasErrors())
	assert.Equal(t, []Code{CodeDanglingMenu}, codes(report.Errors()))
	assert.Equal(t, `menus["/about"]`, report.Errors()[0].Location)

	var reportErr *ReportError
	require.ErrorAs(t, report.Err(), &reportErr)

	report = cfg.Validate(ValidateOptions{DanglingMenus: PolicyWarn})
	assert.False(t, report.HasErrors())
	assert.Equal(t, []Code{CodeDanglingMenu}, codes(report.Warnings()))
}

func TestValidateMenuRouteFromGroupChild(t *testing.T) {
	cfg := &Config{
		Title: "T",
		Navs:  []Node{Group{Title: "More", Children: []Link{{Title: "Blog", Path: "/blog"}}}},
		Menus: Menus{{Route: "/blog", Entries: []Node{Link{Title: "Post", Path: "/blog/post"}}}},
	}
	assert.Empty(t, cfg.Validate(ValidateOptions{}).Issues)
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		code     Code
		severity Severity
		location string
	}{
		{"missing title", func(c *Config) { c.Title = "  " }, CodeMissingField, SeverityError, "title"},
		{"relative nav path", func(c *Config) {
			c.Navs = append(c.Navs, Link{Title: "about", Path: "about"})
		}, CodeInvalidPath, SeverityError, "navs[2].path"},
		{"whitespace in route", func(c *Config) {
			c.Navs = append(c.Navs, Link{Title: "about", Path: "/ab out"})
		}, CodeInvalidPath, SeverityError, "navs[2].path"},
		{"ftp url", func(c *Config) {
			c.Navs[1] = Group{Title: "x", Children: []Link{{Title: "f", Path: "ftp://example.com/x"}}}
		}, CodeInvalidURL, SeverityError, "navs[1].children[0].path"},
		{"url without host", func(c *Config) {
			c.Navs[1] = Group{Title: "x", Children: []Link{{Title: "f", Path: "https://"}}}
		}, CodeInvalidURL, SeverityError, "navs[1].children[0].path"},
		{"empty link title", func(c *Config) {
			c.Navs[1] = Group{Title: "x", Children: []Link{{Title: "", Path: "https://example.com"}}}
		}, CodeMissingField, SeverityError, "navs[1].children[0].title"},
		{"empty group title", func(c *Config) {
			c.Navs[1] = Group{Children: []Link{{Title: "a", Path: "https://example.com"}}}
		}, CodeMissingField, SeverityError, "navs[1].title"},
		{"relative favicon", func(c *Config) { c.Favicon = "images/x.png" }, CodeInvalidPath, SeverityError, "favicon"},
		{"bad mode", func(c *Config) { c.Mode = "wiki" }, CodeInvalidValue, SeverityError, "mode"},
		{"absolute output path", func(c *Config) { c.OutputPath = "/var/www" }, CodeInvalidPath, SeverityWarning, "outputPath"},
		{"bad transform", func(c *Config) {
			c.NodeModulesTransform = &NodeModulesTransform{Type: "some"}
		}, CodeInvalidValue, SeverityError, "nodeModulesTransform.type"},
		{"unnamed plugin", func(c *Config) {
			c.ExtraBabelPlugins = []BabelPlugin{{Alias: "antd"}}
		}, CodeMissingField, SeverityError, "extraBabelPlugins[0]"},
		{"duplicate nav route", func(c *Config) {
			c.Navs = append(c.Navs, Link{Title: "again", Path: "/home"})
		}, CodeDuplicateRoute, SeverityWarning, "navs[2]"},
		{"sidebar link outside section", func(c *Config) {
			c.Menus[0].Entries = append(c.Menus[0].Entries, Link{Title: "x", Path: "/elsewhere"})
		}, CodeOutsideSection, SeverityWarning, `menus["/home"][3]`},
		{"menu key without slash", func(c *Config) {
			c.Menus = append(c.Menus, MenuSection{Route: "home", Entries: []Node{Link{Title: "x", Path: "/home/x"}}})
		}, CodeInvalidPath, SeverityError, `menus["home"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := decodeBlog(t)
			tt.mutate(cfg)
			report := cfg.Validate(ValidateOptions{})
			require.Len(t, report.Issues, 1, "issues: %v", report.Issues)
			issue := report.Issues[0]
			assert.Equal(t, tt.code, issue.Code)
			assert.Equal(t, tt.severity, issue.Severity)
			assert.Equal(t, tt.location, issue.Location)
		})
	}
}

func TestValidateAcceptsIDNHost(t *testing.T) {
	cfg := &Config{Title: "T", Navs: []Node{Link{Title: "x", Path: "https://bücher.example/x"}}}
	assert.Empty(t, cfg.Validate(ValidateOptions{}).Issues)
}

func TestReportEscalate(t *testing.T) {
	r := &Report{}
	r.Warnf(CodeUnknownField, "navs[0]", "unknown field %q is ignored", "icon")
	assert.NoError(t, r.Err())
	r.Escalate()
	err := r.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error [unknown-field] navs[0]")
}

func TestReportErrorSummarizes(t *testing.T) {
	r := &Report{}
	r.Errorf(CodeMissingField, "title", "site title is required")
	r.Errorf(CodeInvalidPath, "navs[0].path", "bad")
	assert.Equal(t, "error [missing-field] title: site title is required (and 1 more)", r.Err().Error())
}
