package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteconf/internal/site"
)

func TestNormalizeConfigEnums(t *testing.T) {
	cfg := &site.Config{
		Title:                "Docs",
		Mode:                 "SiTe",
		NodeModulesTransform: &site.NodeModulesTransform{Type: " NONE "},
	}
	res, err := NormalizeConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, site.ModeSite, cfg.Mode)
	assert.Equal(t, site.TransformNone, cfg.NodeModulesTransform.Type)
	assert.Len(t, res.Warnings, 2)
	require.Len(t, res.Respelled, 2)
	assert.Equal(t, "mode", res.Respelled[0].Location)
	assert.Equal(t, "nodeModulesTransform.type", res.Respelled[1].Location)
}

func TestNormalizeConfigLeavesUnknownsForValidation(t *testing.T) {
	cfg := &site.Config{
		Title:                "Docs",
		Mode:                 "wiki",
		NodeModulesTransform: &site.NodeModulesTransform{Type: "some"},
	}
	res, err := NormalizeConfig(cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, site.Mode("wiki"), cfg.Mode)
	assert.Equal(t, site.TransformType("some"), cfg.NodeModulesTransform.Type)

	_, err = Parse([]byte("title: Docs\nmode: wiki\n"), Options{})
	require.Error(t, err)
	var reportErr *site.ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, site.CodeInvalidValue, reportErr.Report.Errors()[0].Code)
	assert.Equal(t, "mode", reportErr.Report.Errors()[0].Location)
}

func TestNormalizeTitlesAndPaths(t *testing.T) {
	decomposed := "Cafe\u0301"
	cfg := &site.Config{
		Title: "  牧游博客 ",
		Navs: []site.Node{
			site.Link{Title: decomposed, Path: " /cafe "},
			site.Group{Title: " More ", Children: []site.Link{{Title: " GitHub", Path: "https://github.com/jackywq "}}},
		},
		Menus: site.Menus{{Route: " /cafe ", Entries: []site.Node{site.Link{Title: "Menu", Path: "/cafe/menu"}}}},
	}
	res, err := NormalizeConfig(cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, "牧游博客", cfg.Title)
	assert.Equal(t, site.Link{Title: "Caf\u00e9", Path: "/cafe"}, cfg.Navs[0])
	assert.Equal(t, site.Group{Title: "More", Children: []site.Link{{Title: "GitHub", Path: "https://github.com/jackywq"}}}, cfg.Navs[1])
	assert.Equal(t, "/cafe", cfg.Menus[0].Route)
}

func TestNormalizeConfigNil(t *testing.T) {
	_, err := NormalizeConfig(nil)
	assert.Error(t, err)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &site.Config{OutputPath: "public", Mode: site.ModeSite, Resolve: &site.Resolve{Includes: []string{"src"}}}
	applyDefaults(cfg)
	assert.Equal(t, "public", cfg.OutputPath)
	assert.Equal(t, site.ModeSite, cfg.Mode)
	assert.Equal(t, []string{"src"}, cfg.Includes())

	domains := make([]string, 0, len(defaultAppliers))
	for _, a := range defaultAppliers {
		domains = append(domains, a.Domain())
	}
	assert.Equal(t, []string{"output", "resolve"}, domains)
}
