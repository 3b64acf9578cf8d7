package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/siteconf/internal/foundation/normalization"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
// Respelled holds the same warnings as report issues located at the field.
type NormalizationResult struct {
	Warnings  []string
	Respelled []site.Issue
}

var (
	modeNormalizer = normalization.NewNormalizer("mode", map[string]site.Mode{
		"site": site.ModeSite,
		"doc":  site.ModeDoc,
	})

	transformNormalizer = normalization.NewNormalizer("nodeModulesTransform.type", map[string]site.TransformType{
		"all":  site.TransformAll,
		"none": site.TransformNone,
	})
)

// NormalizeConfig canonicalizes titles, paths and enumeration spellings prior
// to default application. It mutates the provided config in-place and returns
// a result describing any respellings. Unknown enumeration values are kept for
// Validate to reject.
func NormalizeConfig(c *site.Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}

	c.Title = cleanTitle(c.Title)
	c.Favicon = strings.TrimSpace(c.Favicon)
	c.Logo = strings.TrimSpace(c.Logo)
	c.OutputPath = strings.TrimSpace(c.OutputPath)
	normalizeNodes(c.Navs)
	for i := range c.Menus {
		c.Menus[i].Route = strings.TrimSpace(c.Menus[i].Route)
		normalizeNodes(c.Menus[i].Entries)
	}

	warn := func(field, msg string) {
		if msg != "" {
			res.Warnings = append(res.Warnings, msg)
			res.Respelled = append(res.Respelled, site.Issue{
				Code: site.CodeRespelledValue, Severity: site.SeverityWarning, Location: field, Message: msg,
			})
		}
	}
	if c.Mode != "" {
		var msg string
		c.Mode, msg = modeNormalizer.Respell(c.Mode)
		warn(modeNormalizer.Field(), msg)
	}
	if t := c.NodeModulesTransform; t != nil && t.Type != "" {
		var msg string
		t.Type, msg = transformNormalizer.Respell(t.Type)
		warn(transformNormalizer.Field(), msg)
	}
	return res, nil
}

func normalizeNodes(nodes []site.Node) {
	for i, n := range nodes {
		switch v := n.(type) {
		case site.Link:
			nodes[i] = normalizeLink(v)
		case site.Group:
			g := site.Group{Title: cleanTitle(v.Title)}
			for _, child := range v.Children {
				g.Children = append(g.Children, normalizeLink(child))
			}
			nodes[i] = g
		}
	}
}

func normalizeLink(l site.Link) site.Link {
	return site.Link{Title: cleanTitle(l.Title), Path: strings.TrimSpace(l.Path)}
}

// cleanTitle trims and NFC-composes a display title so visually identical
// titles compare equal.
func cleanTitle(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
