package site

import (
	"encoding/json"
	"fmt"
)

// Change is one field that differs between two configurations. From and To
// hold compact JSON; an empty string means the field is absent on that side.
type Change struct {
	Field string `json:"field"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

func (c Change) String() string {
	switch {
	case c.From == "":
		return fmt.Sprintf("+ %s: %s", c.Field, c.To)
	case c.To == "":
		return fmt.Sprintf("- %s: %s", c.Field, c.From)
	default:
		return fmt.Sprintf("~ %s: %s -> %s", c.Field, c.From, c.To)
	}
}

// Diff lists the differences from a to b: top-level fields first in wire
// order, then menu sections in the order they appear in a, then sections
// only b has.
func Diff(a, b *Config) []Change {
	wa, wb := a.wire(), b.wire()
	var out []Change
	field := func(name string, x, y any) {
		from, to := compact(x), compact(y)
		if from != to {
			out = append(out, Change{Field: name, From: from, To: to})
		}
	}

	field("title", wa.Title, wb.Title)
	field("favicon", wa.Favicon, wb.Favicon)
	field("logo", wa.Logo, wb.Logo)
	field("outputPath", wa.OutputPath, wb.OutputPath)
	field("mode", wa.Mode, wb.Mode)
	field("exportStatic", wa.ExportStatic, wb.ExportStatic)
	field("nodeModulesTransform", wa.NodeModulesTransform, wb.NodeModulesTransform)
	field("extraBabelPlugins", wa.ExtraBabelPlugins, wb.ExtraBabelPlugins)
	field("dynamicImport", wa.DynamicImport, wb.DynamicImport)
	field("manifest", wa.Manifest, wb.Manifest)
	field("hash", wa.Hash, wb.Hash)
	field("resolve", wa.Resolve, wb.Resolve)
	field("navs", wa.Navs, wb.Navs)

	for _, s := range a.Menus {
		other, _ := b.Menus.Lookup(s.Route)
		var to any
		if hasRoute(b.Menus, s.Route) {
			to = toWire(other)
		}
		field(menuLocation(s.Route), toWire(s.Entries), to)
	}
	for _, s := range b.Menus {
		if !hasRoute(a.Menus, s.Route) {
			field(menuLocation(s.Route), nil, toWire(s.Entries))
		}
	}
	return out
}

func hasRoute(m Menus, route string) bool {
	_, ok := m.Lookup(route)
	return ok
}

// compact encodes v as JSON; zero values collapse to "".
func compact(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	switch s := string(data); s {
	case "null", `""`, "false":
		return ""
	default:
		return s
	}
}
