package site

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds no YAML/JSON document.
var ErrEmptyDocument = errors.New("empty configuration document")

// rawNode is a navigation entry as written: which of path/children are present
// decides its variant.
type rawNode struct {
	Title    string     `yaml:"title"`
	Path     *string    `yaml:"path"`
	Children *[]rawNode `yaml:"children"`

	line, column int
	mapping      bool
	unknown      []string
}

func (n *rawNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		type plain rawNode
		if err := value.Decode((*plain)(n)); err != nil {
			return err
		}
		n.mapping = true
		for i := 0; i+1 < len(value.Content); i += 2 {
			switch key := value.Content[i].Value; key {
			case "title", "path", "children":
			default:
				n.unknown = append(n.unknown, key)
			}
		}
	}
	n.line, n.column = value.Line, value.Column
	return nil
}

// rawConfig mirrors the document; navs and menus stay untyped until classified.
type rawConfig struct {
	Title                string                `yaml:"title"`
	Favicon              string                `yaml:"favicon"`
	Logo                 string                `yaml:"logo"`
	OutputPath           string                `yaml:"outputPath"`
	Mode                 Mode                  `yaml:"mode"`
	Hash                 bool                  `yaml:"hash"`
	ExportStatic         *ExportStatic         `yaml:"exportStatic"`
	DynamicImport        *DynamicImport        `yaml:"dynamicImport"`
	Manifest             *Manifest             `yaml:"manifest"`
	NodeModulesTransform *NodeModulesTransform `yaml:"nodeModulesTransform"`
	ExtraBabelPlugins    []BabelPlugin         `yaml:"extraBabelPlugins"`
	Resolve              *Resolve              `yaml:"resolve"`
	Navs                 []rawNode             `yaml:"navs"`
	Menus                yaml.Node             `yaml:"menus"`
}

// knownFields are the keys the generator accepts, per section. The empty
// section is the document root.
var knownFields = map[string][]string{
	"": {"title", "favicon", "logo", "outputPath", "mode", "hash", "exportStatic", "dynamicImport",
		"manifest", "nodeModulesTransform", "extraBabelPlugins", "resolve", "navs", "menus"},
	"exportStatic":         {"htmlSuffix", "dynamicRoot"},
	"dynamicImport":        {"loading"},
	"manifest":             {"fileName", "basePath"},
	"nodeModulesTransform": {"type", "exclude"},
	"resolve":              {"includes"},
}

// reportUnknownFields warns about keys of m that section does not declare and
// descends into the known option sections.
func reportUnknownFields(section string, m *yaml.Node, report *Report) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		loc := key.Value
		if section != "" {
			loc = section + "." + key.Value
		}
		if !slices.Contains(knownFields[section], key.Value) {
			report.Add(Issue{Code: CodeUnknownField, Severity: SeverityWarning, Location: loc, Line: key.Line, Column: key.Column,
				Message: fmt.Sprintf("unknown field %q is ignored", key.Value)})
			continue
		}
		if _, nested := knownFields[key.Value]; section == "" && nested && value.Kind == yaml.MappingNode {
			reportUnknownFields(key.Value, value, report)
		}
	}
}

// Decode parses a YAML or JSON document. Syntax and type errors are returned
// as error; structural problems with navigation entries are collected in the
// report and the offending entries are left out of the returned Config.
func Decode(data []byte) (*Config, *Report, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil, ErrEmptyDocument
	}
	return DecodeNode(doc.Content[0])
}

// DecodeNode is Decode for an already parsed document root.
func DecodeNode(root *yaml.Node) (*Config, *Report, error) {
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("line %d: configuration root must be a mapping", root.Line)
	}
	var raw rawConfig
	if err := root.Decode(&raw); err != nil {
		return nil, nil, err
	}

	report := &Report{}
	reportUnknownFields("", root, report)
	cfg := &Config{
		Title:                raw.Title,
		Favicon:              raw.Favicon,
		Logo:                 raw.Logo,
		OutputPath:           raw.OutputPath,
		Mode:                 raw.Mode,
		Hash:                 raw.Hash,
		ExportStatic:         raw.ExportStatic,
		DynamicImport:        raw.DynamicImport,
		Manifest:             raw.Manifest,
		NodeModulesTransform: raw.NodeModulesTransform,
		ExtraBabelPlugins:    nilIfEmpty(raw.ExtraBabelPlugins),
		Resolve:              raw.Resolve,
		Navs:                 classifyAll("navs", raw.Navs, report),
	}
	if cfg.NodeModulesTransform != nil {
		cfg.NodeModulesTransform.Exclude = nilIfEmpty(cfg.NodeModulesTransform.Exclude)
	}
	if cfg.Resolve != nil {
		cfg.Resolve.Includes = nilIfEmpty(cfg.Resolve.Includes)
	}

	menus, err := decodeMenus(&raw.Menus, report)
	if err != nil {
		return nil, nil, err
	}
	cfg.Menus = menus
	return cfg, report, nil
}

func decodeMenus(node *yaml.Node, report *Report) (Menus, error) {
	if node.Kind == 0 || node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: menus must be a mapping of route to entries", node.Line)
	}
	var menus Menus
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		loc := menuLocation(key.Value)
		if _, dup := menus.Lookup(key.Value); dup {
			report.Add(Issue{Code: CodeDuplicateMenu, Severity: SeverityError, Location: loc, Line: key.Line, Column: key.Column,
				Message: fmt.Sprintf("menu route %q is declared more than once", key.Value)})
			continue
		}
		var entries []rawNode
		if value.ShortTag() != "!!null" {
			if err := value.Decode(&entries); err != nil {
				return nil, err
			}
		}
		if len(entries) == 0 {
			report.Add(Issue{Code: CodeEmptySection, Severity: SeverityWarning, Location: loc, Line: key.Line, Column: key.Column,
				Message: "menu section has no entries"})
		}
		menus = append(menus, MenuSection{Route: key.Value, Entries: classifyAll(loc, entries, report)})
	}
	return menus, nil
}

func classifyAll(prefix string, raws []rawNode, report *Report) []Node {
	var out []Node
	for i, r := range raws {
		if n, ok := classify(fmt.Sprintf("%s[%d]", prefix, i), r, false, report); ok {
			out = append(out, n)
		}
	}
	return out
}

// classify decides the variant of one entry. nested is true for entries inside
// a group's children, where only links are allowed.
func classify(loc string, r rawNode, nested bool, report *Report) (Node, bool) {
	fail := func(code Code, format string, args ...any) (Node, bool) {
		report.Add(Issue{Code: code, Severity: SeverityError, Location: loc, Line: r.line, Column: r.column, Message: fmt.Sprintf(format, args...)})
		return nil, false
	}
	if !r.mapping {
		if r.line == 0 {
			return fail(CodeMalformedNode, "null entries are not supported; list every entry explicitly")
		}
		return fail(CodeMalformedNode, "entry must be a mapping with title and either path or children")
	}
	for _, k := range r.unknown {
		report.Add(Issue{Code: CodeUnknownField, Severity: SeverityWarning, Location: loc, Line: r.line, Column: r.column,
			Message: fmt.Sprintf("unknown field %q is ignored", k)})
	}

	switch hasPath, hasChildren := r.Path != nil, r.Children != nil; {
	case hasPath && hasChildren:
		return fail(CodeMalformedNode, "entry has both path and children; a link has a path, a group has children")
	case hasPath:
		return Link{Title: r.Title, Path: *r.Path}, true
	case !hasChildren:
		return fail(CodeMalformedNode, "entry has neither path nor children")
	case nested:
		return fail(CodeNestedGroup, "groups cannot contain groups; nesting is limited to one level")
	}

	children := *r.Children
	if len(children) == 0 {
		fail(CodeEmptyGroup, "group %q has no children", r.Title)
	}
	g := Group{Title: r.Title}
	for j, c := range children {
		n, ok := classify(fmt.Sprintf("%s.children[%d]", loc, j), c, true, report)
		if !ok {
			continue
		}
		g.Children = append(g.Children, n.(Link))
	}
	return g, true
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
