package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// wireNode is the untagged on-disk form of a Node.
type wireNode struct {
	Title    string     `yaml:"title" json:"title"`
	Path     string     `yaml:"path,omitempty" json:"path,omitempty"`
	Children []wireNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// wireConfig fixes field order and names for both encoders.
type wireConfig struct {
	Title                string                `yaml:"title" json:"title"`
	Favicon              string                `yaml:"favicon,omitempty" json:"favicon,omitempty"`
	Logo                 string                `yaml:"logo,omitempty" json:"logo,omitempty"`
	OutputPath           string                `yaml:"outputPath,omitempty" json:"outputPath,omitempty"`
	Mode                 Mode                  `yaml:"mode,omitempty" json:"mode,omitempty"`
	ExportStatic         *ExportStatic         `yaml:"exportStatic,omitempty" json:"exportStatic,omitempty"`
	NodeModulesTransform *NodeModulesTransform `yaml:"nodeModulesTransform,omitempty" json:"nodeModulesTransform,omitempty"`
	ExtraBabelPlugins    []BabelPlugin         `yaml:"extraBabelPlugins,omitempty" json:"extraBabelPlugins,omitempty"`
	DynamicImport        *DynamicImport        `yaml:"dynamicImport,omitempty" json:"dynamicImport,omitempty"`
	Manifest             *Manifest             `yaml:"manifest,omitempty" json:"manifest,omitempty"`
	Hash                 bool                  `yaml:"hash,omitempty" json:"hash,omitempty"`
	Resolve              *Resolve              `yaml:"resolve,omitempty" json:"resolve,omitempty"`
	Navs                 []wireNode            `yaml:"navs,omitempty" json:"navs,omitempty"`
	Menus                Menus                 `yaml:"menus,omitempty" json:"menus,omitempty"`
}

func toWire(nodes []Node) []wireNode {
	out := make([]wireNode, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case Link:
			out = append(out, wireNode{Title: v.Title, Path: v.Path})
		case Group:
			w := wireNode{Title: v.Title}
			for _, c := range v.Children {
				w.Children = append(w.Children, wireNode{Title: c.Title, Path: c.Path})
			}
			out = append(out, w)
		}
	}
	return out
}

func (c *Config) wire() wireConfig {
	w := wireConfig{
		Title:                c.Title,
		Favicon:              c.Favicon,
		Logo:                 c.Logo,
		OutputPath:           c.OutputPath,
		Mode:                 c.Mode,
		ExportStatic:         c.ExportStatic,
		NodeModulesTransform: c.NodeModulesTransform,
		ExtraBabelPlugins:    c.ExtraBabelPlugins,
		DynamicImport:        c.DynamicImport,
		Manifest:             c.Manifest,
		Hash:                 c.Hash,
		Resolve:              c.Resolve,
		Menus:                c.Menus,
	}
	if len(c.Navs) > 0 {
		w.Navs = toWire(c.Navs)
	}
	return w
}

// MarshalYAML implements yaml.Marshaler.
func (c Config) MarshalYAML() (any, error) {
	return c.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Documents with error-severity
// issues are rejected with a *ReportError.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	cfg, report, err := DecodeNode(value)
	if err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return err
	}
	*c = *cfg
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.wire())
}

// UnmarshalJSON implements json.Unmarshaler. The YAML parser reads JSON
// documents too and keeps menu key order, which encoding/json maps do not.
func (c *Config) UnmarshalJSON(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return ErrEmptyDocument
	}
	return c.UnmarshalYAML(doc.Content[0])
}

// MarshalYAML encodes the menus as a mapping in section order.
func (m Menus) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, s := range m {
		var value yaml.Node
		if err := value.Encode(toWire(s.Entries)); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Route},
			&value,
		)
	}
	return node, nil
}

// MarshalJSON encodes the menus as an object in section order.
func (m Menus) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Route)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(toWire(s.Entries))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p BabelPlugin) wire() any {
	if len(p.Options) == 0 && p.Alias == "" {
		return p.Name
	}
	options := p.Options
	if options == nil {
		options = map[string]any{}
	}
	tuple := []any{p.Name, options}
	if p.Alias != "" {
		tuple = append(tuple, p.Alias)
	}
	return tuple
}

// MarshalYAML implements yaml.Marshaler.
func (p BabelPlugin) MarshalYAML() (any, error) {
	return p.wire(), nil
}

// MarshalJSON implements json.Marshaler.
func (p BabelPlugin) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// UnmarshalYAML accepts "name" or [name, options?, alias?].
func (p *BabelPlugin) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = BabelPlugin{Name: value.Value}
		return nil
	case yaml.SequenceNode:
	default:
		return fmt.Errorf("line %d: babel plugin must be a name or a [name, options, alias] list", value.Line)
	}

	items := value.Content
	if len(items) == 0 || len(items) > 3 {
		return fmt.Errorf("line %d: babel plugin list must have 1 to 3 items, got %d", value.Line, len(items))
	}
	var out BabelPlugin
	if err := items[0].Decode(&out.Name); err != nil {
		return err
	}
	if len(items) > 1 && items[1].ShortTag() != "!!null" {
		if err := items[1].Decode(&out.Options); err != nil {
			return fmt.Errorf("line %d: babel plugin options must be a mapping: %w", items[1].Line, err)
		}
		if len(out.Options) == 0 {
			out.Options = nil
		}
	}
	if len(items) > 2 {
		if err := items[2].Decode(&out.Alias); err != nil {
			return err
		}
	}
	*p = out
	return nil
}
