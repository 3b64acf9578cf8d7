package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EnvironmentsKey is the top-level key holding per-environment overlays.
const EnvironmentsKey = "environments"

const menusKey = "menus"

// overlays is the environments block in document order.
type overlays struct {
	names []string
	nodes map[string]*yaml.Node
}

func (o overlays) get(name string) (*yaml.Node, bool) {
	n, ok := o.nodes[name]
	return n, ok
}

// splitEnvironments removes the environments block from root and returns it.
func splitEnvironments(root *yaml.Node) (overlays, error) {
	out := overlays{nodes: map[string]*yaml.Node{}}
	i := keyIndex(root, EnvironmentsKey)
	if i < 0 {
		return out, nil
	}
	block := root.Content[i+1]
	root.Content = append(root.Content[:i:i], root.Content[i+2:]...)

	if isNull(block) {
		return out, nil
	}
	if block.Kind != yaml.MappingNode {
		return out, fmt.Errorf("line %d: %s must be a mapping of name to overlay", block.Line, EnvironmentsKey)
	}
	for j := 0; j+1 < len(block.Content); j += 2 {
		name, value := block.Content[j].Value, block.Content[j+1]
		if _, dup := out.nodes[name]; dup {
			return out, fmt.Errorf("line %d: environment %q is declared more than once", block.Content[j].Line, name)
		}
		if !isNull(value) && value.Kind != yaml.MappingNode {
			return out, fmt.Errorf("line %d: environment %q must be a mapping", value.Line, name)
		}
		out.names = append(out.names, name)
		out.nodes[name] = value
	}
	return out, nil
}

// applyOverlay merges overlay into base. Keys replace wholesale except menus,
// which merge per route. A null value removes the key or route.
func applyOverlay(base, overlay *yaml.Node) error {
	if isNull(overlay) {
		return nil
	}
	for j := 0; j+1 < len(overlay.Content); j += 2 {
		key, value := overlay.Content[j], overlay.Content[j+1]
		if key.Value == EnvironmentsKey {
			return fmt.Errorf("line %d: overlays cannot declare %s", key.Line, EnvironmentsKey)
		}
		if key.Value == menusKey && value.Kind == yaml.MappingNode {
			if i := keyIndex(base, menusKey); i >= 0 && base.Content[i+1].Kind == yaml.MappingNode {
				mergeMapping(base.Content[i+1], value)
				continue
			}
			// No base sections to remove, so null routes are dropped.
			fresh := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: value.Line, Column: value.Column}
			mergeMapping(fresh, value)
			setKey(base, key, fresh)
			continue
		}
		setKey(base, key, value)
	}
	return nil
}

func mergeMapping(base, overlay *yaml.Node) {
	for j := 0; j+1 < len(overlay.Content); j += 2 {
		setKey(base, overlay.Content[j], overlay.Content[j+1])
	}
}

// setKey replaces, appends or (for null) removes key in mapping m.
func setKey(m, key, value *yaml.Node) {
	i := keyIndex(m, key.Value)
	switch {
	case isNull(value) && i >= 0:
		m.Content = append(m.Content[:i:i], m.Content[i+2:]...)
	case isNull(value):
	case i >= 0:
		m.Content[i+1] = value
	default:
		m.Content = append(m.Content, key, value)
	}
}

func keyIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}
