package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/siteconf/internal/site"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct{}

type treeNode struct {
	label    string
	children []treeNode
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	res, err := loadEnv(commandContext("tree", root), g, root, root.Env)
	if err != nil {
		return err
	}
	cfg := res.Config
	_, _ = fmt.Fprintf(g.Stdout, "%s [%s]\n", cfg.Title, cfg.Mode)
	writeTree(g.Stdout, buildTree(cfg))
	return nil
}

func buildTree(cfg *site.Config) []treeNode {
	navs := treeNode{label: "navs", children: nodeTree(cfg.Navs)}
	menus := treeNode{label: "menus"}
	for _, section := range cfg.Menus {
		menus.children = append(menus.children, treeNode{label: section.Route, children: nodeTree(section.Entries)})
	}
	return []treeNode{navs, menus}
}

func nodeTree(nodes []site.Node) []treeNode {
	out := make([]treeNode, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case site.Link:
			out = append(out, linkNode(v))
		case site.Group:
			g := treeNode{label: v.Title}
			for _, c := range v.Children {
				g.children = append(g.children, linkNode(c))
			}
			out = append(out, g)
		}
	}
	return out
}

func linkNode(l site.Link) treeNode {
	return treeNode{label: fmt.Sprintf("%s -> %s", l.Title, l.Path)}
}

func writeTree(w io.Writer, nodes []treeNode) {
	for _, n := range nodes {
		_, _ = fmt.Fprintln(w, n.label)
		writeChildren(w, n.children, "")
	}
}

func writeChildren(w io.Writer, nodes []treeNode, prefix string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		_, _ = fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label)
		writeChildren(w, n.children, prefix+next)
	}
}
