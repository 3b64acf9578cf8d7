package site

// NodeKind identifies the variant of a navigation Node.
type NodeKind int

const (
	KindLink NodeKind = iota + 1
	KindGroup
)

func (k NodeKind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is an entry of the top navigation or of a sidebar menu.
// It is implemented only by Link and Group.
type Node interface {
	Kind() NodeKind
	Label() string
	node()
}

// Link is a leaf entry. Path is a site route ("/home") or an absolute URL.
type Link struct {
	Title string
	Path  string
}

func (Link) Kind() NodeKind   { return KindLink }
func (l Link) Label() string  { return l.Title }
func (Link) node()            {}
func (l Link) External() bool { return isExternal(l.Path) }

// Group is a titled dropdown. Children are Links only, which keeps nesting at one level.
type Group struct {
	Title    string
	Children []Link
}

func (Group) Kind() NodeKind  { return KindGroup }
func (g Group) Label() string { return g.Title }
func (Group) node()           {}

// AsLink returns n as a Link when it is one.
func AsLink(n Node) (Link, bool) {
	l, ok := n.(Link)
	return l, ok
}

// AsGroup returns n as a Group when it is one.
func AsGroup(n Node) (Group, bool) {
	g, ok := n.(Group)
	return g, ok
}
