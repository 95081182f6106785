package tree

import "sort"

// NodeID addresses a node inside a Tree.
type NodeID int

// NoNode stands for "no node": the parent of the root, or an absent result.
const NoNode NodeID = -1

// Attr is one attribute as it appears on an open event.
type Attr struct {
	Name  Name
	Value string
}

type node struct {
	kind     Kind
	name     Name
	attrs    map[string]string
	text     string
	hasText  bool
	children []NodeID
	parent   NodeID
	depth    int
}

// Tree owns every node of one parsed document. Nodes refer to each other
// by NodeID only, so dropping the Tree releases the whole document.
type Tree struct {
	nodes []node
	root  NodeID
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{root: NoNode}
}

// Root returns the root node, or NoNode for an empty document.
func (t *Tree) Root() NodeID {
	if t == nil {
		return NoNode
	}
	return t.root
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Valid reports whether id addresses a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return t != nil && id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree) get(id NodeID) *node {
	if !t.Valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Kind returns the kind of id, Unknown when id is not a node.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.get(id); n != nil {
		return n.kind
	}
	return Unknown
}

// Name returns the qualified name the node was opened with.
func (t *Tree) Name(id NodeID) Name {
	if n := t.get(id); n != nil {
		return n.name
	}
	return Name{}
}

// Attr returns the value of the attribute with the given local name.
func (t *Tree) Attr(id NodeID, local string) (string, bool) {
	n := t.get(id)
	if n == nil {
		return "", false
	}
	v, ok := n.attrs[local]
	return v, ok
}

// Attrs returns the attributes of id sorted by name.
func (t *Tree) Attrs(id NodeID) []Attr {
	n := t.get(id)
	if n == nil || len(n.attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(n.attrs))
	for k, v := range n.attrs {
		out = append(out, Attr{Name: Name{Local: k}, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.Local < out[j].Name.Local })
	return out
}

// Text returns the literal text of a Text node. ok is false when no text
// was ever set.
func (t *Tree) Text(id NodeID) (string, bool) {
	n := t.get(id)
	if n == nil {
		return "", false
	}
	return n.text, n.hasText
}

// Parent returns the parent of id, NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns a copy of the children of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.get(id)
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// Depth returns the nesting level of id; the root is at depth 0.
func (t *Tree) Depth(id NodeID) int {
	if n := t.get(id); n != nil {
		return n.depth
	}
	return -1
}

// NodeView is a read-only snapshot of one node.
type NodeView struct {
	ID       NodeID
	Kind     Kind
	Name     Name
	Attrs    map[string]string
	Text     string
	HasText  bool
	Parent   NodeID
	Children []NodeID
	Depth    int
}

// Node returns a snapshot of id. The zero NodeView (ID NoNode) is returned
// for an invalid id.
func (t *Tree) Node(id NodeID) NodeView {
	n := t.get(id)
	if n == nil {
		return NodeView{ID: NoNode, Parent: NoNode}
	}
	v := NodeView{
		ID:       id,
		Kind:     n.kind,
		Name:     n.name,
		Text:     n.text,
		HasText:  n.hasText,
		Parent:   n.parent,
		Children: t.Children(id),
		Depth:    n.depth,
	}
	if len(n.attrs) > 0 {
		v.Attrs = make(map[string]string, len(n.attrs))
		for k, val := range n.attrs {
			v.Attrs[k] = val
		}
	}
	return v
}

// add appends a new node under parent and returns its id. A NoNode parent
// makes the node the root.
func (t *Tree) add(name Name, attrs []Attr, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	n := node{
		kind:   Classify(name),
		name:   name,
		parent: parent,
	}
	if len(attrs) > 0 {
		n.attrs = make(map[string]string, len(attrs))
		for _, a := range attrs {
			n.attrs[a.Name.Local] = a.Value
		}
	}
	if p := t.get(parent); p != nil {
		n.depth = p.depth + 1
		p.children = append(p.children, id)
	} else {
		t.root = id
	}
	t.nodes = append(t.nodes, n)
	return id
}

func (t *Tree) setText(id NodeID, data string) {
	n := t.get(id)
	n.text = data
	n.hasText = true
}
