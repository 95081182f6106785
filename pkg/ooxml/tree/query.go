package tree

// ColorAttr is the attribute of a Color element holding its value.
const ColorAttr = "val"

// FindRunProperty returns the run property governing id: the first
// RunProperty child of id's parent, else of the grandparent, and so on up
// to the root. Each level's full child list is scanned in document order
// before moving up. NoNode means no formatting applies.
func FindRunProperty(t *Tree, id NodeID) NodeID {
	return FindNearest(t, id, RunProperty)
}

// FindNearest generalizes FindRunProperty to any kind.
func FindNearest(t *Tree, id NodeID, kind Kind) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		if c := firstChild(t, p, kind); c != NoNode {
			return c
		}
	}
	return NoNode
}

func firstChild(t *Tree, id NodeID, kind Kind) NodeID {
	for _, c := range t.nodes[id].children {
		if t.nodes[c].kind == kind {
			return c
		}
	}
	return NoNode
}

// ExtractColor returns the val attribute of the first Color child of a
// RunProperty node. ok is false when prop is not a RunProperty, has no
// Color child, or the Color child has no val.
func ExtractColor(t *Tree, prop NodeID) (string, bool) {
	return ExtractAttr(t, prop, RunProperty, Color, ColorAttr)
}

// ExtractAttr returns attribute attr of the first child of kind child under
// prop, provided prop is of kind want.
func ExtractAttr(t *Tree, prop NodeID, want, child Kind, attr string) (string, bool) {
	if !t.Valid(prop) || t.nodes[prop].kind != want {
		return "", false
	}
	c := firstChild(t, prop, child)
	if c == NoNode {
		return "", false
	}
	return t.Attr(c, attr)
}

// Walk visits every node in document order (parent before children) until
// fn returns false.
func Walk(t *Tree, fn func(id NodeID) bool) {
	if t.Root() == NoNode {
		return
	}
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id) {
			return
		}
		children := t.nodes[id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// TextColor pairs the literal text of a Text node with the color that
// governs it.
type TextColor struct {
	Node     NodeID
	Text     string
	Color    string
	HasColor bool
}

// TextRuns resolves the color of every Text node in document order.
func TextRuns(t *Tree) []TextColor {
	var out []TextColor
	Walk(t, func(id NodeID) bool {
		if t.nodes[id].kind != Text {
			return true
		}
		tc := TextColor{Node: id, Text: t.nodes[id].text}
		tc.Color, tc.HasColor = ExtractColor(t, FindRunProperty(t, id))
		out = append(out, tc)
		return true
	})
	return out
}
