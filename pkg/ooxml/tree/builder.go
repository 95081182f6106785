package tree

// Builder assembles a Tree from open, close and text events delivered in
// document order. It keeps a cursor on the most recently opened element
// that is still open.
//
// The first structural error poisons the builder: later calls return the
// same error and Finish returns no tree.
type Builder struct {
	tree    *Tree
	cursor  NodeID
	events  int
	dropped int
	err     error
}

// NewBuilder returns a builder positioned before the first event.
func NewBuilder() *Builder {
	return &Builder{tree: NewTree(), cursor: NoNode}
}

// Cursor returns the element currently open, or NoNode.
func (b *Builder) Cursor() NodeID {
	return b.cursor
}

// Depth returns the number of elements currently open.
func (b *Builder) Depth() int {
	if b.cursor == NoNode {
		return 0
	}
	return b.tree.Depth(b.cursor) + 1
}

// Err returns the first structural error seen, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error, name Name) error {
	b.err = &StreamError{Err: err, Event: b.events, Name: name}
	return b.err
}

// Open starts a new element under the cursor and moves the cursor onto it.
func (b *Builder) Open(name Name, attrs []Attr) error {
	if b.err != nil {
		return b.err
	}
	b.events++
	if b.cursor == NoNode && b.tree.root != NoNode {
		return b.fail(ErrUnbalancedStream, name)
	}
	b.cursor = b.tree.add(name, attrs, b.cursor)
	return nil
}

// Close ends the element under the cursor and moves the cursor to its
// parent. A non-empty name must match the element being closed; an empty
// Local closes whatever is open.
func (b *Builder) Close(name Name) error {
	if b.err != nil {
		return b.err
	}
	b.events++
	if b.cursor == NoNode {
		return b.fail(ErrUnbalancedStream, name)
	}
	if name.Local != "" && name != b.tree.Name(b.cursor) {
		return b.fail(ErrUnbalancedStream, name)
	}
	b.cursor = b.tree.Parent(b.cursor)
	return nil
}

// Text stores data as the literal text of the cursor when the cursor is a
// Text element, replacing any earlier value. Character data inside other
// elements is dropped and counted.
func (b *Builder) Text(data string) error {
	if b.err != nil {
		return b.err
	}
	b.events++
	if b.cursor == NoNode {
		return b.fail(ErrTextOutsideElement, Name{})
	}
	if b.tree.Kind(b.cursor) != Text {
		b.dropped++
		return nil
	}
	b.tree.setText(b.cursor, data)
	return nil
}

// Dropped returns how many text events landed on non-Text elements.
func (b *Builder) Dropped() int {
	return b.dropped
}

// Events returns how many events were seen, including a failing one.
func (b *Builder) Events() int {
	return b.events
}

// Finish ends the stream and hands over the tree. An empty stream yields an
// empty tree.
func (b *Builder) Finish() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.cursor != NoNode {
		return nil, b.fail(ErrUnbalancedStream, b.tree.Name(b.cursor))
	}
	return b.tree, nil
}
