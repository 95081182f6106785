package tree

import (
	"strings"
	"testing"
)

type event struct {
	op    byte // 'o', 'c', 't'
	name  Name
	attrs []Attr
	text  string
}

func qname(s string) Name {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return Name{Prefix: s[:i], Local: s[i+1:]}
	}
	return Name{Local: s}
}

// open builds an open event; kv holds attribute name/value pairs.
func open(name string, kv ...string) event {
	e := event{op: 'o', name: qname(name)}
	for i := 0; i+1 < len(kv); i += 2 {
		e.attrs = append(e.attrs, Attr{Name: qname(kv[i]), Value: kv[i+1]})
	}
	return e
}

func end(name string) event { return event{op: 'c', name: qname(name)} }

func chars(s string) event { return event{op: 't', text: s} }

func feed(b *Builder, events ...event) error {
	for _, e := range events {
		var err error
		switch e.op {
		case 'o':
			err = b.Open(e.name, e.attrs)
		case 'c':
			err = b.Close(e.name)
		case 't':
			err = b.Text(e.text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func mustBuild(t *testing.T, events ...event) *Tree {
	t.Helper()
	b := NewBuilder()
	if err := feed(b, events...); err != nil {
		t.Fatalf("feed: %v", err)
	}
	tr, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return tr
}

// findKind returns the n-th (0-based) node of kind k in document order.
func findKind(tr *Tree, k Kind, n int) NodeID {
	found := NoNode
	Walk(tr, func(id NodeID) bool {
		if tr.Kind(id) == k {
			if n == 0 {
				found = id
				return false
			}
			n--
		}
		return true
	})
	return found
}

// colorRun is the common w:r > w:rPr > w:color(val) > w:t(text) fixture.
func colorRun(val, text string) []event {
	return []event{
		open("w:r"),
		open("w:rPr"), open("w:color", "w:val", val), end("w:color"), end("w:rPr"),
		open("w:t"), chars(text), end("w:t"),
		end("w:r"),
	}
}

func concat(parts ...[]event) []event {
	var out []event
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
