package tree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Dump writes one line per node in document order, indented two spaces per
// level: the kind, the raw name, sorted attributes and, for text nodes, the
// quoted literal text.
func Dump(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	if t.Root() == NoNode {
		fmt.Fprintln(bw, "<empty>")
		return bw.Flush()
	}
	Walk(t, func(id NodeID) bool {
		n := &t.nodes[id]
		bw.WriteString(strings.Repeat("  ", n.depth))
		fmt.Fprintf(bw, "%s(%s)", n.kind, n.name)
		for _, a := range t.Attrs(id) {
			fmt.Fprintf(bw, " %s=%s", a.Name.Local, a.Value)
		}
		if n.hasText {
			fmt.Fprintf(bw, " text=%q", n.text)
		}
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}
