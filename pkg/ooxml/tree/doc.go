// Package tree builds and queries the element tree of a WordprocessingML
// document body.
//
// A Builder consumes open, close and text events one at a time and grows a
// Tree. The Tree is an arena: nodes live in one slice and point at each
// other by NodeID, so there are no ownership cycles between parents and
// children.
//
// Queries walk the finished tree without modifying it:
//
//	b := tree.NewBuilder()
//	// feed b.Open / b.Close / b.Text ...
//	t, err := b.Finish()
//	for _, r := range tree.TextRuns(t) {
//	    fmt.Println(r.Text, r.Color)
//	}
//
// Only a handful of w: elements are classified (document, body, p, r, t,
// pPr, rPr, color). Everything else is kept as Unknown and takes part in the
// tree shape but never matches a query.
package tree
