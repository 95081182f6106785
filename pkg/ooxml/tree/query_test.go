package tree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTextRunsEndToEnd(t *testing.T) {
	tr := mustBuild(t,
		open("w:p"),
		open("w:r"),
		open("w:rPr"), open("w:color", "w:val", "112233"), end("w:color"), end("w:rPr"),
		open("w:t"), chars("hello"), end("w:t"),
		end("w:r"),
		end("w:p"),
	)

	want := []TextColor{{Text: "hello", Color: "112233", HasColor: true}}
	if diff := cmp.Diff(want, TextRuns(tr), cmpopts.IgnoreFields(TextColor{}, "Node")); diff != "" {
		t.Errorf("TextRuns() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindRunPropertyNearestWins(t *testing.T) {
	tr := mustBuild(t,
		open("w:p"),
		open("w:pPr"),
		open("w:rPr"), open("w:color", "w:val", "FF0000"), end("w:color"), end("w:rPr"),
		end("w:pPr"),
		open("w:r"),
		open("w:rPr"), open("w:color", "w:val", "00FF00"), end("w:color"), end("w:rPr"),
		open("w:t"), chars("x"), end("w:t"),
		end("w:r"),
		end("w:p"),
	)

	text := findKind(tr, Text, 0)
	prop := FindRunProperty(tr, text)
	if prop != findKind(tr, RunProperty, 1) {
		t.Fatalf("FindRunProperty() = %d, want the run's own rPr", prop)
	}
	if got, ok := ExtractColor(tr, prop); !ok || got != "00FF00" {
		t.Errorf("ExtractColor() = %q, %v; want 00FF00", got, ok)
	}
}

func TestFindRunPropertyAscends(t *testing.T) {
	tests := []struct {
		name      string
		events    []event
		wantColor string
		wantOK    bool
	}{
		{
			name: "inherits from paragraph level sibling",
			events: []event{
				open("w:p"),
				open("w:rPr"), open("w:color", "w:val", "ABCDEF"), end("w:color"), end("w:rPr"),
				open("w:r"), open("w:t"), chars("x"), end("w:t"), end("w:r"),
				end("w:p"),
			},
			wantColor: "ABCDEF",
			wantOK:    true,
		},
		{
			name: "run property declared after the text still counts",
			events: []event{
				open("w:r"),
				open("w:t"), chars("x"), end("w:t"),
				open("w:rPr"), open("w:color", "w:val", "000001"), end("w:color"), end("w:rPr"),
				end("w:r"),
			},
			wantColor: "000001",
			wantOK:    true,
		},
		{
			name: "run property nested in pPr is not a direct child",
			events: []event{
				open("w:p"),
				open("w:pPr"), open("w:rPr"), open("w:color", "w:val", "FF0000"), end("w:color"), end("w:rPr"), end("w:pPr"),
				open("w:r"), open("w:t"), chars("x"), end("w:t"), end("w:r"),
				end("w:p"),
			},
			wantOK: false,
		},
		{
			name: "no run property anywhere",
			events: []event{
				open("w:body"), open("w:p"), open("w:r"), open("w:t"), chars("x"), end("w:t"), end("w:r"), end("w:p"), end("w:body"),
			},
			wantOK: false,
		},
		{
			name: "first run property wins and stops the search",
			events: []event{
				open("w:p"),
				open("w:rPr"), open("w:color", "w:val", "999999"), end("w:color"), end("w:rPr"),
				open("w:r"),
				open("w:rPr"), open("w:b"), end("w:b"), end("w:rPr"),
				open("w:t"), chars("x"), end("w:t"),
				end("w:r"),
				end("w:p"),
			},
			wantOK: false,
		},
		{
			name: "color without val",
			events: []event{
				open("w:r"),
				open("w:rPr"), open("w:color"), end("w:color"), end("w:rPr"),
				open("w:t"), chars("x"), end("w:t"),
				end("w:r"),
			},
			wantOK: false,
		},
		{
			name: "foreign prefix is not formatting",
			events: []event{
				open("w:r"),
				open("x:rPr"), open("w:color", "w:val", "123456"), end("w:color"), end("x:rPr"),
				open("w:t"), chars("x"), end("w:t"),
				end("w:r"),
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := mustBuild(t, tt.events...)
			got, ok := ExtractColor(tr, FindRunProperty(tr, findKind(tr, Text, 0)))
			if ok != tt.wantOK || got != tt.wantColor {
				t.Errorf("color = %q, %v; want %q, %v", got, ok, tt.wantColor, tt.wantOK)
			}
		})
	}
}

func TestUnknownSiblingDoesNotDisturbSearch(t *testing.T) {
	base := concat([]event{open("w:p")}, colorRun("C0FFEE", "x"), []event{end("w:p")})
	withUnknown := concat(
		[]event{open("w:p"), open("w:r")},
		[]event{open("w:proofErr", "w:type", "spellStart"), end("w:proofErr")},
		[]event{open("w:rPr"), open("w:color", "w:val", "C0FFEE"), end("w:color"), end("w:rPr")},
		[]event{open("w14:shadow"), end("w14:shadow")},
		[]event{open("w:t"), chars("x"), end("w:t"), end("w:r"), end("w:p")},
	)

	for name, events := range map[string][]event{"base": base, "with unknown": withUnknown} {
		tr := mustBuild(t, events...)
		runs := TextRuns(tr)
		if len(runs) != 1 || runs[0].Color != "C0FFEE" || !runs[0].HasColor {
			t.Errorf("%s: TextRuns() = %+v", name, runs)
		}
	}
}

func TestExtractColorPreconditions(t *testing.T) {
	tr := mustBuild(t, colorRun("ABCABC", "x")...)

	if _, ok := ExtractColor(tr, NoNode); ok {
		t.Error("ExtractColor(NoNode) reported a color")
	}
	if _, ok := ExtractColor(tr, tr.Root()); ok {
		t.Error("ExtractColor(run) reported a color")
	}
	if _, ok := ExtractColor(tr, NodeID(1000)); ok {
		t.Error("ExtractColor(out of range) reported a color")
	}
	if FindRunProperty(tr, NoNode) != NoNode {
		t.Error("FindRunProperty(NoNode) found something")
	}
	if FindRunProperty(tr, tr.Root()) != NoNode {
		t.Error("FindRunProperty(root) found something")
	}

	prop := findKind(tr, RunProperty, 0)
	first, ok1 := ExtractColor(tr, prop)
	second, ok2 := ExtractColor(tr, prop)
	if first != second || ok1 != ok2 || first != "ABCABC" {
		t.Errorf("ExtractColor not stable: %q/%v then %q/%v", first, ok1, second, ok2)
	}
}

func TestTextRunsDocumentOrder(t *testing.T) {
	tr := mustBuild(t, concat(
		[]event{open("w:body"), open("w:p")},
		colorRun("000001", "one"),
		[]event{open("w:r"), open("w:t"), end("w:t"), end("w:r")},
		[]event{end("w:p"), open("w:p")},
		colorRun("000003", "three"),
		[]event{end("w:p"), end("w:body")},
	)...)

	want := []TextColor{
		{Text: "one", Color: "000001", HasColor: true},
		{Text: ""},
		{Text: "three", Color: "000003", HasColor: true},
	}
	if diff := cmp.Diff(want, TextRuns(tr), cmpopts.IgnoreFields(TextColor{}, "Node")); diff != "" {
		t.Errorf("TextRuns() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindRunPropertyDeepNesting(t *testing.T) {
	const depth = 100000
	b := NewBuilder()
	_ = b.Open(Name{"w", "p"}, nil)
	_ = b.Open(Name{"w", "rPr"}, nil)
	_ = b.Open(Name{"w", "color"}, []Attr{{Name: Name{"w", "val"}, Value: "DEEP00"}})
	_ = b.Close(Name{"w", "color"})
	_ = b.Close(Name{"w", "rPr"})
	for i := 0; i < depth; i++ {
		_ = b.Open(Name{"w", "sdtContent"}, nil)
	}
	_ = b.Open(Name{"w", "t"}, nil)
	_ = b.Text("deep")
	_ = b.Close(Name{"w", "t"})
	for i := 0; i < depth; i++ {
		_ = b.Close(Name{"w", "sdtContent"})
	}
	if err := b.Close(Name{"w", "p"}); err != nil {
		t.Fatal(err)
	}
	tr, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}

	runs := TextRuns(tr)
	if len(runs) != 1 || runs[0].Color != "DEEP00" {
		t.Errorf("TextRuns() = %+v", runs)
	}
	if tr.Depth(runs[0].Node) != depth+1 {
		t.Errorf("text depth = %d", tr.Depth(runs[0].Node))
	}
}

func TestWalkStops(t *testing.T) {
	tr := mustBuild(t, colorRun("000000", "x")...)
	visited := 0
	Walk(tr, func(NodeID) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Errorf("visited %d nodes, want 3", visited)
	}
}

func TestDump(t *testing.T) {
	tr := mustBuild(t, concat([]event{open("w:p", "w:rsidR", "00AB")}, colorRun("112233", "hi"), []event{end("w:p")})...)

	var buf bytes.Buffer
	if err := Dump(&buf, tr); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Paragraph(w:p) rsidR=00AB",
		"  Run(w:r)",
		"    RunProperty(w:rPr)",
		"      Color(w:color) val=112233",
		`    Text(w:t) text="hi"`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Dump() mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := Dump(&buf, NewTree()); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<empty>\n" {
		t.Errorf("Dump(empty) = %q", buf.String())
	}
}
