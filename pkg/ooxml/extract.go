package ooxml

import (
	"context"
	"io"
	"time"

	"github.com/benjaminschreck/go-ooxml/pkg/ooxml/tree"
)

// Option adjusts a single extraction.
type Option func(*options)

type options struct {
	part     string
	maxDepth int
	logger   *Logger
	trace    io.Writer
}

// WithPart selects the archive member to parse instead of the main document.
func WithPart(name string) Option {
	return func(o *options) { o.part = name }
}

// WithMaxDepth bounds element nesting; 0 disables the limit.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithLogger replaces the global logger for this extraction.
func WithLogger(l *Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTrace writes every markup event to w as it is consumed.
func WithTrace(w io.Writer) Option {
	return func(o *options) { o.trace = w }
}

func newOptions(opts []Option) options {
	config := GetGlobalConfig()
	o := options{
		part:     config.DocumentPart,
		maxDepth: config.MaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = GetLogger()
	}
	return o
}

// Result is the outcome of one extraction.
type Result struct {
	// Source is the file the document came from, if any.
	Source string
	// Part is the archive member that was parsed, if any.
	Part string
	Tree *tree.Tree
	Runs []tree.TextColor
}

// ParseTree builds the element tree of the markup in r.
func ParseTree(ctx context.Context, r io.Reader, opts ...Option) (*tree.Tree, error) {
	return parseTree(ctx, r, "", newOptions(opts))
}

func parseTree(ctx context.Context, r io.Reader, part string, o options) (*tree.Tree, error) {
	start := time.Now()
	ctx, span := startParseSpan(ctx, part)

	b := tree.NewBuilder()
	var h EventHandler = b
	if o.trace != nil {
		h = &EventTrace{Next: h, W: o.trace}
	}
	h = limitDepth(h, o.maxDepth)

	err := Decode(ctx, r, h)
	var t *tree.Tree
	if err == nil {
		t, err = b.Finish()
	}
	if n := b.Dropped(); n > 0 {
		o.logger.Debug("ignored character data outside text elements", "part", part, "count", n)
	}

	recordParseMetrics(ctx, part, time.Since(start), t.Len(), err)
	endParseSpan(span, t.Len(), err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Extract parses the markup in r and resolves the color of every text node.
func Extract(ctx context.Context, r io.Reader, opts ...Option) (*Result, error) {
	return extract(ctx, r, "", newOptions(opts))
}

func extract(ctx context.Context, r io.Reader, part string, o options) (*Result, error) {
	t, err := parseTree(ctx, r, part, o)
	if err != nil {
		return nil, err
	}
	res := &Result{Part: part, Tree: t, Runs: tree.TextRuns(t)}
	o.logger.Debug("extracted text", "part", part, "nodes", t.Len(), "texts", len(res.Runs))
	return res, nil
}

// ExtractDocx extracts the main document (or the part chosen with WithPart)
// of an opened archive.
func ExtractDocx(ctx context.Context, dr *DocxReader, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	part := o.part
	if part == "" {
		var err error
		if part, err = dr.MainDocumentPart(); err != nil {
			return nil, err
		}
	}
	o.logger.Debug("parsing document part", "part", part, "members", len(dr.Parts))

	rc, err := dr.OpenPart(part)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	res, err := extract(ctx, rc, part, o)
	if err != nil {
		return nil, NewDocumentError("parse", part, err)
	}
	return res, nil
}

// ExtractFile opens a .docx file and extracts its main document.
func ExtractFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	dr, err := DocxReaderFromFile(path)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	res, err := ExtractDocx(ctx, dr, opts...)
	if err != nil {
		return nil, WithContext(err, "extract", map[string]interface{}{"file": path})
	}
	res.Source = path
	return res, nil
}
