package ooxml

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benjaminschreck/go-ooxml/pkg/ooxml/tree"
)

// EventHandler consumes markup events in document order. *tree.Builder
// implements it.
type EventHandler interface {
	Open(name tree.Name, attrs []tree.Attr) error
	Close(name tree.Name) error
	Text(data string) error
}

var _ EventHandler = (*tree.Builder)(nil)

// Decode tokenizes r and feeds every element and character data event to h.
//
// Names keep the prefix the document wrote them with, except that elements
// and attributes in the WordprocessingML namespace (transitional or strict)
// are always reported as w:, whatever prefix the document bound it to.
// Namespace declarations are not passed on as attributes. Whitespace
// between top-level tokens (for example after the XML declaration) is
// skipped; all other character data is forwarded.
func Decode(ctx context.Context, r io.Reader, h EventHandler) error {
	decoder := xml.NewDecoder(r)
	var open namespaceStack

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		token, err := decoder.RawToken()
		if err == io.EOF {
			if name, ok := open.top(); ok {
				return &ParseError{
					Message: fmt.Sprintf("element <%s> not closed", rawName(name)),
					Offset:  decoder.InputOffset(),
					Cause:   io.ErrUnexpectedEOF,
				}
			}
			return nil
		}
		if err != nil {
			return &ParseError{Message: "malformed XML", Offset: decoder.InputOffset(), Cause: err}
		}

		switch t := token.(type) {
		case xml.StartElement:
			open.push(t.Name, t.Attr)
			err = h.Open(open.qualify(t.Name, false), open.attrs(t.Attr))
		case xml.EndElement:
			name, ok := open.top()
			if !ok {
				return &ParseError{Message: fmt.Sprintf("unexpected end element </%s>", rawName(t.Name)), Offset: decoder.InputOffset()}
			}
			if name != t.Name {
				return &ParseError{
					Message: fmt.Sprintf("element <%s> closed by </%s>", rawName(name), rawName(t.Name)),
					Offset:  decoder.InputOffset(),
				}
			}
			qualified := open.qualify(t.Name, false)
			open.pop()
			err = h.Close(qualified)
		case xml.CharData:
			if len(open) == 0 && isBlank(t) {
				continue
			}
			err = h.Text(string(t))
		}
		// Comments, processing instructions and directives carry nothing
		// the tree needs.

		if err != nil {
			return WithContext(err, "decode", map[string]interface{}{"offset": decoder.InputOffset()})
		}
	}
}

func isBlank(b []byte) bool {
	return len(strings.TrimSpace(string(b))) == 0
}

// ErrMaxDepth is wrapped by the ParseError returned when elements nest
// deeper than the configured limit.
var ErrMaxDepth = errors.New("maximum element depth exceeded")

// depthLimit rejects documents nesting more than max elements.
type depthLimit struct {
	EventHandler
	max   int
	depth int
}

func limitDepth(h EventHandler, max int) EventHandler {
	if max <= 0 {
		return h
	}
	return &depthLimit{EventHandler: h, max: max}
}

func (d *depthLimit) Open(name tree.Name, attrs []tree.Attr) error {
	d.depth++
	if d.depth > d.max {
		return &ParseError{Message: fmt.Sprintf("<%s> nested %d deep, limit %d", name, d.depth, d.max), Cause: ErrMaxDepth}
	}
	return d.EventHandler.Open(name, attrs)
}

func (d *depthLimit) Close(name tree.Name) error {
	d.depth--
	return d.EventHandler.Close(name)
}

// EventTrace forwards events to another handler and writes one line per
// event: "+name" on open and "-name" on close, indented by depth, and
// Characters("...") for text.
type EventTrace struct {
	Next  EventHandler
	W     io.Writer
	depth int
}

func (e *EventTrace) Open(name tree.Name, attrs []tree.Attr) error {
	fmt.Fprintf(e.W, "%s+%s\n", strings.Repeat(" ", e.depth), name)
	e.depth++
	return e.Next.Open(name, attrs)
}

func (e *EventTrace) Close(name tree.Name) error {
	if e.depth > 0 {
		e.depth--
	}
	fmt.Fprintf(e.W, "%s-%s\n", strings.Repeat(" ", e.depth), name)
	return e.Next.Close(name)
}

func (e *EventTrace) Text(data string) error {
	fmt.Fprintf(e.W, "%sCharacters(%q)\n", strings.Repeat(" ", e.depth), data)
	return e.Next.Text(data)
}
