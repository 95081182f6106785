package ooxml

import (
	"encoding/xml"

	"github.com/benjaminschreck/go-ooxml/pkg/ooxml/tree"
)

const (
	// WordprocessingMLNamespace is the main namespace of document.xml.
	WordprocessingMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// WordprocessingMLStrictNamespace is its Strict Open XML counterpart.
	WordprocessingMLStrictNamespace = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

// wordNamespaces are reported under tree.WordPrefix whatever prefix the
// document bound them to.
var wordNamespaces = map[string]bool{
	WordprocessingMLNamespace:       true,
	WordprocessingMLStrictNamespace: true,
}

const xmlnsPrefix = "xmlns"

// nsScope is one open element: its name as written, for matching the end
// tag, and the prefixes it declares ("" for the default namespace).
type nsScope struct {
	name     xml.Name
	bindings map[string]string
}

// namespaceStack holds the open elements, innermost last.
type namespaceStack []nsScope

func (s *namespaceStack) push(name xml.Name, attrs []xml.Attr) {
	var bindings map[string]string
	for _, a := range attrs {
		prefix, ok := declaredPrefix(a.Name)
		if !ok {
			continue
		}
		if bindings == nil {
			bindings = make(map[string]string)
		}
		bindings[prefix] = a.Value
	}
	*s = append(*s, nsScope{name: name, bindings: bindings})
}

func (s *namespaceStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s namespaceStack) top() (xml.Name, bool) {
	if len(s) == 0 {
		return xml.Name{}, false
	}
	return s[len(s)-1].name, true
}

// lookup returns the namespace bound to prefix, or "" when it is undeclared.
func (s namespaceStack) lookup(prefix string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if uri, ok := s[i].bindings[prefix]; ok {
			return uri
		}
	}
	return ""
}

// qualify keeps the prefix n was written with, except that names in a
// WordprocessingML namespace are reported under w. Unprefixed attributes
// are in no namespace.
func (s namespaceStack) qualify(n xml.Name, attr bool) tree.Name {
	if attr && n.Space == "" {
		return tree.Name{Local: n.Local}
	}
	if wordNamespaces[s.lookup(n.Space)] {
		return tree.Name{Prefix: tree.WordPrefix, Local: n.Local}
	}
	return tree.Name{Prefix: n.Space, Local: n.Local}
}

// attrs converts attributes, dropping namespace declarations.
func (s namespaceStack) attrs(attrs []xml.Attr) []tree.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]tree.Attr, 0, len(attrs))
	for _, a := range attrs {
		if _, ok := declaredPrefix(a.Name); ok {
			continue
		}
		out = append(out, tree.Attr{Name: s.qualify(a.Name, true), Value: a.Value})
	}
	return out
}

func declaredPrefix(n xml.Name) (string, bool) {
	switch {
	case n.Space == xmlnsPrefix:
		return n.Local, true
	case n.Space == "" && n.Local == xmlnsPrefix:
		return "", true
	}
	return "", false
}

func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
