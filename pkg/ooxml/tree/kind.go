package tree

// WordPrefix is the namespace prefix of the recognized WordprocessingML vocabulary.
const WordPrefix = "w"

// Kind is the semantic category of an element.
type Kind int

const (
	Unknown Kind = iota
	Document
	Body
	Paragraph
	Run
	Text
	ParagraphProperty
	RunProperty
	Color
)

// String returns the kind's name, "Unknown" for anything unrecognized.
func (k Kind) String() string {
	switch k {
	case Document:
		return "Document"
	case Body:
		return "Body"
	case Paragraph:
		return "Paragraph"
	case Run:
		return "Run"
	case Text:
		return "Text"
	case ParagraphProperty:
		return "ParagraphProperty"
	case RunProperty:
		return "RunProperty"
	case Color:
		return "Color"
	default:
		return "Unknown"
	}
}

// Name is a qualified element or attribute name. Prefix is empty when the
// name carries no namespace prefix.
type Name struct {
	Prefix string
	Local  string
}

// String returns prefix:local, or just local when there is no prefix.
func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// InRecognizedNamespace reports whether n uses the WordprocessingML prefix,
// regardless of whether its local name is in the recognized table.
func (n Name) InRecognizedNamespace() bool {
	return n.Prefix == WordPrefix
}

var wordKinds = map[string]Kind{
	"document": Document,
	"body":     Body,
	"p":        Paragraph,
	"r":        Run,
	"t":        Text,
	"pPr":      ParagraphProperty,
	"rPr":      RunProperty,
	"color":    Color,
}

// Classify maps a qualified name to its Kind. It never fails: anything
// outside the w: vocabulary is Unknown.
func Classify(n Name) Kind {
	if !n.InRecognizedNamespace() {
		return Unknown
	}
	if k, ok := wordKinds[n.Local]; ok {
		return k
	}
	return Unknown
}
