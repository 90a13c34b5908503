package xmlindex

import (
	"sort"
	"strings"
)

// documentName is the name of the synthetic root element that anchors every
// parsed tree. It never shows up in query results except as the starting
// point for child lookups.
const documentName = "#document"

// Element is a single node of a parsed XML document: tag name, optional
// character data, attributes, and children in document order.
type Element struct {
	Name       string
	Attributes map[string]string
	Children   []*Element

	// Index is the element's position among its parent's children at the
	// time it was added. It never changes afterwards.
	Index int

	text    string
	hasText bool
}

func newDocument() *Element {
	return &Element{Name: documentName, Attributes: map[string]string{}}
}

// AddChild appends a new child element and returns it. The returned element
// may still be mutated (text appended, grandchildren added) until its end
// tag is seen; the tree itself is append-only.
func (e *Element) AddChild(name string, attrs map[string]string) *Element {
	if attrs == nil {
		attrs = map[string]string{}
	}
	child := &Element{
		Name:       name,
		Attributes: attrs,
		Index:      len(e.Children),
	}
	e.Children = append(e.Children, child)
	return child
}

// AddText appends character data to the element. An element that never
// receives character data stays distinguishable from one whose text is the
// empty string.
func (e *Element) AddText(s string) {
	e.text += s
	e.hasText = true
}

// Text returns the accumulated character data and whether any was recorded.
func (e *Element) Text() (string, bool) {
	return e.text, e.hasText
}

// String renders the element as canonical nested XML: elements with
// children as an open tag, one line per child, and a close tag; text-only
// elements as a single inline tag; empty elements self-closing. Attributes
// render in sorted key order so the output is deterministic.
func (e *Element) String() string {
	return strings.Join(e.lines(), "\n")
}

func (e *Element) lines() []string {
	attrs := e.attributeString()
	if len(e.Children) > 0 {
		out := []string{"<" + e.Name + attrs + ">"}
		for _, child := range e.Children {
			out = append(out, child.lines()...)
		}
		return append(out, "</"+e.Name+">")
	}
	if e.hasText {
		return []string{"<" + e.Name + attrs + ">" + e.text + "</" + e.Name + ">"}
	}
	return []string{"<" + e.Name + attrs + "/>"}
}

func (e *Element) attributeString() string {
	if len(e.Attributes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=\"")
		sb.WriteString(e.Attributes[k])
		sb.WriteString("\"")
	}
	return sb.String()
}
