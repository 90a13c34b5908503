package xmlindex

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Parse consumes the whole stream and builds the complete element tree. The
// returned index wraps the synthetic document root. Malformed input fails
// the call as a whole; no partial tree is returned.
func Parse(r io.Reader) (Index, error) {
	root := newDocument()
	stack := []*Element{root}

	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := stack[len(stack)-1].AddChild(t.Name.Local, attrMap(t.Attr))
			stack = append(stack, child)
		case xml.CharData:
			// Character data belongs to the innermost open element,
			// whatever that is when the data arrives.
			stack[len(stack)-1].AddText(string(t))
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	return elementIndex{node: root}, nil
}

// Lazy returns a deferred index over source. Nothing is parsed until an
// accessor forces the recorded query chain to resolve; each resolution
// re-reads source from the beginning and materializes only the elements
// along the recorded path.
func Lazy(source []byte) Index {
	return streamIndex{chain: &queryChain{parser: &lazyParser{source: source}}}
}

// lazyParser re-parses its source once per resolved chain. It keeps two
// stacks: the materialized open elements, and the names of every open
// element whether materialized or not. A single instance may serve repeated
// resolutions of the same source, but not concurrently.
type lazyParser struct {
	source []byte
	root   *Element
	nodes  []*Element
	names  []string
}

// run parses the source against the given key path and returns the document
// root holding whatever was materialized. State left over from earlier runs
// is discarded first.
func (p *lazyParser) run(keys []string) (*Element, error) {
	p.root = newDocument()
	p.nodes = append(p.nodes[:0], p.root)
	p.names = p.names[:0]

	d := xml.NewDecoder(bytes.NewReader(p.source))
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			p.names = append(p.names, t.Name.Local)
			if !p.onPath(keys) {
				continue
			}
			child := p.nodes[len(p.nodes)-1].AddChild(t.Name.Local, attrMap(t.Attr))
			p.nodes = append(p.nodes, child)
		case xml.CharData:
			if p.onPath(keys) {
				p.nodes[len(p.nodes)-1].AddText(string(t))
			}
		case xml.EndElement:
			// Whether this element was materialized is decided by the
			// same predicate that admitted it, evaluated before the pop.
			matched := p.onPath(keys)
			p.names = p.names[:len(p.names)-1]
			if matched {
				p.nodes = p.nodes[:len(p.nodes)-1]
			}
		}
	}
	return p.root, nil
}

// onPath reports whether the current nesting is compatible with the key
// path: a nesting deeper than the path must start with the whole path, a
// nesting of equal or lesser depth must itself be a prefix of the path.
func (p *lazyParser) onPath(keys []string) bool {
	if len(p.names) > len(keys) {
		return hasPrefix(p.names, keys)
	}
	return hasPrefix(keys, p.names)
}

func hasPrefix(seq, prefix []string) bool {
	for i, k := range prefix {
		if seq[i] != k {
			return false
		}
	}
	return true
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}
