package xmlindex

import (
	"errors"
	"fmt"
	"strings"
)

// Lookup failure causes. Every failed lookup wraps exactly one of these, so
// callers can tell the causes apart with errors.Is.
var (
	ErrMissingChild     = errors.New("no child with that name")
	ErrListIndex        = errors.New("cannot index a list of elements by name")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrMissingAttribute = errors.New("attribute not present")
	ErrAttributeValue   = errors.New("attribute value mismatch")
)

// Index is the result of a lookup into a parsed document. It has exactly
// four kinds: a single element, a list of elements, a deferred query chain
// that has not run yet, and a failure. Every operation is total over the
// four kinds; ordinary lookup misses never panic.
//
// A deferred index becomes one of the other kinds the first time an
// accessor forces it to resolve. The recorded chain is consumed by that
// resolution; later structural lookups operate on the materialized
// elements, not on the chain.
type Index interface {
	// ByName narrows to the direct children with the given name. On a
	// deferred index it records a step instead of parsing.
	ByName(key string) Index
	// ByIndex narrows a list to a single position. On a deferred index it
	// constrains the most recently recorded step.
	ByIndex(i int) Index
	// ByAttr narrows to the first element whose attribute attr equals
	// value. It forces a deferred index to resolve.
	ByAttr(attr, value string) Index
	// Element returns the backing element of a single result, resolving a
	// deferred index first. It is nil for lists and failures.
	Element() *Element
	// All returns every matched element, resolving a deferred index first.
	All() []Index
	// Children returns the direct children of every matched element, in
	// document order.
	Children() []Index
	// Ok reports whether the index is usable; only failures are not. A
	// deferred index resolves to answer.
	Ok() bool
	// Err returns the failure cause, or nil.
	Err() error
	// String renders the matched elements in canonical form.
	String() string
}

// elementIndex holds a single resolved element.
type elementIndex struct {
	node *Element
}

func (x elementIndex) ByName(key string) Index {
	var matches []*Element
	for _, child := range x.node.Children {
		if child.Name == key {
			matches = append(matches, child)
		}
	}
	switch len(matches) {
	case 0:
		return errorIndex{err: fmt.Errorf("%w: %q in <%s>", ErrMissingChild, key, x.node.Name)}
	case 1:
		return elementIndex{node: matches[0]}
	default:
		return listIndex{nodes: matches}
	}
}

func (x elementIndex) ByIndex(i int) Index {
	if i == 0 {
		return x
	}
	return errorIndex{err: fmt.Errorf("%w: %d on a single <%s>", ErrIndexOutOfRange, i, x.node.Name)}
}

func (x elementIndex) ByAttr(attr, value string) Index {
	got, ok := x.node.Attributes[attr]
	if !ok {
		return errorIndex{err: fmt.Errorf("%w: %q on <%s>", ErrMissingAttribute, attr, x.node.Name)}
	}
	if got != value {
		return errorIndex{err: fmt.Errorf("%w: %s=%q on <%s>, want %q", ErrAttributeValue, attr, got, x.node.Name, value)}
	}
	return x
}

func (x elementIndex) Element() *Element { return x.node }

func (x elementIndex) All() []Index { return []Index{x} }

func (x elementIndex) Children() []Index {
	children := make([]Index, 0, len(x.node.Children))
	for _, child := range x.node.Children {
		children = append(children, elementIndex{node: child})
	}
	return children
}

func (x elementIndex) Ok() bool   { return true }
func (x elementIndex) Err() error { return nil }

func (x elementIndex) String() string {
	if x.node.Name == documentName {
		lines := make([]string, 0, len(x.node.Children))
		for _, child := range x.node.Children {
			lines = append(lines, child.String())
		}
		return strings.Join(lines, "\n")
	}
	return x.node.String()
}

// listIndex holds several elements that matched the same name.
type listIndex struct {
	nodes []*Element
}

func (x listIndex) ByName(key string) Index {
	return errorIndex{err: fmt.Errorf("%w: %q over %d elements", ErrListIndex, key, len(x.nodes))}
}

func (x listIndex) ByIndex(i int) Index {
	if i < 0 || i >= len(x.nodes) {
		return errorIndex{err: fmt.Errorf("%w: %d with %d elements", ErrIndexOutOfRange, i, len(x.nodes))}
	}
	return elementIndex{node: x.nodes[i]}
}

func (x listIndex) ByAttr(attr, value string) Index {
	seen := false
	for _, node := range x.nodes {
		got, ok := node.Attributes[attr]
		if !ok {
			continue
		}
		if got == value {
			return elementIndex{node: node}
		}
		seen = true
	}
	if seen {
		return errorIndex{err: fmt.Errorf("%w: no element with %s=%q", ErrAttributeValue, attr, value)}
	}
	return errorIndex{err: fmt.Errorf("%w: %q on any of %d elements", ErrMissingAttribute, attr, len(x.nodes))}
}

func (x listIndex) Element() *Element { return nil }

func (x listIndex) All() []Index {
	all := make([]Index, len(x.nodes))
	for i, node := range x.nodes {
		all[i] = elementIndex{node: node}
	}
	return all
}

func (x listIndex) Children() []Index {
	var children []Index
	for _, node := range x.nodes {
		for _, child := range node.Children {
			children = append(children, elementIndex{node: child})
		}
	}
	return children
}

func (x listIndex) Ok() bool   { return true }
func (x listIndex) Err() error { return nil }

func (x listIndex) String() string {
	lines := make([]string, len(x.nodes))
	for i, node := range x.nodes {
		lines[i] = node.String()
	}
	return strings.Join(lines, "\n")
}

// streamIndex defers parsing: lookups by name and position accumulate on a
// query chain, and the first accessor that needs elements triggers a single
// streaming pass over the source.
type streamIndex struct {
	chain *queryChain
}

func (x streamIndex) ByName(key string) Index {
	x.chain.addStep(key)
	return x
}

func (x streamIndex) ByIndex(i int) Index {
	if err := x.chain.setIndex(i); err != nil {
		return errorIndex{err: err}
	}
	return x
}

func (x streamIndex) ByAttr(attr, value string) Index {
	return x.chain.resolve().ByAttr(attr, value)
}

func (x streamIndex) Element() *Element { return x.chain.resolve().Element() }

func (x streamIndex) All() []Index { return x.chain.resolve().All() }

func (x streamIndex) Children() []Index { return x.chain.resolve().Children() }

func (x streamIndex) Ok() bool { return x.chain.resolve().Ok() }

func (x streamIndex) Err() error { return x.chain.resolve().Err() }

func (x streamIndex) String() string { return x.chain.resolve().String() }

// errorIndex is absorbing: every structural operation returns it unchanged.
type errorIndex struct {
	err error
}

func (x errorIndex) ByName(string) Index { return x }

func (x errorIndex) ByIndex(int) Index { return x }

func (x errorIndex) ByAttr(string, string) Index { return x }

func (x errorIndex) Element() *Element { return nil }

func (x errorIndex) All() []Index { return nil }

func (x errorIndex) Children() []Index { return nil }

func (x errorIndex) Ok() bool { return false }

func (x errorIndex) Err() error { return x.err }

func (x errorIndex) String() string { return "" }
