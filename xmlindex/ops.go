package xmlindex

import (
	"fmt"
	"strconv"
)

// queryStep is one element of a recorded query path: a child name plus an
// optional position among same-named siblings.
type queryStep struct {
	key   string
	index int // -1 when the step matches by name alone
}

func (s queryStep) String() string {
	if s.index >= 0 {
		return s.key + "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// queryChain records the steps of a deferred lookup together with the lazy
// parser that will eventually satisfy them. Steps can only be appended, and
// only the most recent step can receive an index.
type queryChain struct {
	steps  []queryStep
	parser *lazyParser
	result Index // cached resolution; cleared when a new step arrives
}

func (c *queryChain) addStep(key string) {
	c.steps = append(c.steps, queryStep{key: key, index: -1})
	c.result = nil
}

// setIndex constrains the most recently added step to one position. The
// index, once set, never changes: a step that is already constrained has
// narrowed to a single element, so only position 0 of it remains valid,
// matching what indexing a single resolved element does.
func (c *queryChain) setIndex(i int) error {
	if len(c.steps) == 0 {
		return fmt.Errorf("%w: %d before any name lookup", ErrIndexOutOfRange, i)
	}
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	last := &c.steps[len(c.steps)-1]
	if last.index >= 0 {
		if i != 0 {
			return fmt.Errorf("%w: %d on the single %s", ErrIndexOutOfRange, i, *last)
		}
		return nil
	}
	last.index = i
	return nil
}

// resolve runs the lazy parser over its source and walks the recorded steps
// against the materialized tree. The chain is consumed: once resolve
// returns, the steps are cleared and the returned index stands on its own.
// The result is kept so further accessors on the same handle see the same
// answer instead of re-resolving an empty chain.
func (c *queryChain) resolve() Index {
	if c.result != nil {
		return c.result
	}

	steps := c.steps
	c.steps = nil

	keys := make([]string, len(steps))
	for i, s := range steps {
		keys[i] = s.key
	}

	root, err := c.parser.run(keys)
	if err != nil {
		return errorIndex{err: err}
	}

	var result Index = elementIndex{node: root}
	for _, step := range steps {
		result = result.ByName(step.key)
		if step.index >= 0 {
			result = result.ByIndex(step.index)
		}
	}
	c.result = result
	return result
}
