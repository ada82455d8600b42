package testfixtures

import (
	"fmt"
	"sync/atomic"
)

// IDGenerator hands out sequential identifiers so tests can predict the IDs
// their services will assign.
type IDGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewIDGenerator constructs a generator whose identifiers carry the given
// prefix. An empty prefix falls back to "id".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.counter.Add(1))
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// SetCounter overrides the sequence position; the next identifier will use
// counter+1.
func (g *IDGenerator) SetCounter(counter uint64) {
	g.counter.Store(counter)
}
