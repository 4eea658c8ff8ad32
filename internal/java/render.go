package java

import (
	"strings"
	"sync"
	"sync/atomic"
)

// emitter is any renderable node: it appends its own textual form to the
// writer. Emission during the collect pass records type references; during
// the render pass it produces final text.
type emitter interface {
	emit(w *Writer) error
}

// named nodes can satisfy the $N placeholder.
type named interface {
	Name() string
}

// renderCell memoizes a node's rendered form. Nodes are immutable after
// construction, so the computation runs at most once; the sync.Once guard
// makes concurrent readers observe only the completed result.
type renderCell struct {
	once  sync.Once
	text  string
	count atomic.Uint32
}

// get returns the memoized rendering, computing it on first use.
func (c *renderCell) get(render func() string) string {
	c.once.Do(func() {
		c.count.Add(1)
		c.text = render()
	})
	return c.text
}

// computations reports how many times the render function actually ran.
func (c *renderCell) computations() uint32 {
	return c.count.Load()
}

// renderToString runs a node against a standalone writer with no import
// table and no open package, so every type reference comes out fully
// qualified. This is the canonical form behind String, equality and hash.
func renderToString(cfg Config, e emitter) string {
	var sb strings.Builder
	w := newWriter(cfg, &sb, nil)
	if err := e.emit(w); err != nil {
		// A strings.Builder sink cannot fail and standalone rendering
		// involves no templates; surface the impossible loudly.
		return "<render error: " + err.Error() + ">"
	}
	return sb.String()
}
