package tape

import (
	"context"

	"github.com/go-logr/logr"
)

// DefaultLogNodeLimit caps how many nodes LogNodes emits when no
// explicit limit is given.
const DefaultLogNodeLimit = 100

// LogNodes writes a diagnostic dump of the tape to the given logging
// sink, at most limit nodes (default DefaultLogNodeLimit). The context
// is checked once per node; on cancellation the dump stops early and
// says so. Purely observational: the tape is not touched.
func (t *GradientTape[T]) LogNodes(ctx context.Context, logger logr.Logger, limit ...int) {
	max := DefaultLogNodeLimit
	if len(limit) > 0 {
		max = limit[0]
	}
	if max > len(t.nodes) {
		max = len(t.nodes)
	}
	for i := 0; i < max; i++ {
		if ctx.Err() != nil {
			logger.Info("node dump cancelled", "logged", i, "total", len(t.nodes))
			return
		}
		n := &t.nodes[i]
		switch n.arity {
		case leafNode:
			logger.Info("node", "index", i, "kind", "leaf")
		case unaryNode:
			logger.Info("node", "index", i, "kind", "unary",
				"parent", n.p1, "weight", n.d1.String())
		case binaryNode:
			logger.Info("node", "index", i, "kind", "binary",
				"parents", []int32{n.p1, n.p2},
				"weights", []string{n.d1.String(), n.d2.String()})
		}
	}
}

// LogNodes is the HessianTape counterpart of GradientTape.LogNodes; it
// additionally reports the second-order weights.
func (h *HessianTape[T]) LogNodes(ctx context.Context, logger logr.Logger, limit ...int) {
	max := DefaultLogNodeLimit
	if len(limit) > 0 {
		max = limit[0]
	}
	if max > len(h.nodes) {
		max = len(h.nodes)
	}
	for i := 0; i < max; i++ {
		if ctx.Err() != nil {
			logger.Info("node dump cancelled", "logged", i, "total", len(h.nodes))
			return
		}
		n := &h.nodes[i]
		switch n.arity {
		case leafNode:
			logger.Info("node", "index", i, "kind", "leaf")
		case unaryNode:
			logger.Info("node", "index", i, "kind", "unary",
				"parent", n.p1,
				"weight", n.d1.String(),
				"weight2", n.d11.String())
		case binaryNode:
			logger.Info("node", "index", i, "kind", "binary",
				"parents", []int32{n.p1, n.p2},
				"weights", []string{n.d1.String(), n.d2.String()},
				"weights2", []string{n.d11.String(), n.d12.String(), n.d22.String()})
		}
	}
}
