package tape

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/scalargrad/internal/scalar"
)

// HessianTape is a GradientTape that additionally stores second-order
// local partials on every node, supporting reverse accumulation of
// both gradients and Hessians. The zero value is not usable; call
// NewHessianTape.
type HessianTape[T scalar.Scalar[T]] struct {
	nodes         []hnode[T]
	variableCount int
}

// NewHessianTape creates an empty Hessian tape.
func NewHessianTape[T scalar.Scalar[T]]() *HessianTape[T] {
	return &HessianTape[T]{
		nodes: make([]hnode[T], 0, 64),
	}
}

// CreateVariable appends a root node and returns its handle.
func (h *HessianTape[T]) CreateVariable(value T) Variable[T] {
	index := len(h.nodes)
	h.nodes = append(h.nodes, hnode[T]{arity: leafNode})
	h.variableCount++
	return Variable[T]{Index: index, Value: value}
}

// VariableCount returns the number of root variables created so far.
func (h *HessianTape[T]) VariableCount() int { return h.variableCount }

// NodeCount returns the total number of recorded nodes.
func (h *HessianTape[T]) NodeCount() int { return len(h.nodes) }

// CreateCheckpoint wraps an already-recorded variable for later use as
// a reverse-accumulation seed. Nothing is recorded on the tape.
func (h *HessianTape[T]) CreateCheckpoint(v Variable[T]) Checkpoint[T] {
	return Checkpoint[T]{Index: v.Index, Value: v.Value}
}

func (h *HessianTape[T]) appendUnary(value T, p int, d1, d11 T) Variable[T] {
	index := len(h.nodes)
	h.nodes = append(h.nodes, hnode[T]{arity: unaryNode, p1: int32(p), d1: d1, d11: d11})
	return Variable[T]{Index: index, Value: value}
}

func (h *HessianTape[T]) appendBinary(value T, p, q int, d1, d2, d11, d12, d22 T) Variable[T] {
	index := len(h.nodes)
	h.nodes = append(h.nodes, hnode[T]{
		arity: binaryNode,
		p1:    int32(p), p2: int32(q),
		d1: d1, d2: d2,
		d11: d11, d12: d12, d22: d22,
	})
	return Variable[T]{Index: index, Value: value}
}

// ReverseAccumulate runs the extended reverse sweep seeded at the last
// recorded node and returns the gradient and the (symmetric) Hessian
// over the root variables.
func (h *HessianTape[T]) ReverseAccumulate() ([]T, [][]T) {
	return h.ReverseAccumulateAt(len(h.nodes) - 1)
}

// ReverseAccumulateGradient runs a first-order-only sweep seeded at
// the last recorded node. Cheaper than ReverseAccumulate when the
// Hessian is not needed.
func (h *HessianTape[T]) ReverseAccumulateGradient() []T {
	return h.ReverseAccumulateGradientAt(len(h.nodes) - 1)
}

// ReverseAccumulateHessian runs the extended sweep seeded at the last
// recorded node and returns only the Hessian.
func (h *HessianTape[T]) ReverseAccumulateHessian() [][]T {
	_, hess := h.ReverseAccumulateAt(len(h.nodes) - 1)
	return hess
}

// ReverseAccumulateHessianAt is ReverseAccumulateHessian seeded at an
// arbitrary node index.
func (h *HessianTape[T]) ReverseAccumulateHessianAt(index int) [][]T {
	_, hess := h.ReverseAccumulateAt(index)
	return hess
}

// ReverseAccumulateGradientAt runs a first-order-only sweep seeded at
// the given node index.
func (h *HessianTape[T]) ReverseAccumulateGradientAt(index int) []T {
	h.checkSeed(index)

	adjoint := make([]T, len(h.nodes))
	var zero T
	adjoint[index] = zero.One()

	for i := index; i >= 0; i-- {
		n := &h.nodes[i]
		a := adjoint[i]
		if n.arity == leafNode || a.IsZero() {
			continue
		}
		adjoint[n.p1] = adjoint[n.p1].Add(a.Mul(n.d1))
		if n.arity == binaryNode {
			adjoint[n.p2] = adjoint[n.p2].Add(a.Mul(n.d2))
		}
	}

	return adjoint[:h.variableCount]
}

// ReverseAccumulateAt runs the extended reverse sweep seeded at the
// given node index using the edge-pushing scheme: a symmetric
// accumulator w tracks second-order sensitivities between every pair
// of live nodes. Eliminating node i pushes its cross edges onto its
// parents scaled by the first-order weights, expands its diagonal over
// parent pairs, and injects the node's own local curvature scaled by
// its adjoint. Both triangles of w are kept in sync so coincident
// parents (e.g. Mul(x, x)) fall out of the ordinary updates.
func (h *HessianTape[T]) ReverseAccumulateAt(index int) ([]T, [][]T) {
	h.checkSeed(index)

	total := len(h.nodes)
	adjoint := make([]T, total)
	w := make([][]T, total)
	for i := range w {
		w[i] = make([]T, total)
	}
	var zero T
	adjoint[index] = zero.One()

	for i := index; i >= 0; i-- {
		n := &h.nodes[i]
		if n.arity == leafNode {
			continue
		}

		// Push cross edges (i, k), k < i, onto the parents. Edges to
		// nodes above i were already consumed when those nodes were
		// eliminated.
		for k := 0; k < i; k++ {
			e := w[i][k]
			if e.IsZero() {
				continue
			}
			d1e := n.d1.Mul(e)
			w[n.p1][k] = w[n.p1][k].Add(d1e)
			w[k][n.p1] = w[k][n.p1].Add(d1e)
			if n.arity == binaryNode {
				d2e := n.d2.Mul(e)
				w[n.p2][k] = w[n.p2][k].Add(d2e)
				w[k][n.p2] = w[k][n.p2].Add(d2e)
			}
		}

		// Expand the diagonal over ordered parent pairs.
		if e := w[i][i]; !e.IsZero() {
			w[n.p1][n.p1] = w[n.p1][n.p1].Add(n.d1.Mul(n.d1).Mul(e))
			if n.arity == binaryNode {
				cross := n.d1.Mul(n.d2).Mul(e)
				w[n.p1][n.p2] = w[n.p1][n.p2].Add(cross)
				w[n.p2][n.p1] = w[n.p2][n.p1].Add(cross)
				w[n.p2][n.p2] = w[n.p2][n.p2].Add(n.d2.Mul(n.d2).Mul(e))
			}
		}

		a := adjoint[i]
		if a.IsZero() {
			continue
		}

		// Local curvature of this node, scaled by its adjoint.
		w[n.p1][n.p1] = w[n.p1][n.p1].Add(a.Mul(n.d11))
		if n.arity == binaryNode {
			cross := a.Mul(n.d12)
			w[n.p1][n.p2] = w[n.p1][n.p2].Add(cross)
			w[n.p2][n.p1] = w[n.p2][n.p1].Add(cross)
			w[n.p2][n.p2] = w[n.p2][n.p2].Add(a.Mul(n.d22))
		}

		// First-order adjoint propagation.
		adjoint[n.p1] = adjoint[n.p1].Add(a.Mul(n.d1))
		if n.arity == binaryNode {
			adjoint[n.p2] = adjoint[n.p2].Add(a.Mul(n.d2))
		}
	}

	hess := make([][]T, h.variableCount)
	for i := range hess {
		hess[i] = w[i][:h.variableCount]
	}
	return adjoint[:h.variableCount], hess
}

func (h *HessianTape[T]) checkSeed(index int) {
	if index < 0 || index >= len(h.nodes) {
		exceptions.Panicf("tape: reverse accumulation seed %d out of range [0, %d)", index, len(h.nodes))
	}
}
