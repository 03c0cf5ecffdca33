// Package tape implements reverse-mode automatic differentiation for
// scalar-valued expressions over real or complex scalars.
//
// A tape is an append-only arena of graph nodes. Recording an
// operation computes the primal result with the scalar capability,
// evaluates the operation's analytic local partial derivatives at the
// current operand values, and appends a node holding those weights and
// the operand indices. A reverse sweep then accumulates adjoints from
// a seed node down to the root variables.
//
// GradientTape records first-order partials and produces gradients;
// HessianTape additionally records second-order partials and produces
// Hessians. One tape serves one derivative computation and is not safe
// for concurrent mutation.
//
// Usage:
//
//	t := tape.NewGradientTape[scalar.Real]()
//	x := t.CreateVariable(1.23)
//	y := t.Mul(t.Sin(x), t.Ln(x))
//	grad := t.ReverseAccumulate() // d(sin(x)·ln(x))/dx at 1.23
//	_ = y
package tape

import (
	"github.com/gomlx/exceptions"

	"github.com/born-ml/scalargrad/internal/scalar"
)

// GradientTape is an append-only record of a computation graph with
// first-order local partials, supporting reverse accumulation of
// gradients. The zero value is not usable; call NewGradientTape.
type GradientTape[T scalar.Scalar[T]] struct {
	nodes         []node[T]
	variableCount int
}

// NewGradientTape creates an empty gradient tape.
func NewGradientTape[T scalar.Scalar[T]]() *GradientTape[T] {
	return &GradientTape[T]{
		nodes: make([]node[T], 0, 64),
	}
}

// CreateVariable appends a root node and returns its handle. Root
// variables should be created before any operation is recorded so that
// gradient slots line up with creation order.
func (t *GradientTape[T]) CreateVariable(value T) Variable[T] {
	index := len(t.nodes)
	t.nodes = append(t.nodes, node[T]{arity: leafNode})
	t.variableCount++
	return Variable[T]{Index: index, Value: value}
}

// VariableCount returns the number of root variables created so far.
func (t *GradientTape[T]) VariableCount() int { return t.variableCount }

// NodeCount returns the total number of recorded nodes.
func (t *GradientTape[T]) NodeCount() int { return len(t.nodes) }

// CreateCheckpoint wraps an already-recorded variable for later use as
// a reverse-accumulation seed. Nothing is recorded on the tape.
func (t *GradientTape[T]) CreateCheckpoint(v Variable[T]) Checkpoint[T] {
	return Checkpoint[T]{Index: v.Index, Value: v.Value}
}

// appendUnary records an operation node with a single real parent.
func (t *GradientTape[T]) appendUnary(value T, p int, d T) Variable[T] {
	index := len(t.nodes)
	t.nodes = append(t.nodes, node[T]{arity: unaryNode, p1: int32(p), d1: d})
	return Variable[T]{Index: index, Value: value}
}

// appendBinary records an operation node with two real parents.
func (t *GradientTape[T]) appendBinary(value T, p, q int, dp, dq T) Variable[T] {
	index := len(t.nodes)
	t.nodes = append(t.nodes, node[T]{arity: binaryNode, p1: int32(p), p2: int32(q), d1: dp, d2: dq})
	return Variable[T]{Index: index, Value: value}
}

// ReverseAccumulate runs a reverse sweep seeded at the last recorded
// node and returns the gradient: one entry per root variable, in
// creation order.
func (t *GradientTape[T]) ReverseAccumulate() []T {
	return t.ReverseAccumulateAt(len(t.nodes) - 1)
}

// ReverseAccumulateAt runs a reverse sweep seeded at the given node
// index (typically obtained from a Checkpoint or a Variable). Nodes
// recorded after the seed cannot influence it and are ignored.
//
// The adjoint buffer is freshly allocated per call: repeated sweeps on
// an unmodified tape return identical results.
func (t *GradientTape[T]) ReverseAccumulateAt(index int) []T {
	if index < 0 || index >= len(t.nodes) {
		exceptions.Panicf("tape: reverse accumulation seed %d out of range [0, %d)", index, len(t.nodes))
	}

	adjoint := make([]T, len(t.nodes))
	var zero T
	adjoint[index] = zero.One()

	// Children always have larger indices than their parents, so a
	// descending sweep resolves every node's full adjoint before the
	// node itself is propagated.
	for i := index; i >= 0; i-- {
		n := &t.nodes[i]
		a := adjoint[i]
		if n.arity == leafNode || a.IsZero() {
			continue
		}
		adjoint[n.p1] = adjoint[n.p1].Add(a.Mul(n.d1))
		if n.arity == binaryNode {
			adjoint[n.p2] = adjoint[n.p2].Add(a.Mul(n.d2))
		}
	}

	return adjoint[:t.variableCount]
}
