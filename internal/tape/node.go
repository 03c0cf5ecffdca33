package tape

import "github.com/born-ml/scalargrad/internal/scalar"

// Node kinds. A leaf is created by CreateVariable and has no parents;
// unary and binary nodes are created by recording operations. The kind
// is explicit rather than encoded through a self-referential parent
// index, so "no parent" can never be confused with a real edge.
const (
	leafNode   int8 = 0
	unaryNode  int8 = 1
	binaryNode int8 = 2
)

// node is one recorded computation-graph vertex on a GradientTape.
// For operation nodes, p1/p2 hold the parent indices and d1/d2 the
// first-order local partial derivatives evaluated at recording time.
// Parents are always strictly smaller than the node's own index.
//
// A binary operation whose second operand is a plain constant records
// a unary node: the constant contributes no adjoint and needs no edge.
type node[T scalar.Scalar[T]] struct {
	arity  int8
	p1, p2 int32
	d1, d2 T
}

// hnode is a node on a HessianTape: the first-order layout of node
// plus the second-order local partials. For a binary operation with
// parents (u, v): d11 = ∂²f/∂u², d12 = ∂²f/∂u∂v, d22 = ∂²f/∂v².
type hnode[T scalar.Scalar[T]] struct {
	arity         int8
	p1, p2        int32
	d1, d2        T
	d11, d12, d22 T
}

// Variable is a lightweight handle pairing a primal value with the
// index of the tape node that produced it. Variables carry no
// ownership; they are only valid with the tape that created them.
type Variable[T scalar.Scalar[T]] struct {
	Index int
	Value T
}

// Checkpoint remembers an already-recorded node so a later reverse
// sweep can be seeded there. Creating one records nothing on the tape.
type Checkpoint[T scalar.Scalar[T]] struct {
	Index int
	Value T
}
