package tape

// Custom operations record a node whose derivatives are supplied by
// the caller instead of the built-in catalog. All callbacks are
// evaluated eagerly at the operands' current primal values; nothing is
// deferred or symbolic. This supports functions absent from the
// catalog, and collapses a whole sub-expression to a single node when
// its closed-form derivative is known.

// CustomOperation records v = f(x) with caller-supplied derivative df.
func (t *GradientTape[T]) CustomOperation(x Variable[T], f, df func(T) T) Variable[T] {
	return t.appendUnary(f(x.Value), x.Index, df(x.Value))
}

// CustomOperationBinary records v = f(x, y) with caller-supplied
// partial derivatives dfx = ∂f/∂x and dfy = ∂f/∂y.
func (t *GradientTape[T]) CustomOperationBinary(x, y Variable[T], f, dfx, dfy func(T, T) T) Variable[T] {
	return t.appendBinary(f(x.Value, y.Value), x.Index, y.Index,
		dfx(x.Value, y.Value), dfy(x.Value, y.Value))
}

// CustomOperation records v = f(x) with caller-supplied first and
// second derivatives.
func (h *HessianTape[T]) CustomOperation(x Variable[T], f, df, d2f func(T) T) Variable[T] {
	return h.appendUnary(f(x.Value), x.Index, df(x.Value), d2f(x.Value))
}

// CustomOperationBinary records v = f(x, y) with caller-supplied first
// partials (dfx, dfy) and second partials (dfxx = ∂²f/∂x²,
// dfxy = ∂²f/∂x∂y, dfyy = ∂²f/∂y²).
func (h *HessianTape[T]) CustomOperationBinary(
	x, y Variable[T],
	f, dfx, dfy, dfxx, dfxy, dfyy func(T, T) T,
) Variable[T] {
	return h.appendBinary(f(x.Value, y.Value), x.Index, y.Index,
		dfx(x.Value, y.Value), dfy(x.Value, y.Value),
		dfxx(x.Value, y.Value), dfxy(x.Value, y.Value), dfyy(x.Value, y.Value))
}
