package tape

import "github.com/born-ml/scalargrad/internal/scalar"

// Recorder is the recording surface shared by GradientTape and
// HessianTape. The real-only operations below are package-level
// functions constrained on scalar.RealScalar and generic over the
// recorder, so they serve both tape kinds while remaining statically
// unavailable to complex tapes.
type Recorder[T scalar.Scalar[T]] interface {
	recordUnary(value T, p int, d1, d11 T) Variable[T]
	recordBinary(value T, p, q int, d1, d2, d11, d12, d22 T) Variable[T]
}

func (t *GradientTape[T]) recordUnary(value T, p int, d1, _ T) Variable[T] {
	return t.appendUnary(value, p, d1)
}

func (t *GradientTape[T]) recordBinary(value T, p, q int, d1, d2, _, _, _ T) Variable[T] {
	return t.appendBinary(value, p, q, d1, d2)
}

func (h *HessianTape[T]) recordUnary(value T, p int, d1, d11 T) Variable[T] {
	return h.appendUnary(value, p, d1, d11)
}

func (h *HessianTape[T]) recordBinary(value T, p, q int, d1, d2, d11, d12, d22 T) Variable[T] {
	return h.appendBinary(value, p, q, d1, d2, d11, d12, d22)
}

// Atan2 records v = atan2(y, x), the two-argument arctangent, with
//
//	∂v/∂y = x/(x²+y²)    ∂v/∂x = -y/(x²+y²)
//	∂²v/∂y² = -2xy/(x²+y²)²  ∂²v/∂y∂x = (y²-x²)/(x²+y²)²  ∂²v/∂x² = 2xy/(x²+y²)²
func Atan2[T scalar.RealScalar[T]](t Recorder[T], y, x Variable[T]) Variable[T] {
	two := y.Value.FromFloat64(2)
	d := x.Value.Mul(x.Value).Add(y.Value.Mul(y.Value))
	dd := d.Mul(d)
	xy2 := two.Mul(x.Value).Mul(y.Value)
	return t.recordBinary(y.Value.Atan2(x.Value), y.Index, x.Index,
		x.Value.Div(d), y.Value.Neg().Div(d),
		xy2.Neg().Div(dd),
		y.Value.Mul(y.Value).Sub(x.Value.Mul(x.Value)).Div(dd),
		xy2.Div(dd))
}

// Atan2Constant records v = atan2(y, c) for a constant abscissa.
func Atan2Constant[T scalar.RealScalar[T]](t Recorder[T], y Variable[T], c T) Variable[T] {
	two := y.Value.FromFloat64(2)
	d := c.Mul(c).Add(y.Value.Mul(y.Value))
	return t.recordUnary(y.Value.Atan2(c), y.Index,
		c.Div(d),
		two.Mul(c).Mul(y.Value).Neg().Div(d.Mul(d)))
}

// ConstantAtan2 records v = atan2(c, x) for a constant ordinate.
func ConstantAtan2[T scalar.RealScalar[T]](t Recorder[T], c T, x Variable[T]) Variable[T] {
	two := x.Value.FromFloat64(2)
	d := x.Value.Mul(x.Value).Add(c.Mul(c))
	return t.recordUnary(c.Atan2(x.Value), x.Index,
		c.Neg().Div(d),
		two.Mul(x.Value).Mul(c).Div(d.Mul(d)))
}

// Modulo records v = x mod y (truncated division), with ∂v/∂x = 1 and
// ∂v/∂y = -trunc(x/y). Second-order partials vanish away from the
// discontinuities.
func Modulo[T scalar.RealScalar[T]](t Recorder[T], x, y Variable[T]) Variable[T] {
	var zero T
	one := x.Value.One()
	return t.recordBinary(x.Value.Mod(y.Value), x.Index, y.Index,
		one, x.Value.Div(y.Value).Trunc().Neg(),
		zero, zero, zero)
}

// ModuloConstant records v = x mod c.
func ModuloConstant[T scalar.RealScalar[T]](t Recorder[T], x Variable[T], c T) Variable[T] {
	var zero T
	return t.recordUnary(x.Value.Mod(c), x.Index, x.Value.One(), zero)
}

// ConstantModulo records v = c mod y.
func ConstantModulo[T scalar.RealScalar[T]](t Recorder[T], c T, y Variable[T]) Variable[T] {
	var zero T
	return t.recordUnary(c.Mod(y.Value), y.Index, c.Div(y.Value).Trunc().Neg(), zero)
}
