package tape

import "math"

// Recording methods for the Hessian tape: same catalog and same
// first-order weights as GradientTape, plus the analytic second-order
// local partials (one for unary nodes, three for binary nodes).

// Add records v = x + y.
func (h *HessianTape[T]) Add(x, y Variable[T]) Variable[T] {
	var zero T
	one := x.Value.One()
	return h.appendBinary(x.Value.Add(y.Value), x.Index, y.Index,
		one, one, zero, zero, zero)
}

// AddConstant records v = x + c.
func (h *HessianTape[T]) AddConstant(x Variable[T], c T) Variable[T] {
	var zero T
	return h.appendUnary(x.Value.Add(c), x.Index, x.Value.One(), zero)
}

// Sub records v = x - y.
func (h *HessianTape[T]) Sub(x, y Variable[T]) Variable[T] {
	var zero T
	one := x.Value.One()
	return h.appendBinary(x.Value.Sub(y.Value), x.Index, y.Index,
		one, one.Neg(), zero, zero, zero)
}

// SubConstant records v = x - c.
func (h *HessianTape[T]) SubConstant(x Variable[T], c T) Variable[T] {
	var zero T
	return h.appendUnary(x.Value.Sub(c), x.Index, x.Value.One(), zero)
}

// ConstantSub records v = c - x.
func (h *HessianTape[T]) ConstantSub(c T, x Variable[T]) Variable[T] {
	var zero T
	return h.appendUnary(c.Sub(x.Value), x.Index, x.Value.One().Neg(), zero)
}

// Mul records v = x·y; the only curvature is the cross term ∂²v/∂x∂y = 1.
func (h *HessianTape[T]) Mul(x, y Variable[T]) Variable[T] {
	var zero T
	return h.appendBinary(x.Value.Mul(y.Value), x.Index, y.Index,
		y.Value, x.Value, zero, x.Value.One(), zero)
}

// MulConstant records v = c·x.
func (h *HessianTape[T]) MulConstant(x Variable[T], c T) Variable[T] {
	var zero T
	return h.appendUnary(x.Value.Mul(c), x.Index, c, zero)
}

// Div records v = x/y.
func (h *HessianTape[T]) Div(x, y Variable[T]) Variable[T] {
	var zero T
	one := x.Value.One()
	two := x.Value.FromFloat64(2)
	v := x.Value.Div(y.Value)
	invY := one.Div(y.Value)
	return h.appendBinary(v, x.Index, y.Index,
		invY, v.Neg().Div(y.Value),
		zero,
		invY.Mul(invY).Neg(),
		two.Mul(v).Mul(invY).Mul(invY))
}

// DivConstant records v = x/c.
func (h *HessianTape[T]) DivConstant(x Variable[T], c T) Variable[T] {
	var zero T
	return h.appendUnary(x.Value.Div(c), x.Index, x.Value.One().Div(c), zero)
}

// ConstantDiv records v = c/x.
func (h *HessianTape[T]) ConstantDiv(c T, x Variable[T]) Variable[T] {
	two := x.Value.FromFloat64(2)
	v := c.Div(x.Value)
	return h.appendUnary(v, x.Index,
		v.Neg().Div(x.Value),
		two.Mul(v).Div(x.Value.Mul(x.Value)))
}

// Neg records v = -x.
func (h *HessianTape[T]) Neg(x Variable[T]) Variable[T] {
	var zero T
	return h.appendUnary(x.Value.Neg(), x.Index, x.Value.One().Neg(), zero)
}

// Pow records v = xⁿ.
func (h *HessianTape[T]) Pow(x, n Variable[T]) Variable[T] {
	one := x.Value.One()
	lnx := x.Value.Ln()
	v := x.Value.Pow(n.Value)
	pm1 := x.Value.Pow(n.Value.Sub(one)) // xⁿ⁻¹
	return h.appendBinary(v, x.Index, n.Index,
		n.Value.Mul(pm1),
		v.Mul(lnx),
		n.Value.Mul(n.Value.Sub(one)).Mul(x.Value.Pow(n.Value.Sub(one).Sub(one))),
		pm1.Mul(one.Add(n.Value.Mul(lnx))),
		v.Mul(lnx).Mul(lnx))
}

// PowConstant records v = xᶜ.
func (h *HessianTape[T]) PowConstant(x Variable[T], c T) Variable[T] {
	one := x.Value.One()
	return h.appendUnary(x.Value.Pow(c), x.Index,
		c.Mul(x.Value.Pow(c.Sub(one))),
		c.Mul(c.Sub(one)).Mul(x.Value.Pow(c.Sub(one).Sub(one))))
}

// ConstantPow records v = cˣ.
func (h *HessianTape[T]) ConstantPow(c T, x Variable[T]) Variable[T] {
	lnc := c.Ln()
	v := c.Pow(x.Value)
	return h.appendUnary(v, x.Index, v.Mul(lnc), v.Mul(lnc).Mul(lnc))
}

// Root records v = x^(1/n).
func (h *HessianTape[T]) Root(x, n Variable[T]) Variable[T] {
	one := x.Value.One()
	two := x.Value.FromFloat64(2)
	r := one.Div(n.Value)
	lnx := x.Value.Ln()
	v := x.Value.Pow(r)
	rm1 := x.Value.Pow(r.Sub(one)) // x^(1/n-1)
	nn := n.Value.Mul(n.Value)
	return h.appendBinary(v, x.Index, n.Index,
		r.Mul(rm1),
		v.Mul(lnx).Neg().Div(nn),
		r.Mul(r.Sub(one)).Mul(x.Value.Pow(r.Sub(one).Sub(one))),
		rm1.Neg().Mul(one.Add(r.Mul(lnx))).Div(nn),
		v.Mul(lnx).Mul(lnx.Add(two.Mul(n.Value))).Div(nn.Mul(nn)))
}

// RootConstant records v = x^(1/c).
func (h *HessianTape[T]) RootConstant(x Variable[T], c T) Variable[T] {
	one := x.Value.One()
	r := one.Div(c)
	return h.appendUnary(x.Value.Pow(r), x.Index,
		r.Mul(x.Value.Pow(r.Sub(one))),
		r.Mul(r.Sub(one)).Mul(x.Value.Pow(r.Sub(one).Sub(one))))
}

// Sqrt records v = √x.
func (h *HessianTape[T]) Sqrt(x Variable[T]) Variable[T] {
	two := x.Value.FromFloat64(2)
	v := x.Value.Sqrt()
	d1 := x.Value.One().Div(two.Mul(v))
	return h.appendUnary(v, x.Index, d1, d1.Neg().Div(two.Mul(x.Value)))
}

// Cbrt records v = x^(1/3).
func (h *HessianTape[T]) Cbrt(x Variable[T]) Variable[T] {
	two := x.Value.FromFloat64(2)
	three := x.Value.FromFloat64(3)
	nine := x.Value.FromFloat64(9)
	v := x.Value.Cbrt()
	vv := v.Mul(v)
	return h.appendUnary(v, x.Index,
		x.Value.One().Div(three.Mul(vv)),
		two.Neg().Div(nine.Mul(vv).Mul(vv).Mul(v)))
}

// Exp records v = eˣ.
func (h *HessianTape[T]) Exp(x Variable[T]) Variable[T] {
	v := x.Value.Exp()
	return h.appendUnary(v, x.Index, v, v)
}

// Exp2 records v = 2ˣ.
func (h *HessianTape[T]) Exp2(x Variable[T]) Variable[T] {
	ln2 := x.Value.FromFloat64(math.Ln2)
	v := x.Value.Exp2()
	return h.appendUnary(v, x.Index, v.Mul(ln2), v.Mul(ln2).Mul(ln2))
}

// Exp10 records v = 10ˣ.
func (h *HessianTape[T]) Exp10(x Variable[T]) Variable[T] {
	ln10 := x.Value.FromFloat64(math.Ln10)
	v := x.Value.Exp10()
	return h.appendUnary(v, x.Index, v.Mul(ln10), v.Mul(ln10).Mul(ln10))
}

// Ln records v = ln x.
func (h *HessianTape[T]) Ln(x Variable[T]) Variable[T] {
	one := x.Value.One()
	d1 := one.Div(x.Value)
	return h.appendUnary(x.Value.Ln(), x.Index, d1, d1.Mul(d1).Neg())
}

// Log records v = log_b(x) for a variable base.
func (h *HessianTape[T]) Log(x, b Variable[T]) Variable[T] {
	one := x.Value.One()
	two := x.Value.FromFloat64(2)
	lnx := x.Value.Ln()
	lnb := b.Value.Ln()
	lnb2 := lnb.Mul(lnb)
	return h.appendBinary(lnx.Div(lnb), x.Index, b.Index,
		one.Div(x.Value.Mul(lnb)),
		lnx.Neg().Div(b.Value.Mul(lnb2)),
		one.Neg().Div(x.Value.Mul(x.Value).Mul(lnb)),
		one.Neg().Div(x.Value.Mul(b.Value).Mul(lnb2)),
		lnx.Mul(lnb.Add(two)).Div(b.Value.Mul(b.Value).Mul(lnb2).Mul(lnb)))
}

// LogConstantBase records v = log_c(x) for a constant base.
func (h *HessianTape[T]) LogConstantBase(x Variable[T], c T) Variable[T] {
	one := x.Value.One()
	lnc := c.Ln()
	return h.appendUnary(x.Value.Ln().Div(lnc), x.Index,
		one.Div(x.Value.Mul(lnc)),
		one.Neg().Div(x.Value.Mul(x.Value).Mul(lnc)))
}

// Log2 records v = log₂x.
func (h *HessianTape[T]) Log2(x Variable[T]) Variable[T] {
	one := x.Value.One()
	ln2 := x.Value.FromFloat64(math.Ln2)
	return h.appendUnary(x.Value.Log2(), x.Index,
		one.Div(x.Value.Mul(ln2)),
		one.Neg().Div(x.Value.Mul(x.Value).Mul(ln2)))
}

// Log10 records v = log₁₀x.
func (h *HessianTape[T]) Log10(x Variable[T]) Variable[T] {
	one := x.Value.One()
	ln10 := x.Value.FromFloat64(math.Ln10)
	return h.appendUnary(x.Value.Log10(), x.Index,
		one.Div(x.Value.Mul(ln10)),
		one.Neg().Div(x.Value.Mul(x.Value).Mul(ln10)))
}

// Sin records v = sin x.
func (h *HessianTape[T]) Sin(x Variable[T]) Variable[T] {
	v := x.Value.Sin()
	return h.appendUnary(v, x.Index, x.Value.Cos(), v.Neg())
}

// Cos records v = cos x.
func (h *HessianTape[T]) Cos(x Variable[T]) Variable[T] {
	v := x.Value.Cos()
	return h.appendUnary(v, x.Index, x.Value.Sin().Neg(), v.Neg())
}

// Tan records v = tan x; d1 = 1+tan²x, d11 = 2·tan x·(1+tan²x).
func (h *HessianTape[T]) Tan(x Variable[T]) Variable[T] {
	two := x.Value.FromFloat64(2)
	v := x.Value.Tan()
	s := x.Value.One().Add(v.Mul(v))
	return h.appendUnary(v, x.Index, s, two.Mul(v).Mul(s))
}

// Asin records v = arcsin x; d1 = (1-x²)^(-1/2), d11 = x·(1-x²)^(-3/2).
func (h *HessianTape[T]) Asin(x Variable[T]) Variable[T] {
	one := x.Value.One()
	d1 := one.Div(one.Sub(x.Value.Mul(x.Value)).Sqrt())
	return h.appendUnary(x.Value.Asin(), x.Index, d1,
		x.Value.Mul(d1).Mul(d1).Mul(d1))
}

// Acos records v = arccos x; d1 = -(1-x²)^(-1/2), d11 = -x·(1-x²)^(-3/2).
func (h *HessianTape[T]) Acos(x Variable[T]) Variable[T] {
	one := x.Value.One()
	d1 := one.Div(one.Sub(x.Value.Mul(x.Value)).Sqrt()).Neg()
	// d1³ carries the sign, so d11 = x·d1³ here as well.
	return h.appendUnary(x.Value.Acos(), x.Index, d1,
		x.Value.Mul(d1).Mul(d1).Mul(d1))
}

// Atan records v = arctan x; d1 = 1/(1+x²), d11 = -2x/(1+x²)².
func (h *HessianTape[T]) Atan(x Variable[T]) Variable[T] {
	one := x.Value.One()
	two := x.Value.FromFloat64(2)
	d1 := one.Div(one.Add(x.Value.Mul(x.Value)))
	return h.appendUnary(x.Value.Atan(), x.Index, d1,
		two.Neg().Mul(x.Value).Mul(d1).Mul(d1))
}

// Sinh records v = sinh x.
func (h *HessianTape[T]) Sinh(x Variable[T]) Variable[T] {
	v := x.Value.Sinh()
	return h.appendUnary(v, x.Index, x.Value.Cosh(), v)
}

// Cosh records v = cosh x.
func (h *HessianTape[T]) Cosh(x Variable[T]) Variable[T] {
	v := x.Value.Cosh()
	return h.appendUnary(v, x.Index, x.Value.Sinh(), v)
}

// Tanh records v = tanh x; d1 = 1-tanh²x, d11 = -2·tanh x·(1-tanh²x).
func (h *HessianTape[T]) Tanh(x Variable[T]) Variable[T] {
	two := x.Value.FromFloat64(2)
	v := x.Value.Tanh()
	d1 := x.Value.One().Sub(v.Mul(v))
	return h.appendUnary(v, x.Index, d1, two.Neg().Mul(v).Mul(d1))
}

// Asinh records v = arsinh x; d1 = (1+x²)^(-1/2), d11 = -x·(1+x²)^(-3/2).
func (h *HessianTape[T]) Asinh(x Variable[T]) Variable[T] {
	one := x.Value.One()
	d1 := one.Div(one.Add(x.Value.Mul(x.Value)).Sqrt())
	return h.appendUnary(x.Value.Asinh(), x.Index, d1,
		x.Value.Neg().Mul(d1).Mul(d1).Mul(d1))
}

// Acosh records v = arcosh x; d1 = (x²-1)^(-1/2), d11 = -x·(x²-1)^(-3/2).
func (h *HessianTape[T]) Acosh(x Variable[T]) Variable[T] {
	one := x.Value.One()
	d1 := one.Div(x.Value.Mul(x.Value).Sub(one).Sqrt())
	return h.appendUnary(x.Value.Acosh(), x.Index, d1,
		x.Value.Neg().Mul(d1).Mul(d1).Mul(d1))
}

// Atanh records v = artanh x; d1 = 1/(1-x²), d11 = 2x/(1-x²)².
func (h *HessianTape[T]) Atanh(x Variable[T]) Variable[T] {
	one := x.Value.One()
	two := x.Value.FromFloat64(2)
	d1 := one.Div(one.Sub(x.Value.Mul(x.Value)))
	return h.appendUnary(x.Value.Atanh(), x.Index, d1,
		two.Mul(x.Value).Mul(d1).Mul(d1))
}
