package tape

import "math"

// Recording methods for the elementary-operation catalog. Each method
// computes the primal result through the scalar capability, evaluates
// the operation's analytic partial derivatives at the current operand
// values, and appends one node. Constant operands record a lower-arity
// node: a constant can neither receive nor need an adjoint, so it gets
// no edge at all.

// Add records v = x + y.
func (t *GradientTape[T]) Add(x, y Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendBinary(x.Value.Add(y.Value), x.Index, y.Index, one, one)
}

// AddConstant records v = x + c.
func (t *GradientTape[T]) AddConstant(x Variable[T], c T) Variable[T] {
	return t.appendUnary(x.Value.Add(c), x.Index, x.Value.One())
}

// Sub records v = x - y.
func (t *GradientTape[T]) Sub(x, y Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendBinary(x.Value.Sub(y.Value), x.Index, y.Index, one, one.Neg())
}

// SubConstant records v = x - c.
func (t *GradientTape[T]) SubConstant(x Variable[T], c T) Variable[T] {
	return t.appendUnary(x.Value.Sub(c), x.Index, x.Value.One())
}

// ConstantSub records v = c - x.
func (t *GradientTape[T]) ConstantSub(c T, x Variable[T]) Variable[T] {
	return t.appendUnary(c.Sub(x.Value), x.Index, x.Value.One().Neg())
}

// Mul records v = x·y with ∂v/∂x = y and ∂v/∂y = x.
func (t *GradientTape[T]) Mul(x, y Variable[T]) Variable[T] {
	return t.appendBinary(x.Value.Mul(y.Value), x.Index, y.Index, y.Value, x.Value)
}

// MulConstant records v = c·x.
func (t *GradientTape[T]) MulConstant(x Variable[T], c T) Variable[T] {
	return t.appendUnary(x.Value.Mul(c), x.Index, c)
}

// Div records v = x/y with ∂v/∂x = 1/y and ∂v/∂y = -x/y².
func (t *GradientTape[T]) Div(x, y Variable[T]) Variable[T] {
	v := x.Value.Div(y.Value)
	return t.appendBinary(v, x.Index, y.Index,
		x.Value.One().Div(y.Value), v.Neg().Div(y.Value))
}

// DivConstant records v = x/c.
func (t *GradientTape[T]) DivConstant(x Variable[T], c T) Variable[T] {
	return t.appendUnary(x.Value.Div(c), x.Index, x.Value.One().Div(c))
}

// ConstantDiv records v = c/x with ∂v/∂x = -c/x².
func (t *GradientTape[T]) ConstantDiv(c T, x Variable[T]) Variable[T] {
	v := c.Div(x.Value)
	return t.appendUnary(v, x.Index, v.Neg().Div(x.Value))
}

// Neg records v = -x.
func (t *GradientTape[T]) Neg(x Variable[T]) Variable[T] {
	return t.appendUnary(x.Value.Neg(), x.Index, x.Value.One().Neg())
}

// Pow records v = xⁿ with ∂v/∂x = n·xⁿ⁻¹ and ∂v/∂n = xⁿ·ln x.
func (t *GradientTape[T]) Pow(x, n Variable[T]) Variable[T] {
	one := x.Value.One()
	v := x.Value.Pow(n.Value)
	return t.appendBinary(v, x.Index, n.Index,
		n.Value.Mul(x.Value.Pow(n.Value.Sub(one))),
		v.Mul(x.Value.Ln()))
}

// PowConstant records v = xᶜ for a constant exponent.
func (t *GradientTape[T]) PowConstant(x Variable[T], c T) Variable[T] {
	one := x.Value.One()
	return t.appendUnary(x.Value.Pow(c), x.Index, c.Mul(x.Value.Pow(c.Sub(one))))
}

// ConstantPow records v = cˣ with ∂v/∂x = cˣ·ln c.
func (t *GradientTape[T]) ConstantPow(c T, x Variable[T]) Variable[T] {
	v := c.Pow(x.Value)
	return t.appendUnary(v, x.Index, v.Mul(c.Ln()))
}

// Root records v = x^(1/n), the n-th root, with
// ∂v/∂x = x^(1/n-1)/n and ∂v/∂n = -x^(1/n)·ln x/n².
func (t *GradientTape[T]) Root(x, n Variable[T]) Variable[T] {
	one := x.Value.One()
	r := one.Div(n.Value)
	v := x.Value.Pow(r)
	return t.appendBinary(v, x.Index, n.Index,
		r.Mul(x.Value.Pow(r.Sub(one))),
		v.Mul(x.Value.Ln()).Neg().Div(n.Value.Mul(n.Value)))
}

// RootConstant records v = x^(1/c) for a constant root index.
func (t *GradientTape[T]) RootConstant(x Variable[T], c T) Variable[T] {
	one := x.Value.One()
	r := one.Div(c)
	return t.appendUnary(x.Value.Pow(r), x.Index, r.Mul(x.Value.Pow(r.Sub(one))))
}

// Sqrt records v = √x with ∂v/∂x = 1/(2√x).
func (t *GradientTape[T]) Sqrt(x Variable[T]) Variable[T] {
	v := x.Value.Sqrt()
	two := x.Value.FromFloat64(2)
	return t.appendUnary(v, x.Index, x.Value.One().Div(two.Mul(v)))
}

// Cbrt records v = x^(1/3) with ∂v/∂x = 1/(3·x^(2/3)).
func (t *GradientTape[T]) Cbrt(x Variable[T]) Variable[T] {
	v := x.Value.Cbrt()
	three := x.Value.FromFloat64(3)
	return t.appendUnary(v, x.Index, x.Value.One().Div(three.Mul(v).Mul(v)))
}

// Exp records v = eˣ.
func (t *GradientTape[T]) Exp(x Variable[T]) Variable[T] {
	v := x.Value.Exp()
	return t.appendUnary(v, x.Index, v)
}

// Exp2 records v = 2ˣ with ∂v/∂x = 2ˣ·ln 2.
func (t *GradientTape[T]) Exp2(x Variable[T]) Variable[T] {
	v := x.Value.Exp2()
	return t.appendUnary(v, x.Index, v.Mul(x.Value.FromFloat64(math.Ln2)))
}

// Exp10 records v = 10ˣ with ∂v/∂x = 10ˣ·ln 10.
func (t *GradientTape[T]) Exp10(x Variable[T]) Variable[T] {
	v := x.Value.Exp10()
	return t.appendUnary(v, x.Index, v.Mul(x.Value.FromFloat64(math.Ln10)))
}

// Ln records v = ln x with ∂v/∂x = 1/x.
func (t *GradientTape[T]) Ln(x Variable[T]) Variable[T] {
	return t.appendUnary(x.Value.Ln(), x.Index, x.Value.One().Div(x.Value))
}

// Log records v = log_b(x) for a variable base, with
// ∂v/∂x = 1/(x·ln b) and ∂v/∂b = -ln x/(b·ln²b).
func (t *GradientTape[T]) Log(x, b Variable[T]) Variable[T] {
	one := x.Value.One()
	lnb := b.Value.Ln()
	return t.appendBinary(x.Value.Ln().Div(lnb), x.Index, b.Index,
		one.Div(x.Value.Mul(lnb)),
		x.Value.Ln().Neg().Div(b.Value.Mul(lnb).Mul(lnb)))
}

// LogConstantBase records v = log_c(x) for a constant base.
func (t *GradientTape[T]) LogConstantBase(x Variable[T], c T) Variable[T] {
	lnc := c.Ln()
	return t.appendUnary(x.Value.Ln().Div(lnc), x.Index,
		x.Value.One().Div(x.Value.Mul(lnc)))
}

// Log2 records v = log₂x with ∂v/∂x = 1/(x·ln 2).
func (t *GradientTape[T]) Log2(x Variable[T]) Variable[T] {
	ln2 := x.Value.FromFloat64(math.Ln2)
	return t.appendUnary(x.Value.Log2(), x.Index, x.Value.One().Div(x.Value.Mul(ln2)))
}

// Log10 records v = log₁₀x with ∂v/∂x = 1/(x·ln 10).
func (t *GradientTape[T]) Log10(x Variable[T]) Variable[T] {
	ln10 := x.Value.FromFloat64(math.Ln10)
	return t.appendUnary(x.Value.Log10(), x.Index, x.Value.One().Div(x.Value.Mul(ln10)))
}

// Sin records v = sin x with ∂v/∂x = cos x.
func (t *GradientTape[T]) Sin(x Variable[T]) Variable[T] {
	return t.appendUnary(x.Value.Sin(), x.Index, x.Value.Cos())
}

// Cos records v = cos x with ∂v/∂x = -sin x.
func (t *GradientTape[T]) Cos(x Variable[T]) Variable[T] {
	return t.appendUnary(x.Value.Cos(), x.Index, x.Value.Sin().Neg())
}

// Tan records v = tan x with ∂v/∂x = 1 + tan²x.
func (t *GradientTape[T]) Tan(x Variable[T]) Variable[T] {
	v := x.Value.Tan()
	return t.appendUnary(v, x.Index, x.Value.One().Add(v.Mul(v)))
}

// Asin records v = arcsin x with ∂v/∂x = 1/√(1-x²).
func (t *GradientTape[T]) Asin(x Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendUnary(x.Value.Asin(), x.Index,
		one.Div(one.Sub(x.Value.Mul(x.Value)).Sqrt()))
}

// Acos records v = arccos x with ∂v/∂x = -1/√(1-x²).
func (t *GradientTape[T]) Acos(x Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendUnary(x.Value.Acos(), x.Index,
		one.Div(one.Sub(x.Value.Mul(x.Value)).Sqrt()).Neg())
}

// Atan records v = arctan x with ∂v/∂x = 1/(1+x²).
func (t *GradientTape[T]) Atan(x Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendUnary(x.Value.Atan(), x.Index,
		one.Div(one.Add(x.Value.Mul(x.Value))))
}

// Sinh records v = sinh x with ∂v/∂x = cosh x.
func (t *GradientTape[T]) Sinh(x Variable[T]) Variable[T] {
	return t.appendUnary(x.Value.Sinh(), x.Index, x.Value.Cosh())
}

// Cosh records v = cosh x with ∂v/∂x = sinh x.
func (t *GradientTape[T]) Cosh(x Variable[T]) Variable[T] {
	return t.appendUnary(x.Value.Cosh(), x.Index, x.Value.Sinh())
}

// Tanh records v = tanh x with ∂v/∂x = 1 - tanh²x.
func (t *GradientTape[T]) Tanh(x Variable[T]) Variable[T] {
	v := x.Value.Tanh()
	return t.appendUnary(v, x.Index, x.Value.One().Sub(v.Mul(v)))
}

// Asinh records v = arsinh x with ∂v/∂x = 1/√(1+x²).
func (t *GradientTape[T]) Asinh(x Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendUnary(x.Value.Asinh(), x.Index,
		one.Div(one.Add(x.Value.Mul(x.Value)).Sqrt()))
}

// Acosh records v = arcosh x with ∂v/∂x = 1/√(x²-1).
func (t *GradientTape[T]) Acosh(x Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendUnary(x.Value.Acosh(), x.Index,
		one.Div(x.Value.Mul(x.Value).Sub(one).Sqrt()))
}

// Atanh records v = artanh x with ∂v/∂x = 1/(1-x²).
func (t *GradientTape[T]) Atanh(x Variable[T]) Variable[T] {
	one := x.Value.One()
	return t.appendUnary(x.Value.Atanh(), x.Index,
		one.Div(one.Sub(x.Value.Mul(x.Value))))
}
