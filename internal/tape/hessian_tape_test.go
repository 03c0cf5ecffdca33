package tape_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scalargrad/internal/scalar"
	"github.com/born-ml/scalargrad/internal/tape"
)

type realHTape = tape.HessianTape[scalar.Real]

// secondOf records op over a single variable and returns the
// accumulated first and second derivatives at x.
func secondOf(op func(h *realHTape, x realVar) realVar, x float64) (d1, d2 float64) {
	h := tape.NewHessianTape[scalar.Real]()
	v := h.CreateVariable(scalar.Real(x))
	out := op(h, v)
	grad, hess := h.ReverseAccumulateAt(out.Index)
	return float64(grad[0]), float64(hess[0][0])
}

func TestUnarySecondDerivatives(t *testing.T) {
	cases := []struct {
		name   string
		op     func(h *realHTape, x realVar) realVar
		deriv  func(x float64) float64
		second func(x float64) float64
		at     float64
	}{
		{"Sin", (*realHTape).Sin, math.Cos, func(x float64) float64 { return -math.Sin(x) }, 1.23},
		{"Cos", (*realHTape).Cos, func(x float64) float64 { return -math.Sin(x) }, func(x float64) float64 { return -math.Cos(x) }, 1.23},
		{"Tan", (*realHTape).Tan,
			func(x float64) float64 { v := math.Tan(x); return 1 + v*v },
			func(x float64) float64 { v := math.Tan(x); return 2 * v * (1 + v*v) }, 1.23},
		{"Asin", (*realHTape).Asin,
			func(x float64) float64 { return 1 / math.Sqrt(1-x*x) },
			func(x float64) float64 { return x / math.Pow(1-x*x, 1.5) }, 0.77},
		{"Acos", (*realHTape).Acos,
			func(x float64) float64 { return -1 / math.Sqrt(1-x*x) },
			func(x float64) float64 { return -x / math.Pow(1-x*x, 1.5) }, 0.77},
		{"Atan", (*realHTape).Atan,
			func(x float64) float64 { return 1 / (1 + x*x) },
			func(x float64) float64 { d := 1 + x*x; return -2 * x / (d * d) }, 1.23},
		{"Sinh", (*realHTape).Sinh, math.Cosh, math.Sinh, 1.23},
		{"Cosh", (*realHTape).Cosh, math.Sinh, math.Cosh, 1.23},
		{"Tanh", (*realHTape).Tanh,
			func(x float64) float64 { v := math.Tanh(x); return 1 - v*v },
			func(x float64) float64 { v := math.Tanh(x); return -2 * v * (1 - v*v) }, 1.23},
		{"Asinh", (*realHTape).Asinh,
			func(x float64) float64 { return 1 / math.Sqrt(1+x*x) },
			func(x float64) float64 { return -x / math.Pow(1+x*x, 1.5) }, 1.23},
		{"Acosh", (*realHTape).Acosh,
			func(x float64) float64 { return 1 / math.Sqrt(x*x-1) },
			func(x float64) float64 { return -x / math.Pow(x*x-1, 1.5) }, 1.23},
		{"Atanh", (*realHTape).Atanh,
			func(x float64) float64 { return 1 / (1 - x*x) },
			func(x float64) float64 { d := 1 - x*x; return 2 * x / (d * d) }, 0.77},
		{"Exp", (*realHTape).Exp, math.Exp, math.Exp, 1.23},
		{"Exp2", (*realHTape).Exp2,
			func(x float64) float64 { return math.Exp2(x) * math.Ln2 },
			func(x float64) float64 { return math.Exp2(x) * math.Ln2 * math.Ln2 }, 1.23},
		{"Exp10", (*realHTape).Exp10,
			func(x float64) float64 { return math.Pow(10, x) * math.Ln10 },
			func(x float64) float64 { return math.Pow(10, x) * math.Ln10 * math.Ln10 }, 1.23},
		{"Ln", (*realHTape).Ln,
			func(x float64) float64 { return 1 / x },
			func(x float64) float64 { return -1 / (x * x) }, 1.23},
		{"Log2", (*realHTape).Log2,
			func(x float64) float64 { return 1 / (x * math.Ln2) },
			func(x float64) float64 { return -1 / (x * x * math.Ln2) }, 1.23},
		{"Log10", (*realHTape).Log10,
			func(x float64) float64 { return 1 / (x * math.Ln10) },
			func(x float64) float64 { return -1 / (x * x * math.Ln10) }, 1.23},
		{"Sqrt", (*realHTape).Sqrt,
			func(x float64) float64 { return 1 / (2 * math.Sqrt(x)) },
			func(x float64) float64 { return -1 / (4 * x * math.Sqrt(x)) }, 1.23},
		{"Cbrt", (*realHTape).Cbrt,
			func(x float64) float64 { c := math.Cbrt(x); return 1 / (3 * c * c) },
			func(x float64) float64 { return -2 / (9 * math.Pow(x, 5.0/3.0)) }, 1.23},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d1, d2 := secondOf(tc.op, tc.at)
			assert.InEpsilon(t, tc.deriv(tc.at), d1, 1e-13)
			assert.InEpsilon(t, tc.second(tc.at), d2, 1e-13)
		})
	}
}

func TestBinarySecondDerivatives(t *testing.T) {
	const a, b = 1.23, 2.34

	t.Run("Mul", func(t *testing.T) {
		h := tape.NewHessianTape[scalar.Real]()
		x := h.CreateVariable(a)
		y := h.CreateVariable(b)
		out := h.Mul(x, y)
		_, hess := h.ReverseAccumulateAt(out.Index)

		assert.Equal(t, scalar.Real(0), hess[0][0])
		assert.Equal(t, scalar.Real(1), hess[0][1])
		assert.Equal(t, scalar.Real(1), hess[1][0])
		assert.Equal(t, scalar.Real(0), hess[1][1])
	})

	t.Run("Div", func(t *testing.T) {
		h := tape.NewHessianTape[scalar.Real]()
		x := h.CreateVariable(a)
		y := h.CreateVariable(b)
		out := h.Div(x, y)
		_, hess := h.ReverseAccumulateAt(out.Index)

		assert.Equal(t, scalar.Real(0), hess[0][0])
		assert.InEpsilon(t, -1/(b*b), float64(hess[0][1]), 1e-13)
		assert.InEpsilon(t, -1/(b*b), float64(hess[1][0]), 1e-13)
		assert.InEpsilon(t, 2*a/(b*b*b), float64(hess[1][1]), 1e-13)
	})

	t.Run("Pow", func(t *testing.T) {
		h := tape.NewHessianTape[scalar.Real]()
		x := h.CreateVariable(a)
		y := h.CreateVariable(b)
		out := h.Pow(x, y)
		grad, hess := h.ReverseAccumulateAt(out.Index)

		lna := math.Log(a)
		assert.InEpsilon(t, b*math.Pow(a, b-1), float64(grad[0]), 1e-13)
		assert.InEpsilon(t, math.Pow(a, b)*lna, float64(grad[1]), 1e-13)
		assert.InEpsilon(t, b*(b-1)*math.Pow(a, b-2), float64(hess[0][0]), 1e-13)
		assert.InEpsilon(t, math.Pow(a, b-1)*(1+b*lna), float64(hess[0][1]), 1e-13)
		assert.InEpsilon(t, math.Pow(a, b)*lna*lna, float64(hess[1][1]), 1e-13)
	})

	t.Run("Atan2", func(t *testing.T) {
		h := tape.NewHessianTape[scalar.Real]()
		y := h.CreateVariable(a)
		x := h.CreateVariable(b)
		out := tape.Atan2[scalar.Real](h, y, x)
		_, hess := h.ReverseAccumulateAt(out.Index)

		d := a*a + b*b
		assert.InEpsilon(t, -2*a*b/(d*d), float64(hess[0][0]), 1e-13)
		assert.InEpsilon(t, (a*a-b*b)/(d*d), float64(hess[0][1]), 1e-13)
		assert.InEpsilon(t, 2*a*b/(d*d), float64(hess[1][1]), 1e-13)
	})
}

// f(x) = x·x exercises coincident parents: both first- and
// second-order contributions must double up.
func TestRepeatedOperandHessian(t *testing.T) {
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(1.23)
	out := h.Mul(x, x)
	grad, hess := h.ReverseAccumulateAt(out.Index)

	assert.InEpsilon(t, 2*1.23, float64(grad[0]), 1e-14)
	assert.InEpsilon(t, 2, float64(hess[0][0]), 1e-14)
}

// f(x,y) = exp(x·y): H = e^(xy)·[[y², 1+xy], [1+xy, x²]].
func TestCompositeHessian(t *testing.T) {
	const a, b = 0.5, -0.3
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(a)
	y := h.CreateVariable(b)
	out := h.Exp(h.Mul(x, y))
	grad, hess := h.ReverseAccumulateAt(out.Index)

	e := math.Exp(a * b)
	assert.InEpsilon(t, b*e, float64(grad[0]), 1e-13)
	assert.InEpsilon(t, a*e, float64(grad[1]), 1e-13)
	assert.InEpsilon(t, b*b*e, float64(hess[0][0]), 1e-13)
	assert.InEpsilon(t, (1+a*b)*e, float64(hess[0][1]), 1e-13)
	assert.InEpsilon(t, (1+a*b)*e, float64(hess[1][0]), 1e-13)
	assert.InEpsilon(t, a*a*e, float64(hess[1][1]), 1e-13)
}

// f(x) = sin(x)·ln(x): the two unary branches of a shared variable
// create a cross edge that must be pushed back onto x.
// f'' = -sin(x)·ln(x) + 2·cos(x)/x - sin(x)/x².
func TestDiamondHessian(t *testing.T) {
	const a = 1.23
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(a)
	out := h.Mul(h.Sin(x), h.Ln(x))
	_, hess := h.ReverseAccumulateAt(out.Index)

	want := -math.Sin(a)*math.Log(a) + 2*math.Cos(a)/a - math.Sin(a)/(a*a)
	assert.InEpsilon(t, want, float64(hess[0][0]), 1e-13)
}

func TestHessianSymmetry(t *testing.T) {
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(1.23)
	y := h.CreateVariable(0.66)
	z := h.CreateVariable(2.34)
	out := h.Div(h.Cos(x), h.Mul(h.Add(x, y), h.Sin(z)))
	_, hess := h.ReverseAccumulateAt(out.Index)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, float64(hess[i][j]), float64(hess[j][i]), 1e-15,
				"hessian not symmetric at (%d,%d)", i, j)
		}
	}
}

// Cross-check the spec composite's Hessian against central finite
// differences of the closed-form function.
func TestHessianAgainstFiniteDifferences(t *testing.T) {
	f := func(p []float64) float64 {
		return math.Cos(p[0]) / ((p[0] + p[1]) * math.Sin(p[2]))
	}
	at := []float64{1.23, 0.66, 2.34}

	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(scalar.Real(at[0]))
	y := h.CreateVariable(scalar.Real(at[1]))
	z := h.CreateVariable(scalar.Real(at[2]))
	out := h.Div(h.Cos(x), h.Mul(h.Add(x, y), h.Sin(z)))
	_, hess := h.ReverseAccumulateAt(out.Index)

	const step = 1e-5
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			fd := centralSecond(f, at, i, j, step)
			assert.InDelta(t, fd, float64(hess[i][j]), 1e-4, "H[%d][%d]", i, j)
		}
	}
}

// centralSecond estimates ∂²f/∂xi∂xj by central differences.
func centralSecond(f func([]float64) float64, at []float64, i, j int, h float64) float64 {
	shift := func(di, dj float64) float64 {
		p := append([]float64(nil), at...)
		p[i] += di
		p[j] += dj
		return f(p)
	}
	if i == j {
		return (shift(h, 0) - 2*f(at) + shift(-h, 0)) / (h * h)
	}
	return (shift(h, h) - shift(h, -h) - shift(-h, h) + shift(-h, -h)) / (4 * h * h)
}

func TestHessianGradientConsistency(t *testing.T) {
	build := func(h *realHTape) realVar {
		x := h.CreateVariable(1.23)
		y := h.CreateVariable(0.66)
		return h.Mul(h.Sin(x), h.Exp(y))
	}

	h1 := tape.NewHessianTape[scalar.Real]()
	out1 := build(h1)
	grad, hess := h1.ReverseAccumulateAt(out1.Index)

	h2 := tape.NewHessianTape[scalar.Real]()
	out2 := build(h2)
	gradOnly := h2.ReverseAccumulateGradientAt(out2.Index)
	hessOnly := h2.ReverseAccumulateHessianAt(out2.Index)

	require.Equal(t, grad, gradOnly)
	require.Equal(t, hess, hessOnly)
}

// Seeding at a checkpointed interior node yields the Hessian of that
// sub-expression, unaffected by later recordings.
func TestHessianCheckpointSeed(t *testing.T) {
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(1.23)
	u := h.Exp(x)
	cp := h.CreateCheckpoint(u)

	// Downstream work must not affect the checkpointed seed.
	_ = h.Mul(u, h.Sin(x))

	grad, hess := h.ReverseAccumulateAt(cp.Index)
	assert.InEpsilon(t, math.Exp(1.23), float64(grad[0]), 1e-13)
	assert.InEpsilon(t, math.Exp(1.23), float64(hess[0][0]), 1e-13)
}

func TestHessianConstantOperands(t *testing.T) {
	// f(x) = x³ via PowConstant: f'' = 6x.
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(1.23)
	out := h.PowConstant(x, 3)
	grad, hess := h.ReverseAccumulateAt(out.Index)

	assert.InEpsilon(t, 3*1.23*1.23, float64(grad[0]), 1e-13)
	assert.InEpsilon(t, 6*1.23, float64(hess[0][0]), 1e-13)

	// f(x) = c/x: f'' = 2c/x³.
	h2 := tape.NewHessianTape[scalar.Real]()
	x2 := h2.CreateVariable(1.23)
	out2 := h2.ConstantDiv(2.5, x2)
	_, hess2 := h2.ReverseAccumulateAt(out2.Index)
	assert.InEpsilon(t, 2*2.5/(1.23*1.23*1.23), float64(hess2[0][0]), 1e-13)
}

func TestHessianCustomOperation(t *testing.T) {
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(1.23)
	out := h.CustomOperation(x,
		scalar.Real.Sin,
		scalar.Real.Cos,
		func(v scalar.Real) scalar.Real { return v.Sin().Neg() },
	)
	grad, hess := h.ReverseAccumulateAt(out.Index)

	builtin := tape.NewHessianTape[scalar.Real]()
	bx := builtin.CreateVariable(1.23)
	bout := builtin.Sin(bx)
	bgrad, bhess := builtin.ReverseAccumulateAt(bout.Index)

	require.Equal(t, bgrad, grad)
	require.Equal(t, bhess, hess)
}

func TestHessianCustomOperationBinary(t *testing.T) {
	// f(x, y) = x²y with hand-supplied partials.
	h := tape.NewHessianTape[scalar.Real]()
	x := h.CreateVariable(1.23)
	y := h.CreateVariable(0.66)
	out := h.CustomOperationBinary(x, y,
		func(a, b scalar.Real) scalar.Real { return a.Mul(a).Mul(b) },
		func(a, b scalar.Real) scalar.Real { return a.FromFloat64(2).Mul(a).Mul(b) },
		func(a, b scalar.Real) scalar.Real { return a.Mul(a) },
		func(a, b scalar.Real) scalar.Real { return a.FromFloat64(2).Mul(b) },
		func(a, b scalar.Real) scalar.Real { return a.FromFloat64(2).Mul(a) },
		func(a, b scalar.Real) scalar.Real { return a.FromFloat64(0) },
	)
	grad, hess := h.ReverseAccumulateAt(out.Index)

	assert.InEpsilon(t, 2*1.23*0.66, float64(grad[0]), 1e-13)
	assert.InEpsilon(t, 1.23*1.23, float64(grad[1]), 1e-13)
	assert.InEpsilon(t, 2*0.66, float64(hess[0][0]), 1e-13)
	assert.InEpsilon(t, 2*1.23, float64(hess[0][1]), 1e-13)
	assert.Equal(t, scalar.Real(0), hess[1][1])
}

func TestHessianInvalidSeedPanics(t *testing.T) {
	h := tape.NewHessianTape[scalar.Real]()
	_ = h.CreateVariable(1.23)
	require.Panics(t, func() { h.ReverseAccumulateAt(5) })
}

func TestComplexHessianTape(t *testing.T) {
	z0 := complex(0.8, 0.4)

	h := tape.NewHessianTape[scalar.Complex]()
	z := h.CreateVariable(scalar.Complex(z0))
	// f(z) = exp(z²): f' = 2z·e^(z²), f'' = (2 + 4z²)·e^(z²).
	out := h.Exp(h.Mul(z, z))
	grad, hess := h.ReverseAccumulateAt(out.Index)

	e := complex128(scalar.Complex(z0 * z0).Exp())
	wantGrad := 2 * z0 * e
	wantHess := (2 + 4*z0*z0) * e
	assert.InDelta(t, real(wantGrad), real(complex128(grad[0])), 1e-13)
	assert.InDelta(t, imag(wantGrad), imag(complex128(grad[0])), 1e-13)
	assert.InDelta(t, real(wantHess), real(complex128(hess[0][0])), 1e-13)
	assert.InDelta(t, imag(wantHess), imag(complex128(hess[0][0])), 1e-13)
}
