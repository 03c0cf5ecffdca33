package diff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scalargrad/diff"
	"github.com/born-ml/scalargrad/scalar"
	"github.com/born-ml/scalargrad/tape"
)

type gt = tape.GradientTape[scalar.Real]
type ht = tape.HessianTape[scalar.Real]
type rv = tape.Variable[scalar.Real]

func TestDerivative(t *testing.T) {
	value, deriv := diff.Derivative(func(t *gt, x rv) rv {
		return t.Mul(t.Sin(x), t.Ln(x))
	}, 1.23)

	assert.InEpsilon(t, math.Sin(1.23)*math.Log(1.23), value, 1e-14)
	assert.InEpsilon(t, math.Cos(1.23)*math.Log(1.23)+math.Sin(1.23)/1.23, deriv, 1e-14)
}

func TestGradient(t *testing.T) {
	f := func(t *gt, x []rv) rv { return t.Mul(t.Sin(x[0]), x[1]) }

	grad, err := diff.Gradient(f, []float64{1.23, 0.66})
	require.NoError(t, err)
	assert.InEpsilon(t, 0.66*math.Cos(1.23), grad[0], 1e-14)
	assert.InEpsilon(t, math.Sin(1.23), grad[1], 1e-14)

	_, err = diff.Gradient(f, nil)
	assert.Error(t, err)
}

func TestJacobian(t *testing.T) {
	fs := []diff.Func{
		func(t *gt, x []rv) rv { return t.Mul(x[0], x[1]) },
		func(t *gt, x []rv) rv { return t.Add(x[0], x[1]) },
	}

	j, err := diff.Jacobian(fs, []float64{1.23, 0.66})
	require.NoError(t, err)

	assert.InEpsilon(t, 0.66, j.At(0, 0), 1e-14)
	assert.InEpsilon(t, 1.23, j.At(0, 1), 1e-14)
	assert.InEpsilon(t, 1.0, j.At(1, 0), 1e-14)
	assert.InEpsilon(t, 1.0, j.At(1, 1), 1e-14)
}

func TestHessian(t *testing.T) {
	// f(x, y) = x² + x·y: H = [[2, 1], [1, 0]].
	f := func(t *ht, x []rv) rv {
		return t.Add(t.PowConstant(x[0], 2), t.Mul(x[0], x[1]))
	}

	h, err := diff.Hessian(f, []float64{1.23, 0.66})
	require.NoError(t, err)
	assert.InDelta(t, 2, h.At(0, 0), 1e-13)
	assert.InDelta(t, 1, h.At(0, 1), 1e-13)
	assert.InDelta(t, 1, h.At(1, 0), 1e-13)
	assert.InDelta(t, 0, h.At(1, 1), 1e-13)
}

func TestLaplacian(t *testing.T) {
	// ∇²(x² + y²) = 4 everywhere.
	f := func(t *ht, x []rv) rv {
		return t.Add(t.PowConstant(x[0], 2), t.PowConstant(x[1], 2))
	}

	l, err := diff.Laplacian(f, []float64{1.23, 0.66})
	require.NoError(t, err)
	assert.InDelta(t, 4, l, 1e-13)
}

func TestDirectionalDerivative(t *testing.T) {
	f := func(t *gt, x []rv) rv { return t.Mul(x[0], x[1]) }

	d, err := diff.DirectionalDerivative(f, []float64{1.23, 0.66}, []float64{1, -1})
	require.NoError(t, err)
	assert.InEpsilon(t, 0.66-1.23, d, 1e-14)

	_, err = diff.DirectionalDerivative(f, []float64{1.23, 0.66}, []float64{1})
	assert.Error(t, err)
}

func TestDivergence(t *testing.T) {
	// ∇·(x, y, z) = 3.
	fs := []diff.Func{
		func(t *gt, x []rv) rv { return t.AddConstant(x[0], 0) },
		func(t *gt, x []rv) rv { return t.AddConstant(x[1], 0) },
		func(t *gt, x []rv) rv { return t.AddConstant(x[2], 0) },
	}

	d, err := diff.Divergence(fs, []float64{1.23, 0.66, 2.34})
	require.NoError(t, err)
	assert.InDelta(t, 3, d, 1e-13)
}

func TestCurl(t *testing.T) {
	// ∇×(-y, x, 0) = (0, 0, 2).
	fs := [3]diff.Func{
		func(t *gt, x []rv) rv { return t.Neg(x[1]) },
		func(t *gt, x []rv) rv { return t.AddConstant(x[0], 0) },
		func(t *gt, x []rv) rv { return t.MulConstant(x[2], 0) },
	}

	c, err := diff.Curl(fs, []float64{1.23, 0.66, 2.34})
	require.NoError(t, err)
	assert.InDelta(t, 0, c[0], 1e-13)
	assert.InDelta(t, 0, c[1], 1e-13)
	assert.InDelta(t, 2, c[2], 1e-13)
}

func TestVJPMatchesJVP(t *testing.T) {
	fs := []diff.Func{
		func(t *gt, x []rv) rv { return t.Mul(x[0], x[1]) },
		func(t *gt, x []rv) rv { return t.Sin(x[0]) },
	}
	at := []float64{1.23, 0.66}

	// vᵀJ against the explicit Jacobian.
	vjp, err := diff.VJP(fs, at, []float64{2, -1})
	require.NoError(t, err)
	j, err := diff.Jacobian(fs, at)
	require.NoError(t, err)
	assert.InDelta(t, 2*j.At(0, 0)-j.At(1, 0), vjp[0], 1e-13)
	assert.InDelta(t, 2*j.At(0, 1)-j.At(1, 1), vjp[1], 1e-13)

	// J·v against the same Jacobian.
	jvp, err := diff.JVP(fs, at, []float64{0.5, 1.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*j.At(0, 0)+1.5*j.At(0, 1), jvp[0], 1e-13)
	assert.InDelta(t, 0.5*j.At(1, 0)+1.5*j.At(1, 1), jvp[1], 1e-13)

	_, err = diff.VJP(fs, at, []float64{1})
	assert.Error(t, err)
}
