// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package diff provides vector-calculus conveniences on top of the
// tape: gradients, Jacobians, Hessians, divergence, curl, Laplacian,
// directional derivatives and vector-Jacobian / Jacobian-vector
// products of real-valued functions built from tape operations.
//
// Functions are expressed as callbacks that record onto a supplied
// tape:
//
//	f := func(t *tape.GradientTape[scalar.Real], x []tape.Variable[scalar.Real]) tape.Variable[scalar.Real] {
//	    return t.Mul(t.Sin(x[0]), x[1])
//	}
//	grad, err := diff.Gradient(f, []float64{1.23, 0.66})
package diff

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/scalargrad/scalar"
	"github.com/born-ml/scalargrad/tape"
)

// Func records a scalar field ℝⁿ→ℝ onto a gradient tape.
type Func func(t *tape.GradientTape[scalar.Real], x []tape.Variable[scalar.Real]) tape.Variable[scalar.Real]

// HessianFunc records a scalar field ℝⁿ→ℝ onto a Hessian tape.
type HessianFunc func(t *tape.HessianTape[scalar.Real], x []tape.Variable[scalar.Real]) tape.Variable[scalar.Real]

func liftGradient(t *tape.GradientTape[scalar.Real], at []float64) []tape.Variable[scalar.Real] {
	vars := make([]tape.Variable[scalar.Real], len(at))
	for i, v := range at {
		vars[i] = t.CreateVariable(scalar.Real(v))
	}
	return vars
}

func liftHessian(t *tape.HessianTape[scalar.Real], at []float64) []tape.Variable[scalar.Real] {
	vars := make([]tape.Variable[scalar.Real], len(at))
	for i, v := range at {
		vars[i] = t.CreateVariable(scalar.Real(v))
	}
	return vars
}

func toFloats(xs []scalar.Real) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

// Derivative evaluates f: ℝ→ℝ at x and returns its value and first
// derivative.
func Derivative(f func(t *tape.GradientTape[scalar.Real], x tape.Variable[scalar.Real]) tape.Variable[scalar.Real], x float64) (value, derivative float64) {
	t := tape.NewGradientTape[scalar.Real]()
	v := t.CreateVariable(scalar.Real(x))
	out := f(t, v)
	grad := t.ReverseAccumulateAt(out.Index)
	return float64(out.Value), float64(grad[0])
}

// Gradient evaluates ∇f at the given point.
func Gradient(f Func, at []float64) ([]float64, error) {
	if len(at) == 0 {
		return nil, errors.Errorf("diff: empty evaluation point")
	}
	t := tape.NewGradientTape[scalar.Real]()
	out := f(t, liftGradient(t, at))
	return toFloats(t.ReverseAccumulateAt(out.Index)), nil
}

// Jacobian evaluates the m×n Jacobian of the component functions fs at
// the given point. All components share a single tape; each row comes
// from one reverse sweep seeded at that component's output node.
func Jacobian(fs []Func, at []float64) (*mat.Dense, error) {
	if len(fs) == 0 || len(at) == 0 {
		return nil, errors.Errorf("diff: Jacobian needs at least one component and one coordinate")
	}
	t := tape.NewGradientTape[scalar.Real]()
	vars := liftGradient(t, at)
	j := mat.NewDense(len(fs), len(at), nil)
	for i, f := range fs {
		out := f(t, vars)
		j.SetRow(i, toFloats(t.ReverseAccumulateAt(out.Index)))
	}
	return j, nil
}

// Hessian evaluates the symmetric n×n Hessian of f at the given point.
func Hessian(f HessianFunc, at []float64) (*mat.SymDense, error) {
	if len(at) == 0 {
		return nil, errors.Errorf("diff: empty evaluation point")
	}
	t := tape.NewHessianTape[scalar.Real]()
	out := f(t, liftHessian(t, at))
	hess := t.ReverseAccumulateHessianAt(out.Index)
	s := mat.NewSymDense(len(at), nil)
	for i := 0; i < len(at); i++ {
		for j := i; j < len(at); j++ {
			s.SetSym(i, j, float64(hess[i][j]))
		}
	}
	return s, nil
}

// Laplacian evaluates ∇²f, the trace of the Hessian, at the given
// point.
func Laplacian(f HessianFunc, at []float64) (float64, error) {
	h, err := Hessian(f, at)
	if err != nil {
		return 0, err
	}
	return mat.Trace(h), nil
}

// DirectionalDerivative evaluates ∇f·dir at the given point. The
// direction is not normalized.
func DirectionalDerivative(f Func, at, dir []float64) (float64, error) {
	if len(dir) != len(at) {
		return 0, errors.Errorf("diff: direction has %d components, point has %d", len(dir), len(at))
	}
	grad, err := Gradient(f, at)
	if err != nil {
		return 0, err
	}
	return floats.Dot(grad, dir), nil
}

// Divergence evaluates ∇·F for a vector field with one component per
// coordinate.
func Divergence(fs []Func, at []float64) (float64, error) {
	if len(fs) != len(at) {
		return 0, errors.Errorf("diff: field has %d components, point has %d", len(fs), len(at))
	}
	j, err := Jacobian(fs, at)
	if err != nil {
		return 0, err
	}
	return mat.Trace(j), nil
}

// Curl evaluates ∇×F for a three-component field at a point in ℝ³.
func Curl(fs [3]Func, at []float64) ([3]float64, error) {
	if len(at) != 3 {
		return [3]float64{}, errors.Errorf("diff: curl needs a point in ℝ³, got %d coordinates", len(at))
	}
	j, err := Jacobian(fs[:], at)
	if err != nil {
		return [3]float64{}, err
	}
	return [3]float64{
		j.At(2, 1) - j.At(1, 2),
		j.At(0, 2) - j.At(2, 0),
		j.At(1, 0) - j.At(0, 1),
	}, nil
}

// VJP evaluates the vector-Jacobian product vᵀJ in a single reverse
// sweep by seeding the weighted sum v·F.
func VJP(fs []Func, at, v []float64) ([]float64, error) {
	if len(v) != len(fs) {
		return nil, errors.Errorf("diff: weight vector has %d components, field has %d", len(v), len(fs))
	}
	if len(fs) == 0 || len(at) == 0 {
		return nil, errors.Errorf("diff: VJP needs at least one component and one coordinate")
	}
	t := tape.NewGradientTape[scalar.Real]()
	vars := liftGradient(t, at)
	sum := t.MulConstant(fs[0](t, vars), scalar.Real(v[0]))
	for i := 1; i < len(fs); i++ {
		sum = t.Add(sum, t.MulConstant(fs[i](t, vars), scalar.Real(v[i])))
	}
	return toFloats(t.ReverseAccumulateAt(sum.Index)), nil
}

// JVP evaluates the Jacobian-vector product J·v. Reverse mode computes
// rows, so this assembles the full Jacobian first; prefer VJP when the
// field has many components.
func JVP(fs []Func, at, v []float64) ([]float64, error) {
	if len(v) != len(at) {
		return nil, errors.Errorf("diff: tangent vector has %d components, point has %d", len(v), len(at))
	}
	j, err := Jacobian(fs, at)
	if err != nil {
		return nil, err
	}
	out := mat.NewVecDense(len(fs), nil)
	out.MulVec(j, mat.NewVecDense(len(v), v))
	return out.RawVector().Data, nil
}
