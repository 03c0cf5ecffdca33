// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tape provides reverse-mode automatic differentiation of
// scalar expressions: a recorded computation graph supporting gradient
// accumulation (GradientTape) and gradient+Hessian accumulation
// (HessianTape), over real or complex scalars.
//
// Example:
//
//	t := tape.NewGradientTape[scalar.Real]()
//	x := t.CreateVariable(1.23)
//	y := t.Div(t.Mul(t.Sin(x), t.Ln(x)), t.Exp(t.Neg(x)))
//	grad := t.ReverseAccumulate()
//	_, _ = y, grad
package tape

import (
	"github.com/born-ml/scalargrad/internal/tape"
	"github.com/born-ml/scalargrad/scalar"
)

// GradientTape records a computation graph with first-order local
// partials and accumulates gradients in a single reverse sweep.
type GradientTape[T scalar.Scalar[T]] = tape.GradientTape[T]

// HessianTape additionally records second-order local partials and
// accumulates Hessians with the edge-pushing reverse sweep.
type HessianTape[T scalar.Scalar[T]] = tape.HessianTape[T]

// Variable pairs a primal value with its tape node index.
type Variable[T scalar.Scalar[T]] = tape.Variable[T]

// Checkpoint is a reusable reference to an already-recorded node,
// usable as an alternate reverse-accumulation seed.
type Checkpoint[T scalar.Scalar[T]] = tape.Checkpoint[T]

// Recorder is the recording surface shared by both tape kinds; the
// real-only operations accept it so they work on either.
type Recorder[T scalar.Scalar[T]] = tape.Recorder[T]

// DefaultLogNodeLimit is the node cap of LogNodes when no explicit
// limit is passed.
const DefaultLogNodeLimit = tape.DefaultLogNodeLimit

// NewGradientTape creates an empty gradient tape.
func NewGradientTape[T scalar.Scalar[T]]() *GradientTape[T] {
	return tape.NewGradientTape[T]()
}

// NewHessianTape creates an empty Hessian tape.
func NewHessianTape[T scalar.Scalar[T]]() *HessianTape[T] {
	return tape.NewHessianTape[T]()
}

// Atan2 records v = atan2(y, x). Real scalars only.
func Atan2[T scalar.RealScalar[T]](t Recorder[T], y, x Variable[T]) Variable[T] {
	return tape.Atan2(t, y, x)
}

// Atan2Constant records v = atan2(y, c). Real scalars only.
func Atan2Constant[T scalar.RealScalar[T]](t Recorder[T], y Variable[T], c T) Variable[T] {
	return tape.Atan2Constant(t, y, c)
}

// ConstantAtan2 records v = atan2(c, x). Real scalars only.
func ConstantAtan2[T scalar.RealScalar[T]](t Recorder[T], c T, x Variable[T]) Variable[T] {
	return tape.ConstantAtan2(t, c, x)
}

// Modulo records v = x mod y. Real scalars only.
func Modulo[T scalar.RealScalar[T]](t Recorder[T], x, y Variable[T]) Variable[T] {
	return tape.Modulo(t, x, y)
}

// ModuloConstant records v = x mod c. Real scalars only.
func ModuloConstant[T scalar.RealScalar[T]](t Recorder[T], x Variable[T], c T) Variable[T] {
	return tape.ModuloConstant(t, x, c)
}

// ConstantModulo records v = c mod y. Real scalars only.
func ConstantModulo[T scalar.RealScalar[T]](t Recorder[T], c T, y Variable[T]) Variable[T] {
	return tape.ConstantModulo(t, c, y)
}
