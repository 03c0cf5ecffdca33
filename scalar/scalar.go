// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scalar provides the numeric types differentiated by the
// tape: Real (float64) and Complex (complex128), plus the Scalar and
// RealScalar capability constraints they satisfy.
//
// Example:
//
//	import (
//	    "github.com/born-ml/scalargrad/scalar"
//	    "github.com/born-ml/scalargrad/tape"
//	)
//
//	t := tape.NewGradientTape[scalar.Real]()
//	x := t.CreateVariable(1.23)
//	_ = t.Sin(x)
package scalar

import "github.com/born-ml/scalargrad/internal/scalar"

// Scalar is the capability required of a tape element type: field
// arithmetic plus the elementary-function catalog.
type Scalar[T any] = scalar.Scalar[T]

// RealScalar extends Scalar with the real-only operations (Atan2,
// Mod). Complex does not satisfy it.
type RealScalar[T any] = scalar.RealScalar[T]

// Real is a float64-backed real scalar.
type Real = scalar.Real

// Complex is a complex128-backed complex scalar.
type Complex = scalar.Complex
