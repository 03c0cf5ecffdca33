package scalar

import (
	"math"
	"math/cmplx"
	"strconv"
)

// Complex is a double-precision complex scalar. It implements
// Scalar[Complex] (not RealScalar: atan2 and mod have no holomorphic
// extension) on top of math/cmplx.
type Complex complex128

var _ Scalar[Complex] = Complex(0)

func (x Complex) Add(y Complex) Complex { return x + y }
func (x Complex) Sub(y Complex) Complex { return x - y }
func (x Complex) Mul(y Complex) Complex { return x * y }
func (x Complex) Div(y Complex) Complex { return x / y }
func (x Complex) Neg() Complex          { return -x }

func (x Complex) Sin() Complex   { return Complex(cmplx.Sin(complex128(x))) }
func (x Complex) Cos() Complex   { return Complex(cmplx.Cos(complex128(x))) }
func (x Complex) Tan() Complex   { return Complex(cmplx.Tan(complex128(x))) }
func (x Complex) Asin() Complex  { return Complex(cmplx.Asin(complex128(x))) }
func (x Complex) Acos() Complex  { return Complex(cmplx.Acos(complex128(x))) }
func (x Complex) Atan() Complex  { return Complex(cmplx.Atan(complex128(x))) }
func (x Complex) Sinh() Complex  { return Complex(cmplx.Sinh(complex128(x))) }
func (x Complex) Cosh() Complex  { return Complex(cmplx.Cosh(complex128(x))) }
func (x Complex) Tanh() Complex  { return Complex(cmplx.Tanh(complex128(x))) }
func (x Complex) Asinh() Complex { return Complex(cmplx.Asinh(complex128(x))) }
func (x Complex) Acosh() Complex { return Complex(cmplx.Acosh(complex128(x))) }
func (x Complex) Atanh() Complex { return Complex(cmplx.Atanh(complex128(x))) }

func (x Complex) Exp() Complex { return Complex(cmplx.Exp(complex128(x))) }
func (x Complex) Exp2() Complex {
	return Complex(cmplx.Exp(complex128(x) * complex(math.Ln2, 0)))
}
func (x Complex) Exp10() Complex {
	return Complex(cmplx.Exp(complex128(x) * complex(math.Log(10), 0)))
}
func (x Complex) Ln() Complex { return Complex(cmplx.Log(complex128(x))) }
func (x Complex) Log2() Complex {
	return Complex(cmplx.Log(complex128(x)) / complex(math.Ln2, 0))
}
func (x Complex) Log10() Complex { return Complex(cmplx.Log10(complex128(x))) }
func (x Complex) Sqrt() Complex  { return Complex(cmplx.Sqrt(complex128(x))) }
func (x Complex) Cbrt() Complex {
	return Complex(cmplx.Pow(complex128(x), complex(1.0/3.0, 0)))
}

func (x Complex) Pow(y Complex) Complex {
	return Complex(cmplx.Pow(complex128(x), complex128(y)))
}

func (x Complex) Conj() Complex { return Complex(cmplx.Conj(complex128(x))) }

func (x Complex) One() Complex                  { return 1 }
func (x Complex) FromFloat64(v float64) Complex { return Complex(complex(v, 0)) }
func (x Complex) IsZero() bool                  { return x == 0 }

func (x Complex) String() string {
	return strconv.FormatComplex(complex128(x), 'g', -1, 128)
}
