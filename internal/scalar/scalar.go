// Package scalar defines the numeric capability consumed by the tape:
// arithmetic plus a catalog of elementary functions with known analytic
// derivatives up to second order.
//
// Two implementations are provided: Real (float64) and Complex
// (complex128). Complex implements only the holomorphic catalog; the
// real-only operations (Atan2, Mod) live on the narrower RealScalar
// constraint so they cannot be invoked on a complex tape.
package scalar

// Scalar is the capability shared by all tape element types.
//
// Methods never mutate the receiver; every operation returns a new
// value. One and FromFloat64 exist because Go generics provide no
// literal of type T: callers lift constants through an existing value
// (typically the zero value).
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T

	Sin() T
	Cos() T
	Tan() T
	Asin() T
	Acos() T
	Atan() T
	Sinh() T
	Cosh() T
	Tanh() T
	Asinh() T
	Acosh() T
	Atanh() T

	Exp() T
	Exp2() T
	Exp10() T
	Ln() T
	Log2() T
	Log10() T
	Sqrt() T
	Cbrt() T
	Pow(T) T

	// Conj returns the complex conjugate; for real scalars it is the
	// identity.
	Conj() T

	// One returns the multiplicative identity of T. The receiver value
	// is irrelevant.
	One() T

	// FromFloat64 lifts a real constant into T. The receiver value is
	// irrelevant.
	FromFloat64(float64) T

	IsZero() bool

	String() string
}

// RealScalar extends Scalar with the operations that have no
// holomorphic counterpart. Tape operations needing these are
// package-level functions constrained on RealScalar, so a complex tape
// simply does not expose them.
type RealScalar[T any] interface {
	Scalar[T]

	// Atan2 returns atan2(r, x) where the receiver r is the ordinate.
	Atan2(x T) T

	// Mod returns the truncated-division remainder r mod x.
	Mod(x T) T

	Trunc() T

	Float64() float64
}
