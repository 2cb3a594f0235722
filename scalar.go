package symdiff

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Scalar is the numeric domain of an expression. It is satisfied only by Real
// and Complex. Every rule that differs between the two domains is a method
// here; the rest of the package is written once for both.
type Scalar[T any] interface {
	Real | Complex
	fmt.Stringer

	// literal renders the value as it appears in an expression.
	literal() string
	// fromInt returns n in the domain. It does not use its receiver.
	fromInt(n int64) T
	// parse converts a number literal accepted by the lexer. It does not use
	// its receiver.
	parse(lit string) (T, error)

	neg() T
	add(y T) (T, error)
	sub(y T) (T, error)
	mul(y T) (T, error)
	quo(y T) (T, error)
	pow(y T) (T, error)
	sin() (T, error)
	cos() (T, error)
	ln() (T, error)
	exp() (T, error)
}

// RealPrec is the number of mantissa bits in a Real.
const RealPrec = 64

// maxTrigExp is the largest binary exponent of an argument to sin or cos. It
// is the exponent limit of x87 extended precision; larger arguments give NaN.
const maxTrigExp = 16384

// Real is an extended-precision real number. The zero value is 0. A Real is
// immutable; operations produce new values.
//
// Unlike big.Float, a Real can be NaN. Operations that have no real result,
// such as 0/0, Inf-Inf, or a negative number to a fractional power, produce
// NaN rather than an error, and NaN propagates through later operations.
type Real struct {
	x   *big.Float
	nan bool
}

var realNaN = Real{nan: true}

// NewReal creates a Real from a float64.
func NewReal(f float64) Real {
	if math.IsNaN(f) {
		return realNaN
	}
	return Real{x: new(big.Float).SetPrec(RealPrec).SetFloat64(f)}
}

// RealFromBig creates a Real from x, rounded to RealPrec bits.
func RealFromBig(x *big.Float) Real {
	return Real{x: new(big.Float).SetPrec(RealPrec).Set(x)}
}

// Big returns a copy of the value of r. It returns nil if r is NaN.
func (r Real) Big() *big.Float {
	if r.nan {
		return nil
	}
	return new(big.Float).SetPrec(RealPrec).Set(r.val())
}

// Float64 returns the float64 nearest to r.
func (r Real) Float64() float64 {
	if r.nan {
		return math.NaN()
	}
	f, _ := r.val().Float64()
	return f
}

// IsNaN reports whether r is NaN.
func (r Real) IsNaN() bool {
	return r.nan
}

// String formats r with the shortest decimal representation that identifies
// it uniquely at RealPrec bits.
func (r Real) String() string {
	if r.nan {
		return "NaN"
	}
	return r.val().Text('g', -1)
}

// Format implements fmt.Formatter using the formatting of *big.Float.
func (r Real) Format(s fmt.State, verb rune) {
	if r.nan {
		io.WriteString(s, "NaN")
		return
	}
	r.val().Format(s, verb)
}

func (r Real) literal() string {
	return r.String()
}

var realZero = new(big.Float).SetPrec(RealPrec)

func (r Real) val() *big.Float {
	if r.x == nil {
		return realZero
	}
	return r.x
}

func (Real) fromInt(n int64) Real {
	return Real{x: new(big.Float).SetPrec(RealPrec).SetInt64(n)}
}

func (Real) parse(lit string) (Real, error) {
	r, _, err := new(big.Float).SetPrec(RealPrec).Parse(lit, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// Literals are unsigned, so overflow is always to +Inf.
		r = new(big.Float).SetPrec(RealPrec).SetInf(false)
	default:
		return Real{}, err
	}
	return Real{x: r}, nil
}

// realOp computes a Real using f. A big.ErrNaN panic from f gives NaN.
func realOp(f func(z *big.Float)) (r Real) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if _, ok := p.(big.ErrNaN); !ok {
			panic(p)
		}
		r = realNaN
	}()
	z := new(big.Float).SetPrec(RealPrec)
	f(z)
	return Real{x: z}
}

func (r Real) neg() Real {
	if r.nan {
		return r
	}
	return Real{x: new(big.Float).SetPrec(RealPrec).Neg(r.val())}
}

func (r Real) add(y Real) (Real, error) {
	if r.nan || y.nan {
		return realNaN, nil
	}
	return realOp(func(z *big.Float) { z.Add(r.val(), y.val()) }), nil
}

func (r Real) sub(y Real) (Real, error) {
	if r.nan || y.nan {
		return realNaN, nil
	}
	return realOp(func(z *big.Float) { z.Sub(r.val(), y.val()) }), nil
}

func (r Real) mul(y Real) (Real, error) {
	if r.nan || y.nan {
		return realNaN, nil
	}
	return realOp(func(z *big.Float) { z.Mul(r.val(), y.val()) }), nil
}

func (r Real) quo(y Real) (Real, error) {
	if r.nan || y.nan {
		return realNaN, nil
	}
	// Nonzero over zero is a signed infinity. 0/0 and Inf/Inf are NaN.
	return realOp(func(z *big.Float) { z.Quo(r.val(), y.val()) }), nil
}

func (r Real) pow(y Real) (Real, error) {
	x, e := r.val(), y.val()
	if r.nan || y.nan || x.IsInf() || e.IsInf() || x.Sign() == 0 {
		return powExact(r, y), nil
	}
	if x.Sign() > 0 {
		return realOp(func(z *big.Float) { bigfloat.Pow(z, x, e) }), nil
	}
	// Negative base. The result is real only for integer exponents.
	if !e.IsInt() {
		return realNaN, nil
	}
	n, _ := e.Int(nil)
	a := new(big.Float).Abs(x)
	v := realOp(func(z *big.Float) { bigfloat.Pow(z, a, e) })
	if n.Bit(0) == 1 {
		v = v.neg()
	}
	return v, nil
}

// powExact handles exponentiation when either operand is NaN or infinite or
// the base is zero, where the float64 result is exact.
func powExact(r, y Real) Real {
	return NewReal(math.Pow(r.Float64(), y.Float64()))
}

// trigArg reports whether r is an argument for which sin and cos are
// computed rather than NaN.
func (r Real) trigArg() bool {
	if r.nan || r.val().IsInf() {
		return false
	}
	return r.val().MantExp(nil) <= maxTrigExp
}

func (r Real) sin() (Real, error) {
	if !r.trigArg() {
		return realNaN, nil
	}
	return Real{x: bigSin(new(big.Float).SetPrec(RealPrec), r.val())}, nil
}

func (r Real) cos() (Real, error) {
	if !r.trigArg() {
		return realNaN, nil
	}
	return Real{x: bigCos(new(big.Float).SetPrec(RealPrec), r.val())}, nil
}

// ln is the natural logarithm. It is the only Real operation that can fail.
func (r Real) ln() (Real, error) {
	switch {
	case r.nan:
		return r, nil
	case r.val().Sign() <= 0:
		return Real{}, &DomainError{X: r.String(), Func: "ln"}
	case r.val().IsInf():
		return r, nil
	}
	return realOp(func(z *big.Float) { bigfloat.Log(z, r.val()) }), nil
}

func (r Real) exp() (Real, error) {
	if r.nan {
		return r, nil
	}
	if x := r.val(); x.IsInf() {
		if x.Signbit() {
			return Real{}.fromInt(0), nil
		}
		return r, nil
	}
	return realOp(func(z *big.Float) { bigfloat.Exp(z, r.val()) }), nil
}

// Complex is a complex number with float64 real and imaginary parts. All
// operations on Complex are total; results that would be undefined are NaN.
type Complex complex128

// NewComplex creates a Complex from its real and imaginary parts.
func NewComplex(re, im float64) Complex {
	return Complex(complex(re, im))
}

// Real returns the real part of c.
func (c Complex) Real() float64 {
	return real(complex128(c))
}

// Imag returns the imaginary part of c.
func (c Complex) Imag() float64 {
	return imag(complex128(c))
}

// String formats c like "(1+2i)".
func (c Complex) String() string {
	return strconv.FormatComplex(complex128(c), 'g', -1, 128)
}

// literal renders c as a plain real number when it has no imaginary part,
// which is the case for every constant the parser creates. Other values use
// the form of String, which the grammar cannot read back since it has no
// imaginary literals.
func (c Complex) literal() string {
	if c.Imag() == 0 {
		return strconv.FormatFloat(c.Real(), 'g', -1, 64)
	}
	return c.String()
}

func (Complex) fromInt(n int64) Complex {
	return Complex(complex(float64(n), 0))
}

func (Complex) parse(lit string) (Complex, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return Complex(complex(f, 0)), nil
}

func (c Complex) neg() Complex { return -c }
func (c Complex) add(y Complex) (Complex, error) { return c + y, nil }
func (c Complex) sub(y Complex) (Complex, error) { return c - y, nil }
func (c Complex) mul(y Complex) (Complex, error) { return c * y, nil }
func (c Complex) quo(y Complex) (Complex, error) { return c / y, nil }

func (c Complex) pow(y Complex) (Complex, error) {
	return Complex(cmplx.Pow(complex128(c), complex128(y))), nil
}

func (c Complex) sin() (Complex, error) { return Complex(cmplx.Sin(complex128(c))), nil }
func (c Complex) cos() (Complex, error) { return Complex(cmplx.Cos(complex128(c))), nil }

// ln is the principal logarithm. It has no domain restriction.
func (c Complex) ln() (Complex, error) { return Complex(cmplx.Log(complex128(c))), nil }

func (c Complex) exp() (Complex, error) { return Complex(cmplx.Exp(complex128(c))), nil }
