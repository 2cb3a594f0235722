package symdiff

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// bigSin sets z to the sine of x, to the precision of z, and returns z.
// x must be finite.
func bigSin(z, x *big.Float) *big.Float {
	r, wp := reduceAngle(x, z.Prec())
	// sin r = r - r^3/3! + r^5/5! - ...
	return z.Set(series(r, new(big.Float).SetPrec(wp).Set(r), 1, wp))
}

// bigCos sets z to the cosine of x, to the precision of z, and returns z.
// x must be finite.
func bigCos(z, x *big.Float) *big.Float {
	r, wp := reduceAngle(x, z.Prec())
	// cos r = 1 - r^2/2! + r^4/4! - ...
	return z.Set(series(r, new(big.Float).SetPrec(wp).SetInt64(1), 0, wp))
}

// reduceAngle returns x reduced to [-pi, pi] along with the working precision
// used for it. The working precision grows with the magnitude of x so that
// the reduction keeps prec significant bits.
func reduceAngle(x *big.Float, prec uint) (*big.Float, uint) {
	wp := prec + 64
	if e := x.MantExp(nil); e > 0 {
		wp += uint(e)
	}
	pi := bigfloat.Pi(new(big.Float).SetPrec(wp))
	tau := new(big.Float).SetPrec(wp).Add(pi, pi)
	r := new(big.Float).SetPrec(wp).Set(x)
	q := new(big.Float).SetPrec(wp).Quo(r, tau)
	n, _ := q.Int(nil)
	q.SetInt(n)
	r.Sub(r, q.Mul(q, tau))
	// r is now in (-2pi, 2pi).
	if r.Cmp(pi) > 0 {
		r.Sub(r, tau)
	} else if r.Cmp(new(big.Float).Neg(pi)) < 0 {
		r.Add(r, tau)
	}
	return r, wp
}

// series sums the alternating Taylor series whose first term is t and whose
// terms advance by r^2/((k+1)(k+2)), where k starts at k0. It stops when a
// term no longer affects the sum at precision wp.
func series(r, t *big.Float, k0 int64, wp uint) *big.Float {
	sum := new(big.Float).SetPrec(wp).Set(t)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	d := new(big.Float).SetPrec(wp)
	for k := k0; t.Sign() != 0; k += 2 {
		t.Mul(t, r2)
		t.Quo(t, d.SetInt64((k+1)*(k+2)))
		t.Neg(t)
		sum.Add(sum, t)
		if sum.Sign() != 0 && t.MantExp(nil) < sum.MantExp(nil)-int(wp) {
			break
		}
		if t.MantExp(nil) < -2*int(wp) {
			break
		}
	}
	return sum
}
