package ntru

import (
	"math/big"
)

// IntPoly is a polynomial of Z[x]/(x^n+1) with arbitrary-precision coefficients.
type IntPoly struct {
	Coeffs []*big.Int
}

// NewIntPoly allocates a zero IntPoly of size n.
func NewIntPoly(n int) IntPoly {
	coeffs := make([]*big.Int, n)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
	}
	return IntPoly{Coeffs: coeffs}
}

// IntPolyFromInt64 copies small coefficients into an IntPoly.
func IntPolyFromInt64(a []int64) IntPoly {
	p := NewIntPoly(len(a))
	for i, v := range a {
		p.Coeffs[i].SetInt64(v)
	}
	return p
}

// Int64s returns the coefficients as int64, or false if one does not fit.
func (p IntPoly) Int64s() ([]int64, bool) {
	out := make([]int64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		if !c.IsInt64() {
			return nil, false
		}
		out[i] = c.Int64()
	}
	return out, true
}

// Add adds two IntPolys.
func (p IntPoly) Add(q IntPoly) IntPoly {
	r := NewIntPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Add(p.Coeffs[i], q.Coeffs[i])
	}
	return r
}

// Sub subtracts q from p.
func (p IntPoly) Sub(q IntPoly) IntPoly {
	r := NewIntPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Sub(p.Coeffs[i], q.Coeffs[i])
	}
	return r
}

// Neg negates polynomial.
func (p IntPoly) Neg() IntPoly {
	r := NewIntPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Neg(p.Coeffs[i])
	}
	return r
}

// Lsh multiplies every coefficient by 2^s.
func (p IntPoly) Lsh(s uint) IntPoly {
	r := NewIntPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Lsh(p.Coeffs[i], s)
	}
	return r
}

// MulNegacyclic multiplies p and q mod x^n+1 with Karatsuba.
func (p IntPoly) MulNegacyclic(q IntPoly) IntPoly {
	n := len(p.Coeffs)
	ab := karatsuba(p.Coeffs, q.Coeffs)
	r := NewIntPoly(n)
	for i := 0; i < n; i++ {
		r.Coeffs[i].Sub(ab[i], ab[i+n])
	}
	return r
}

// karatsuba returns the full 2n-coefficient product of a and b.
func karatsuba(a, b []*big.Int) []*big.Int {
	n := len(a)
	if n == 1 {
		return []*big.Int{new(big.Int).Mul(a[0], b[0]), new(big.Int)}
	}
	m := n / 2
	a0, a1 := a[:m], a[m:]
	b0, b1 := b[:m], b[m:]
	ax := make([]*big.Int, m)
	bx := make([]*big.Int, m)
	for i := 0; i < m; i++ {
		ax[i] = new(big.Int).Add(a0[i], a1[i])
		bx[i] = new(big.Int).Add(b0[i], b1[i])
	}
	a0b0 := karatsuba(a0, b0)
	a1b1 := karatsuba(a1, b1)
	axbx := karatsuba(ax, bx)
	for i := 0; i < n; i++ {
		axbx[i].Sub(axbx[i], a0b0[i])
		axbx[i].Sub(axbx[i], a1b1[i])
	}
	ab := make([]*big.Int, 2*n)
	for i := range ab {
		ab[i] = new(big.Int)
	}
	for i := 0; i < n; i++ {
		ab[i].Add(ab[i], a0b0[i])
		ab[i+n].Add(ab[i+n], a1b1[i])
		ab[i+m].Add(ab[i+m], axbx[i])
	}
	return ab
}

// FieldNorm projects p onto Z[x]/(x^(n/2)+1): N(p) = p0^2 - x p1^2 where
// p(x) = p0(x^2) + x p1(x^2).
func (p IntPoly) FieldNorm() IntPoly {
	n := len(p.Coeffs)
	m := n / 2
	even, odd := NewIntPoly(m), NewIntPoly(m)
	for i := 0; i < m; i++ {
		even.Coeffs[i].Set(p.Coeffs[2*i])
		odd.Coeffs[i].Set(p.Coeffs[2*i+1])
	}
	e2 := even.MulNegacyclic(even)
	o2 := odd.MulNegacyclic(odd)
	r := NewIntPoly(m)
	for i := 0; i < m-1; i++ {
		r.Coeffs[i+1].Sub(e2.Coeffs[i+1], o2.Coeffs[i])
	}
	r.Coeffs[0].Add(e2.Coeffs[0], o2.Coeffs[m-1])
	return r
}

// Lift maps p(x) in Z[x]/(x^n+1) to p(x^2) in Z[x]/(x^2n+1).
func (p IntPoly) Lift() IntPoly {
	r := NewIntPoly(2 * len(p.Coeffs))
	for i, c := range p.Coeffs {
		r.Coeffs[2*i].Set(c)
	}
	return r
}

// GaloisConjugate returns p(-x).
func (p IntPoly) GaloisConjugate() IntPoly {
	r := NewIntPoly(len(p.Coeffs))
	for i, c := range p.Coeffs {
		if i%2 == 1 {
			r.Coeffs[i].Neg(c)
		} else {
			r.Coeffs[i].Set(c)
		}
	}
	return r
}

// BitSize is the largest coefficient bit length rounded up to a multiple of 8.
func (p IntPoly) BitSize() int {
	size := 0
	for _, c := range p.Coeffs {
		if b := c.BitLen(); b > size {
			size = b
		}
	}
	return (size + 7) &^ 7
}
