package ntru

import (
	"math/big"
)

// MulNegacyclicZZ multiplies integer polynomials mod x^n+1 exactly; the
// boolean is false if a coefficient overflows int64.
func MulNegacyclicZZ(a, b []int64) ([]int64, bool) {
	return IntPolyFromInt64(a).MulNegacyclic(IntPolyFromInt64(b)).Int64s()
}

// CheckNTRUIdentity verifies f*G - g*F == q in Z[x]/(x^n+1).
func CheckNTRUIdentity(f, g, F, G []int64) bool {
	n := len(f)
	if len(g) != n || len(F) != n || len(G) != n {
		return false
	}
	return checkNTRUIdentityBig(IntPolyFromInt64(f), IntPolyFromInt64(g), IntPolyFromInt64(F), IntPolyFromInt64(G))
}

func checkNTRUIdentityBig(f, g, F, G IntPoly) bool {
	d := f.MulNegacyclic(G).Sub(g.MulNegacyclic(F))
	if d.Coeffs[0].Cmp(big.NewInt(Q)) != 0 {
		return false
	}
	for _, c := range d.Coeffs[1:] {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// CheckPublicKey reports whether h*f == g mod q.
func CheckPublicKey(f, g, h []int64) bool {
	zr, err := RingFor(len(f))
	if err != nil || len(g) != len(f) || len(h) != len(f) {
		return false
	}
	hf := zr.Mul(h, f)
	for i, v := range zr.Reduce(g) {
		if hf[i] != v {
			return false
		}
	}
	return true
}
