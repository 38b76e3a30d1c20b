package ntru

import (
	"errors"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// ErrNotInvertible is returned when a divisor has a zero NTT slot.
var ErrNotInvertible = errors.New("ntru: polynomial is not invertible mod q")

// Reduce maps every coefficient of a into [0,q).
func (zr *ZqRing) Reduce(a []int64) []int64 {
	return zr.fromPoly(zr.toPoly(a))
}

// Add returns a+b mod (x^n+1, q).
func (zr *ZqRing) Add(a, b []int64) []int64 {
	pa, pb := zr.toPoly(a), zr.toPoly(b)
	zr.r.Add(pa, pb, pa)
	return zr.fromPoly(pa)
}

// Sub returns a-b mod (x^n+1, q).
func (zr *ZqRing) Sub(a, b []int64) []int64 {
	pa, pb := zr.toPoly(a), zr.toPoly(b)
	zr.r.Sub(pa, pb, pa)
	return zr.fromPoly(pa)
}

// Neg returns -a mod (x^n+1, q).
func (zr *ZqRing) Neg(a []int64) []int64 {
	pa := zr.toPoly(a)
	zr.r.Neg(pa, pa)
	return zr.fromPoly(pa)
}

// Mul returns a*b mod (x^n+1, q).
func (zr *ZqRing) Mul(a, b []int64) []int64 {
	pa, pb := zr.toPoly(a), zr.toPoly(b)
	zr.r.MForm(pa, pa)
	zr.r.MForm(pb, pb)
	zr.r.NTT(pa, pa)
	zr.r.NTT(pb, pb)
	res := zr.r.NewPoly()
	zr.r.MulCoeffsMontgomery(pa, pb, res)
	zr.r.InvNTT(res, res)
	zr.r.InvMForm(res, res)
	return zr.fromPoly(res)
}

// Div returns a/b mod (x^n+1, q), or ErrNotInvertible.
func (zr *ZqRing) Div(a, b []int64) ([]int64, error) {
	pa, pb := zr.toPoly(a), zr.toPoly(b)
	zr.r.NTT(pa, pa)
	zr.r.NTT(pb, pb)
	ca, cb := pa.Coeffs[0], pb.Coeffs[0]
	for i := range cb {
		d := cb[i] % Q
		if d == 0 {
			return nil, ErrNotInvertible
		}
		ca[i] = (ca[i] % Q) * ring.ModExp(d, Q-2, Q) % Q
	}
	zr.r.InvNTT(pa, pa)
	return zr.fromPoly(pa), nil
}

// NTT returns the evaluation slots of a. For degrees below 16 every
// evaluation appears 16/n times.
func (zr *ZqRing) NTT(a []int64) []uint64 {
	pa := zr.toPoly(a)
	zr.r.NTT(pa, pa)
	out := make([]uint64, len(pa.Coeffs[0]))
	for i, v := range pa.Coeffs[0] {
		out[i] = v % Q
	}
	return out
}

// IsInvertible reports whether a has no zero NTT slot.
func (zr *ZqRing) IsInvertible(a []int64) bool {
	for _, v := range zr.NTT(a) {
		if v == 0 {
			return false
		}
	}
	return true
}
