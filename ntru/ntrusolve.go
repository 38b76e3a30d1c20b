package ntru

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrNoSolution is returned when f, g admit no NTRU completion.
var ErrNoSolution = errors.New("ntru: no solution to the NTRU equation")

// babaiWindow is the number of top bits kept when reducing in floating point.
const babaiWindow = 53

// NTRUSolve finds F, G with f*G - g*F = q mod x^n+1. The result is
// checked exactly in big-integer arithmetic before it is returned.
func NTRUSolve(f, g []int64) (F, G []int64, err error) {
	if len(f) != len(g) {
		return nil, nil, fmt.Errorf("%w: f and g differ in length", ErrParameter)
	}
	if _, ok := logDegree(len(f)); !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedDegree, len(f))
	}
	fp, gp := IntPolyFromInt64(f), IntPolyFromInt64(g)
	Fp, Gp, err := ntruSolve(fp, gp)
	if err != nil {
		return nil, nil, err
	}
	if !checkNTRUIdentityBig(fp, gp, Fp, Gp) {
		return nil, nil, fmt.Errorf("%w: identity check failed", ErrNoSolution)
	}
	var okF, okG bool
	F, okF = Fp.Int64s()
	G, okG = Gp.Int64s()
	if !okF || !okG {
		return nil, nil, fmt.Errorf("%w: coefficients overflow int64", ErrNoSolution)
	}
	return F, G, nil
}

func ntruSolve(f, g IntPoly) (F, G IntPoly, err error) {
	n := len(f.Coeffs)
	if n == 1 {
		u, v, d := extGCD(f.Coeffs[0], g.Coeffs[0])
		if d.Cmp(big.NewInt(1)) != 0 {
			return IntPoly{}, IntPoly{}, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNoSolution, f.Coeffs[0], g.Coeffs[0], d)
		}
		q := big.NewInt(Q)
		F = IntPoly{Coeffs: []*big.Int{new(big.Int).Neg(new(big.Int).Mul(q, v))}}
		G = IntPoly{Coeffs: []*big.Int{new(big.Int).Mul(q, u)}}
		return F, G, nil
	}
	Fp, Gp, err := ntruSolve(f.FieldNorm(), g.FieldNorm())
	if err != nil {
		return IntPoly{}, IntPoly{}, err
	}
	F = Fp.Lift().MulNegacyclic(g.GaloisConjugate())
	G = Gp.Lift().MulNegacyclic(f.GaloisConjugate())
	F, G = babaiReduce(f, g, F, G)
	return F, G, nil
}

// babaiReduce shrinks (F, G) by integer multiples of (f, g), working on the
// top babaiWindow bits of each polynomial.
func babaiReduce(f, g, F, G IntPoly) (IntPoly, IntPoly) {
	size := max(babaiWindow, f.BitSize(), g.BitSize())
	fa := FFT(topBits(f, size))
	ga := FFT(topBits(g, size))
	den := AddFFT(MulFFT(fa, AdjFFT(fa)), MulFFT(ga, AdjFFT(ga)))
	for {
		cur := max(babaiWindow, F.BitSize(), G.BitSize())
		if cur < size {
			break
		}
		Fa := FFT(topBits(F, cur))
		Ga := FFT(topBits(G, cur))
		num := AddFFT(MulFFT(Fa, AdjFFT(fa)), MulFFT(Ga, AdjFFT(ga)))
		k := IFFTRound(DivFFT(num, den))
		if allZero(k) {
			break
		}
		kp := IntPolyFromInt64(k)
		shift := uint(cur - size)
		F = F.Sub(f.MulNegacyclic(kp).Lsh(shift))
		G = G.Sub(g.MulNegacyclic(kp).Lsh(shift))
	}
	return F, G
}

// topBits returns p >> (size - babaiWindow) as floats.
func topBits(p IntPoly, size int) []float64 {
	shift := uint(size - babaiWindow)
	out := make([]float64, len(p.Coeffs))
	t := new(big.Int)
	for i, c := range p.Coeffs {
		t.Rsh(c, shift)
		if t.IsInt64() {
			out[i] = float64(t.Int64())
		} else {
			out[i], _ = new(big.Float).SetInt(t).Float64()
		}
	}
	return out
}

func allZero(a []int64) bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}
	return true
}
