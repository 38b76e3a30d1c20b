package ntru

import (
	"fmt"
)

// Sampler is the fast-Fourier preimage sampler of one NTRU basis
// B = [[g, -f], [G, -F]]. It is read-only after NewSampler and may be shared;
// randomness comes from the SamplerZ passed to each call.
type Sampler struct {
	Par Params

	basis    [2][2][]int64
	basisFFT GramFFT
	gram     GramFFT
	tree     LDLTree
}

// NewSampler precomputes the FFT basis, its Gram matrix and the normalized LDL tree.
func NewSampler(f, g, F, G []int64, par Params) (*Sampler, error) {
	for _, p := range [][]int64{f, g, F, G} {
		if len(p) != par.N {
			return nil, fmt.Errorf("%w: polynomial of length %d for degree %d", ErrParameter, len(p), par.N)
		}
	}
	S := &Sampler{Par: par}
	S.basis = [2][2][]int64{{g, negInt(f)}, {G, negInt(F)}}
	for i := range S.basis {
		for j := range S.basis[i] {
			S.basisFFT[i][j] = FFTInt(S.basis[i][j])
		}
	}
	S.BuildGram()
	if e := logger.Debug(); e.Enabled() {
		e.Int("n", par.N).Floats64("leaves", Leaves(S.tree)).Msg("sampler ready")
	}
	return S, nil
}

// BuildGram (re)computes the Gram matrix and the LDL tree normalized to Par.Sigma.
func (S *Sampler) BuildGram() {
	S.gram = Gram(S.basisFFT)
	S.tree = FFLDL(S.gram)
	Normalize(S.tree, S.Par.Sigma)
}

// Basis returns the integer basis [[g, -f], [G, -F]].
func (S *Sampler) Basis() [2][2][]int64 { return S.basis }

// GramMatrix returns the Gram matrix in the FFT domain.
func (S *Sampler) GramMatrix() GramFFT { return S.gram }

// Tree returns the normalized LDL tree.
func (S *Sampler) Tree() LDLTree { return S.tree }

// FFSampling samples z close to t along the tree, both in the FFT domain.
func FFSampling(t [2][]complex128, T LDLTree, sigmin float64, sz *SamplerZ) [2][]complex128 {
	switch node := T.(type) {
	case *LDLNode:
		t10, t11 := SplitFFT(t[1])
		z1p := FFSampling([2][]complex128{t10, t11}, node.Right, sigmin, sz)
		z1 := MergeFFT(z1p[0], z1p[1])
		tb0 := AddFFT(t[0], MulFFT(SubFFT(t[1], z1), node.L10))
		t00, t01 := SplitFFT(tb0)
		z0p := FFSampling([2][]complex128{t00, t01}, node.Left, sigmin, sz)
		return [2][]complex128{MergeFFT(z0p[0], z0p[1]), z1}
	case *LDLLeaf:
		sigma := real(node.Value[0])
		z0 := sz.Sample(real(t[0][0]), sigma, sigmin)
		z1 := sz.Sample(real(t[1][0]), sigma, sigmin)
		return [2][]complex128{{complex(float64(z0), 0)}, {complex(float64(z1), 0)}}
	default:
		panic(fmt.Sprintf("ntru: unexpected LDL tree node %T", T))
	}
}

// SamplePreimage returns a short (s0, s1) with s0 + s1*h = point mod q.
func (S *Sampler) SamplePreimage(point []int64, sz *SamplerZ) (s0, s1 []int64) {
	pf := FFTInt(point)
	a, b := S.basisFFT[0][0], S.basisFFT[0][1]
	c, d := S.basisFFT[1][0], S.basisFFT[1][1]
	n := len(pf)
	t0 := make([]complex128, n)
	t1 := make([]complex128, n)
	for i := range pf {
		t0[i] = pf[i] * d[i] / Q
		t1[i] = -pf[i] * b[i] / Q
	}
	z := FFSampling([2][]complex128{t0, t1}, S.tree, S.Par.SigMin, sz)
	v0 := IFFTRound(AddFFT(MulFFT(z[0], a), MulFFT(z[1], c)))
	v1 := IFFTRound(AddFFT(MulFFT(z[0], b), MulFFT(z[1], d)))
	s0 = make([]int64, n)
	s1 = make([]int64, n)
	for i := range point {
		s0[i] = point[i] - v0[i]
		s1[i] = -v1[i]
	}
	return s0, s1
}

func negInt(a []int64) []int64 {
	out := make([]int64, len(a))
	for i, v := range a {
		out[i] = -v
	}
	return out
}
