package ntru

import (
	"fmt"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func testSampler(t *testing.T, n int) (*Sampler, testBasis) {
	t.Helper()
	k := testKey(t, n)
	par, _ := ParamsFor(n)
	S, err := NewSampler(k.f, k.g, k.F, k.G, par)
	if err != nil {
		t.Fatalf("NewSampler(%d): %v", n, err)
	}
	return S, k
}

func TestLDLTreeLeaves(t *testing.T) {
	for _, n := range testDegrees(t) {
		S, _ := testSampler(t, n)
		leaves := Leaves(S.Tree())
		if len(leaves) != n {
			t.Fatalf("n=%d: %d leaves", n, len(leaves))
		}
		for i, l := range leaves {
			if l < S.Par.SigMin*0.99 || l > MaxSigma {
				t.Fatalf("n=%d: leaf %d deviation %f outside [%f, %f]", n, i, l, S.Par.SigMin, MaxSigma)
			}
		}
	}
}

func TestGramIsSelfAdjoint(t *testing.T) {
	S, _ := testSampler(t, 16)
	G := S.GramMatrix()
	for i := range G[0][1] {
		if cmplx.Abs(G[0][1][i]-cmplx.Conj(G[1][0][i])) > 1e-6 {
			t.Fatalf("G01 != adj(G10) at slot %d", i)
		}
		if imag(G[0][0][i]) > 1e-6 || real(G[0][0][i]) <= 0 {
			t.Fatalf("G00 slot %d not positive real: %v", i, G[0][0][i])
		}
	}
}

func TestLDLReconstructsGram(t *testing.T) {
	S, _ := testSampler(t, 8)
	G := S.GramMatrix()
	L10, D00, D11 := ldlFFT(G)
	// G11 = L10 D00 adj(L10) + D11
	G11 := AddFFT(MulFFT(MulFFT(L10, D00), AdjFFT(L10)), D11)
	for i := range G11 {
		if cmplx.Abs(G11[i]-G[1][1][i]) > 1e-6*cmplx.Abs(G[1][1][i]) {
			t.Fatalf("slot %d: %v vs %v", i, G11[i], G[1][1][i])
		}
	}
}

func TestSamplePreimageIsPreimage(t *testing.T) {
	for _, n := range testDegrees(t) {
		S, k := testSampler(t, n)
		zr, _ := RingFor(n)
		h, _ := zr.Div(k.g, k.f)
		sz := NewSamplerZ(NewRNG([]byte(fmt.Sprintf("preimage %d", n))))
		point, _ := HashToPoint([]byte("preimage"), make([]byte, SaltLen), n)
		var total float64
		const reps = 10
		for r := 0; r < reps; r++ {
			s0, s1 := S.SamplePreimage(point, sz)
			if got := zr.Add(s0, zr.Mul(s1, h)); !equalInt64(got, point) {
				t.Fatalf("n=%d: s0 + s1*h != point", n)
			}
			total += float64(squareNorm(s0) + squareNorm(s1))
		}
		if mean := total / reps; mean > 1.2*float64(S.Par.SigBound) {
			t.Fatalf("n=%d: mean squared norm %f far above bound %d", n, mean, S.Par.SigBound)
		}
	}
}

func TestFormatTree(t *testing.T) {
	S, _ := testSampler(t, 4)
	out := FormatTree(S.Tree())
	if got := strings.Count(out, "|____>"); got != 4 {
		t.Fatalf("%d leaves drawn:\n%s", got, out)
	}
	if !strings.Contains(out, treeBranch) {
		t.Fatalf("no branches drawn:\n%s", out)
	}
}

func TestNewSamplerRejectsLength(t *testing.T) {
	par, _ := ParamsFor(8)
	if _, err := NewSampler(make([]int64, 4), make([]int64, 8), make([]int64, 8), make([]int64, 8), par); err == nil {
		t.Fatalf("short f accepted")
	}
}

func TestNewSamplerDebugLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if logger.Debug().Enabled() {
		t.Fatal("debug event enabled at warn level")
	}
	testSampler(t, 8)

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	if !logger.Debug().Enabled() {
		t.Fatal("debug event disabled at debug level")
	}
	S, _ := testSampler(t, 8)
	if got := len(Leaves(S.Tree())); got != 8 {
		t.Fatalf("got %d leaves, want 8", got)
	}
}
