package ntru

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
)

type testBasis struct{ f, g, F, G []int64 }

var (
	keyCacheMu sync.Mutex
	keyCache   = map[int]testBasis{}
)

// testKey returns a deterministic basis for degree n, generated once per test binary.
func testKey(t testing.TB, n int) testBasis {
	t.Helper()
	keyCacheMu.Lock()
	defer keyCacheMu.Unlock()
	if k, ok := keyCache[n]; ok {
		return k
	}
	f, g, F, G, err := Keygen(context.Background(), n, NewRNG([]byte(fmt.Sprintf("test key %d", n))), KeygenOpts{})
	if err != nil {
		t.Fatalf("Keygen(%d): %v", n, err)
	}
	k := testBasis{f, g, F, G}
	keyCache[n] = k
	return k
}

func testDegrees(t *testing.T) []int {
	if testing.Short() {
		return []int{2, 4, 8, 16, 32, 64}
	}
	return Degrees()
}

func TestKeygenSatisfiesNTRUEquation(t *testing.T) {
	for _, n := range testDegrees(t) {
		k := testKey(t, n)
		if !CheckNTRUIdentity(k.f, k.g, k.F, k.G) {
			t.Fatalf("n=%d: f*G - g*F != q", n)
		}
		zr, _ := RingFor(n)
		if !zr.IsInvertible(k.f) {
			t.Fatalf("n=%d: f not invertible", n)
		}
		if gs := GSNorm(k.f, k.g); gs > gsBoundFactor*Q {
			t.Fatalf("n=%d: accepted key with Gram-Schmidt norm %f", n, gs)
		}
		h, err := zr.Div(k.g, k.f)
		if err != nil {
			t.Fatalf("n=%d: h: %v", n, err)
		}
		if !CheckPublicKey(k.f, k.g, h) {
			t.Fatalf("n=%d: h*f != g", n)
		}
	}
}

func TestKeygenDeterministic(t *testing.T) {
	f1, g1, F1, G1, err := Keygen(context.Background(), 16, NewRNG([]byte("same")), KeygenOpts{})
	if err != nil {
		t.Fatal(err)
	}
	f2, g2, F2, G2, err := Keygen(context.Background(), 16, NewRNG([]byte("same")), KeygenOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if !equalInt64(f1, f2) || !equalInt64(g1, g2) || !equalInt64(F1, F2) || !equalInt64(G1, G2) {
		t.Fatalf("same seed gave different keys")
	}
}

func TestKeygenParallelWorkers(t *testing.T) {
	f, g, F, G, err := Keygen(context.Background(), 32, NewRNG([]byte("workers")), KeygenOpts{Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !CheckNTRUIdentity(f, g, F, G) {
		t.Fatalf("parallel keygen returned an invalid basis")
	}
}

func TestKeygenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, _, err := Keygen(ctx, 64, NewRNG(nil), KeygenOpts{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestKeygenTrialLimit(t *testing.T) {
	// A single candidate rarely passes at n=1024; whichever way it goes the
	// result must be a valid key or ErrKeygenExhausted.
	if testing.Short() {
		t.Skip("n=1024")
	}
	f, g, F, G, err := Keygen(context.Background(), 1024, NewRNG([]byte("limit")), KeygenOpts{MaxTrials: 1})
	if err != nil {
		if !errors.Is(err, ErrKeygenExhausted) {
			t.Fatalf("got %v", err)
		}
		return
	}
	if !CheckNTRUIdentity(f, g, F, G) {
		t.Fatalf("invalid basis")
	}
}

func TestKeygenUnsupportedDegree(t *testing.T) {
	if _, _, _, _, err := Keygen(context.Background(), 3, NewRNG(nil), KeygenOpts{}); !errors.Is(err, ErrUnsupportedDegree) {
		t.Fatalf("got %v", err)
	}
}

func TestGSNormOfIdentityBasis(t *testing.T) {
	// f = 1, g = 0: ||(f,g)||^2 = 1 and the second vector has norm q.
	f := []int64{1, 0, 0, 0}
	g := []int64{0, 0, 0, 0}
	if got := GSNorm(f, g); math.Abs(got-float64(Q)*Q) > 1e-3 {
		t.Fatalf("GSNorm = %f, want q^2", got)
	}
}

func TestGenPolyDeviation(t *testing.T) {
	sz := NewSamplerZ(NewRNG([]byte("genpoly")))
	const n = 64
	var sum, sq float64
	const reps = 40
	for r := 0; r < reps; r++ {
		for _, v := range GenPoly(n, sz) {
			sum += float64(v)
			sq += float64(v * v)
		}
	}
	cnt := float64(n * reps)
	variance := sq/cnt - (sum/cnt)*(sum/cnt)
	want := sigmaFG * sigmaFG * genPolySamples / n
	if variance < 0.8*want || variance > 1.2*want {
		t.Fatalf("variance %f, want ~%f", variance, want)
	}
}

func TestNTRUSolveRejectsEvenResultants(t *testing.T) {
	// f = g = 2: gcd of the norms is even, so no solution exists.
	f := []int64{2, 0, 0, 0}
	g := []int64{2, 0, 0, 0}
	if _, _, err := NTRUSolve(f, g); !errors.Is(err, ErrNoSolution) {
		t.Fatalf("got %v, want ErrNoSolution", err)
	}
}

func TestNTRUSolveSmallKnown(t *testing.T) {
	// f = 1, g = 0 has the solution G = q, F = 0.
	F, G, err := NTRUSolve([]int64{1, 0}, []int64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !CheckNTRUIdentity([]int64{1, 0}, []int64{0, 0}, F, G) {
		t.Fatalf("F=%v G=%v", F, G)
	}
}
