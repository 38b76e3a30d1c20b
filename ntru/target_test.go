package ntru

import (
	"bytes"
	"errors"
	"testing"
)

func TestHashToPointDeterministicAndInRange(t *testing.T) {
	for _, n := range Degrees() {
		a, err := HashToPoint([]byte("message"), bytes.Repeat([]byte{7}, SaltLen), n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		b, _ := HashToPoint([]byte("message"), bytes.Repeat([]byte{7}, SaltLen), n)
		if !equalInt64(a, b) {
			t.Fatalf("n=%d: HashToPoint not deterministic", n)
		}
		for i, v := range a {
			if v < 0 || v >= Q {
				t.Fatalf("n=%d: coefficient %d = %d outside [0,q)", n, i, v)
			}
		}
		c, _ := HashToPoint([]byte("message"), bytes.Repeat([]byte{8}, SaltLen), n)
		if n >= 8 && equalInt64(a, c) {
			t.Fatalf("n=%d: salt ignored", n)
		}
	}
}

func TestHashToPointRejectsLargeModulus(t *testing.T) {
	if _, err := hashToPoint([]byte("m"), nil, 8, 1<<16+1); !errors.Is(err, ErrModulusTooLarge) {
		t.Fatalf("got %v", err)
	}
	if _, err := hashToPoint([]byte("m"), nil, 8, 1<<16); err != nil {
		t.Fatalf("q = 2^16 should be accepted: %v", err)
	}
}

func TestHashToPointUniform(t *testing.T) {
	const buckets = 64
	var expected [buckets]float64
	for v := 0; v < Q; v++ {
		expected[v*buckets/Q]++
	}
	var counts [buckets]float64
	total := 0
	for i := 0; i < 200; i++ {
		salt := []byte{byte(i), byte(i >> 8)}
		p, err := HashToPoint([]byte("uniformity"), salt, 1024)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range p {
			counts[int(v)*buckets/Q]++
		}
		total += len(p)
	}
	var chi2 float64
	for b := range counts {
		e := expected[b] / Q * float64(total)
		d := counts[b] - e
		chi2 += d * d / e
	}
	// 63 degrees of freedom: mean 63, sd ~11.2
	if chi2 > 130 {
		t.Fatalf("chi-square %f over %d samples", chi2, total)
	}
}
