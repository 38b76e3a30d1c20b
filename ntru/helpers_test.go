package ntru

import (
	"math/rand"
)

// naiveMulModQ is schoolbook multiplication mod (x^n+1, q).
func naiveMulModQ(a, b []int64) []int64 {
	n := len(a)
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := a[i] * b[j] % Q
			if i+j < n {
				out[i+j] += p
			} else {
				out[i+j-n] -= p
			}
		}
	}
	for i := range out {
		out[i] %= Q
		if out[i] < 0 {
			out[i] += Q
		}
	}
	return out
}

// naiveMul is exact schoolbook multiplication mod x^n+1.
func naiveMul(a, b []int64) []int64 {
	n := len(a)
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i+j < n {
				out[i+j] += a[i] * b[j]
			} else {
				out[i+j-n] -= a[i] * b[j]
			}
		}
	}
	return out
}

func randPoly(r *rand.Rand, n int, bound int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = r.Int63n(2*bound+1) - bound
	}
	return out
}

func equalInt64(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
