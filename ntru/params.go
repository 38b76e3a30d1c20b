package ntru

import (
	"errors"
	"fmt"
)

// Q is the Falcon modulus.
const Q = 12289

const (
	// HeadLen is the length of the signature header.
	HeadLen = 1
	// SaltLen is the length of the per-signature salt.
	SaltLen = 40
)

var (
	// ErrParameter is the parent of every parameter error.
	ErrParameter = errors.New("ntru: invalid parameter")
	// ErrUnsupportedDegree is returned for degrees outside {2, 4, ..., 1024}.
	ErrUnsupportedDegree = fmt.Errorf("%w: unsupported degree", ErrParameter)
)

// Params holds the per-degree Falcon constants.
type Params struct {
	N          int
	LogN       int
	Sigma      float64 // signing standard deviation
	SigMin     float64 // smallest leaf deviation
	SigBound   int64   // squared-norm bound on (s0, s1)
	SigByteLen int     // total signature length in bytes
}

var paramTable = [...]Params{
	{N: 2, LogN: 1, Sigma: 144.81, SigMin: 1.116, SigBound: 101498, SigByteLen: 44},
	{N: 4, LogN: 2, Sigma: 146.84, SigMin: 1.132, SigBound: 208714, SigByteLen: 47},
	{N: 8, LogN: 3, Sigma: 148.84, SigMin: 1.148, SigBound: 428865, SigByteLen: 52},
	{N: 16, LogN: 4, Sigma: 151.78, SigMin: 1.170, SigBound: 892039, SigByteLen: 63},
	{N: 32, LogN: 5, Sigma: 154.67, SigMin: 1.193, SigBound: 1852696, SigByteLen: 82},
	{N: 64, LogN: 6, Sigma: 157.51, SigMin: 1.214, SigBound: 3842630, SigByteLen: 122},
	{N: 128, LogN: 7, Sigma: 160.30, SigMin: 1.236, SigBound: 7959734, SigByteLen: 200},
	{N: 256, LogN: 8, Sigma: 163.04, SigMin: 1.257, SigBound: 16468416, SigByteLen: 356},
	{N: 512, LogN: 9, Sigma: 165.74, SigMin: 1.278, SigBound: 34034726, SigByteLen: 666},
	{N: 1024, LogN: 10, Sigma: 168.39, SigMin: 1.298, SigBound: 70265242, SigByteLen: 1280},
}

// ParamsFor returns the parameter set for degree n.
func ParamsFor(n int) (Params, error) {
	logn, ok := logDegree(n)
	if !ok {
		return Params{}, fmt.Errorf("%w: %d", ErrUnsupportedDegree, n)
	}
	return paramTable[logn-1], nil
}

// Degrees lists every supported degree in increasing order.
func Degrees() []int {
	out := make([]int, len(paramTable))
	for i, p := range paramTable {
		out[i] = p.N
	}
	return out
}

// Header is the first signature byte for this degree.
func (p Params) Header() byte {
	return byte(0x30 + p.LogN)
}

// logDegree returns log2(n) when n is a supported degree.
func logDegree(n int) (int, bool) {
	if n < 2 || n > 1024 || n&(n-1) != 0 {
		return 0, false
	}
	logn := 0
	for m := n; m > 1; m >>= 1 {
		logn++
	}
	return logn, true
}
