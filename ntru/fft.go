package ntru

import (
	"math"
	"math/cmplx"
)

// fftRoots[logn] holds the n roots of x^n+1 in split/merge order:
// roots[2i]^2 is the i-th root for n/2 and roots[2i+1] = -roots[2i].
var fftRoots [11][]complex128

func init() {
	angles := []float64{math.Pi / 2, -math.Pi / 2}
	fftRoots[1] = rootsFromAngles(angles)
	for logn := 2; logn <= 10; logn++ {
		next := make([]float64, 2*len(angles))
		for i, a := range angles {
			next[2*i] = a / 2
			next[2*i+1] = a/2 + math.Pi
		}
		angles = next
		fftRoots[logn] = rootsFromAngles(angles)
	}
}

func rootsFromAngles(angles []float64) []complex128 {
	out := make([]complex128, len(angles))
	for i, a := range angles {
		out[i] = cmplx.Rect(1, a)
	}
	return out
}

func rootsFor(n int) []complex128 {
	logn, ok := logDegree(n)
	if !ok {
		panic("ntru: fft degree must be a power of two in [2, 1024]")
	}
	return fftRoots[logn]
}

// SplitFFT maps f(x) = f0(x^2) + x f1(x^2) to (f0, f1) in the FFT domain.
func SplitFFT(f []complex128) (f0, f1 []complex128) {
	n := len(f)
	w := rootsFor(n)
	f0 = make([]complex128, n/2)
	f1 = make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		f0[i] = 0.5 * (f[2*i] + f[2*i+1])
		f1[i] = 0.5 * (f[2*i] - f[2*i+1]) * cmplx.Conj(w[2*i])
	}
	return f0, f1
}

// MergeFFT is the inverse of SplitFFT.
func MergeFFT(f0, f1 []complex128) []complex128 {
	n := 2 * len(f0)
	w := rootsFor(n)
	f := make([]complex128, n)
	for i := range f0 {
		t := w[2*i] * f1[i]
		f[2*i] = f0[i] + t
		f[2*i+1] = f0[i] - t
	}
	return f
}

// Split separates even and odd coefficients.
func Split(f []float64) (f0, f1 []float64) {
	n := len(f)
	f0 = make([]float64, n/2)
	f1 = make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		f0[i] = f[2*i]
		f1[i] = f[2*i+1]
	}
	return f0, f1
}

// Merge interleaves f0 and f1.
func Merge(f0, f1 []float64) []float64 {
	f := make([]float64, 2*len(f0))
	for i := range f0 {
		f[2*i] = f0[i]
		f[2*i+1] = f1[i]
	}
	return f
}

// FFT evaluates a real polynomial at the roots of x^n+1.
func FFT(f []float64) []complex128 {
	n := len(f)
	if n == 2 {
		return []complex128{complex(f[0], f[1]), complex(f[0], -f[1])}
	}
	f0, f1 := Split(f)
	return MergeFFT(FFT(f0), FFT(f1))
}

// IFFT interpolates back to real coefficients. Values are not rounded.
func IFFT(F []complex128) []float64 {
	n := len(F)
	if n == 2 {
		return []float64{real(F[0]), imag(F[0])}
	}
	F0, F1 := SplitFFT(F)
	return Merge(IFFT(F0), IFFT(F1))
}

// FFTInt is FFT on integer coefficients.
func FFTInt(f []int64) []complex128 {
	return FFT(toFloat(f))
}

// IFFTRound interpolates and rounds every coefficient to the nearest integer.
func IFFTRound(F []complex128) []int64 {
	v := IFFT(F)
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = roundFloat(x)
	}
	return out
}

// AddFFT returns a+b slot-wise.
func AddFFT(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// SubFFT returns a-b slot-wise.
func SubFFT(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// NegFFT returns -a.
func NegFFT(a []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = -a[i]
	}
	return out
}

// MulFFT is ring multiplication in the FFT domain.
func MulFFT(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

// DivFFT is ring division in the FFT domain; b must have no zero slot.
func DivFFT(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = a[i] / b[i]
	}
	return out
}

// AdjFFT returns the Hermitian adjoint f(1/x), a slot-wise conjugate.
func AdjFFT(a []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i := range a {
		out[i] = cmplx.Conj(a[i])
	}
	return out
}

// AddFloat adds real polynomials.
func AddFloat(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// MulFloat multiplies real polynomials mod x^n+1 through the FFT.
func MulFloat(a, b []float64) []float64 {
	return IFFT(MulFFT(FFT(a), FFT(b)))
}

// DivFloat divides real polynomials mod x^n+1 through the FFT.
func DivFloat(a, b []float64) []float64 {
	return IFFT(DivFFT(FFT(a), FFT(b)))
}

// AdjFloat returns f(1/x) mod x^n+1: f0, -f(n-1), ..., -f1.
func AdjFloat(a []float64) []float64 {
	n := len(a)
	out := make([]float64, n)
	out[0] = a[0]
	for i := 1; i < n; i++ {
		out[i] = -a[n-i]
	}
	return out
}

func toFloat(a []int64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = float64(v)
	}
	return out
}

// roundFloat rounds half to even and maps NaN or infinities to zero.
func roundFloat(x float64) int64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int64(math.RoundToEven(x))
}
