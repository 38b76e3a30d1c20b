package ntru

import (
	"fmt"
	"io"
	"math"

	"github.com/holiman/uint256"
)

const (
	// MaxSigma is the largest deviation the base sampler supports.
	MaxSigma = 1.8205

	inv2Sigma2 = 1 / (2 * MaxSigma * MaxSigma)
	rcdtBytes  = 72 >> 3
	ln2        = 0.69314718056
	invLn2     = 1.44269504089
)

// rcdt is the reverse cumulative table of a half-Gaussian of deviation MaxSigma, 72-bit precision.
var rcdt = decimals(
	"3024686241123004913666", "1564742784480091954050", "636254429462080897535",
	"199560484645026482916", "47667343854657281903", "8595902006365044063",
	"1163297957344668388", "117656387352093658", "8867391802663976",
	"496969357462633", "20680885154299", "638331848991", "14602316184",
	"247426747", "3104126", "28824", "198", "1",
)

// expCoeffs approximate 2^63 * exp(-x) on [0, ln 2] (FACCT).
var expCoeffs = [...]uint64{
	0x00000004741183A3, 0x00000036548CFC06, 0x0000024FDCBF140A,
	0x0000171D939DE045, 0x0000D00CF58F6F84, 0x000680681CF796E3,
	0x002D82D8305B0FEA, 0x011111110E066FD0, 0x0555555555070F00,
	0x155555555581FF00, 0x400000000002B400, 0x7FFFFFFFFFFF4800,
	0x8000000000000000,
}

func decimals(ds ...string) []*uint256.Int {
	out := make([]*uint256.Int, len(ds))
	for i, d := range ds {
		out[i] = uint256.MustFromDecimal(d)
	}
	return out
}

// SamplerZ draws integers from a discrete Gaussian. It is not safe for
// concurrent use; give each goroutine its own.
type SamplerZ struct {
	rng  io.Reader
	buf  [rcdtBytes]byte
	u    uint256.Int
	y, z uint256.Int
}

// NewSamplerZ builds a sampler reading randomness from rng.
func NewSamplerZ(rng io.Reader) *SamplerZ {
	return &SamplerZ{rng: rng}
}

func (s *SamplerZ) read(dst []byte) {
	if _, err := io.ReadFull(s.rng, dst); err != nil {
		panic(fmt.Errorf("ntru: sampler randomness: %w", err))
	}
}

func (s *SamplerZ) readByte() int {
	s.read(s.buf[:1])
	return int(s.buf[0])
}

// base returns z0 in {0, ..., 18} following the half-Gaussian of deviation MaxSigma.
func (s *SamplerZ) base() int {
	s.read(s.buf[:])
	var be [rcdtBytes]byte
	for i, b := range s.buf {
		be[rcdtBytes-1-i] = b
	}
	s.u.SetBytes(be[:])
	z0 := 0
	for _, t := range rcdt {
		if s.u.Lt(t) {
			z0++
		}
	}
	return z0
}

// approxExp returns an integer approximation of 2^63 * ccs * exp(-x), x in [0, ln 2].
func (s *SamplerZ) approxExp(x, ccs float64) *uint256.Int {
	if x < 0 {
		x = 0
	}
	y, z := &s.y, &s.z
	y.SetUint64(expCoeffs[0])
	z.SetUint64(uint64(x * (1 << 63)))
	var c uint256.Int
	for _, k := range expCoeffs[1:] {
		y.Mul(z, y)
		y.Rsh(y, 63)
		c.SetUint64(k)
		y.Sub(&c, y)
	}
	z.SetUint64(uint64(ccs * (1 << 63)))
	z.Lsh(z, 1)
	y.Mul(z, y)
	y.Rsh(y, 63)
	return y
}

// bernoulliExp returns true with probability ccs * exp(-x).
func (s *SamplerZ) bernoulliExp(x, ccs float64) bool {
	sh := int(x * invLn2)
	r := x - float64(sh)*ln2
	if sh > 63 {
		sh = 63
	}
	var one uint256.Int
	one.SetOne()
	e := s.approxExp(r, ccs)
	e.Sub(e, &one)
	e.Rsh(e, uint(sh))
	z := e.Uint64()
	w := 0
	for i := 56; i >= 0; i -= 8 {
		w = s.readByte() - int((z>>uint(i))&0xFF)
		if w != 0 {
			break
		}
	}
	return w < 0
}

// Sample returns an integer distributed as the discrete Gaussian of center mu
// and deviation sigma. Callers guarantee sigmin <= sigma <= MaxSigma.
func (s *SamplerZ) Sample(mu, sigma, sigmin float64) int64 {
	fl := math.Floor(mu)
	r := mu - fl
	dss := 1 / (2 * sigma * sigma)
	ccs := sigmin / sigma
	for {
		z0 := s.base()
		b := s.readByte() & 1
		z := b + (2*b-1)*z0
		d := float64(z) - r
		x := d*d*dss - float64(z0*z0)*inv2Sigma2
		if s.bernoulliExp(x, ccs) {
			return int64(z) + int64(fl)
		}
	}
}
