package ntru

import (
	"fmt"
	"sync"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// minRingDegree is the smallest degree lattigo builds a ring for.
const minRingDegree = 16

// ZqRing is Z_q[x]/(x^n+1) backed by a lattigo ring. Degrees below
// minRingDegree live in the degree-16 ring through x -> y^(16/n).
type ZqRing struct {
	n      int
	stride int
	r      *ring.Ring
}

var ringCache [11]struct {
	once sync.Once
	zr   *ZqRing
	err  error
}

// RingFor returns the shared ring for degree n.
func RingFor(n int) (*ZqRing, error) {
	logn, ok := logDegree(n)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDegree, n)
	}
	c := &ringCache[logn]
	c.once.Do(func() {
		c.zr, c.err = buildRing(n)
	})
	return c.zr, c.err
}

func buildRing(n int) (*ZqRing, error) {
	m := n
	if m < minRingDegree {
		m = minRingDegree
	}
	logger.Debug().Int("n", n).Int("ring_degree", m).Msg("building ring")
	r, err := ring.NewRing(m, []uint64{Q})
	if err != nil {
		return nil, fmt.Errorf("ntru: build ring of degree %d: %w", m, err)
	}
	return &ZqRing{n: n, stride: m / n, r: r}, nil
}

// N returns the degree of the ring.
func (zr *ZqRing) N() int { return zr.n }

// toPoly reduces a into [0,q) and embeds it into the lattigo ring.
func (zr *ZqRing) toPoly(a []int64) *ring.Poly {
	p := zr.r.NewPoly()
	c := p.Coeffs[0]
	for i, v := range a {
		v %= Q
		if v < 0 {
			v += Q
		}
		c[i*zr.stride] = uint64(v)
	}
	return p
}

// fromPoly reads the n embedded coefficients back.
func (zr *ZqRing) fromPoly(p *ring.Poly) []int64 {
	out := make([]int64, zr.n)
	c := p.Coeffs[0]
	for i := range out {
		out[i] = int64(c[i*zr.stride] % Q)
	}
	return out
}
