package ntru

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"falcon-signature/measure"
	"falcon-signature/prof"
)

const (
	// sigmaFG is the deviation of each elementary sample folded into f and g.
	sigmaFG = 1.43300980528773
	// genPolySamples is the number of elementary samples per polynomial.
	genPolySamples = 4096
	// gsBoundFactor bounds the Gram-Schmidt norm by gsBoundFactor * q.
	gsBoundFactor = 1.17 * 1.17
)

// ErrKeygenExhausted is returned when KeygenOpts.MaxTrials candidates were rejected.
var ErrKeygenExhausted = errors.New("ntru: key generation trial limit reached")

var errKeyFound = errors.New("ntru: key found")

// KeygenOpts tunes the candidate search. The zero value searches sequentially
// without a trial cap.
type KeygenOpts struct {
	MaxTrials int // 0 means unbounded
	Workers   int // concurrent candidate searches; <= 1 is sequential and reproducible
}

// GenPoly samples a polynomial whose coefficients are sums of 4096/n
// elementary Gaussian samples of deviation sigmaFG.
func GenPoly(n int, sz *SamplerZ) []int64 {
	k := genPolySamples / n
	out := make([]int64, n)
	for i := range out {
		var acc int64
		for j := 0; j < k; j++ {
			acc += sz.Sample(0, sigmaFG, sigmaFG-0.001)
		}
		out[i] = acc
	}
	return out
}

// GSNorm returns the squared Gram-Schmidt norm of the NTRU basis spanned by f, g.
func GSNorm(f, g []int64) float64 {
	sq := float64(squareNorm(f) + squareNorm(g))
	fa, ga := FFTInt(f), FFTInt(g)
	ffgg := AddFFT(MulFFT(fa, AdjFFT(fa)), MulFFT(ga, AdjFFT(ga)))
	Ft := IFFT(DivFFT(AdjFFT(ga), ffgg))
	Gt := IFFT(DivFFT(AdjFFT(fa), ffgg))
	var st float64
	for i := range Ft {
		st += Ft[i]*Ft[i] + Gt[i]*Gt[i]
	}
	st *= Q * Q
	return max(sq, st)
}

func squareNorm(a []int64) int64 {
	var s int64
	for _, v := range a {
		s += v * v
	}
	return s
}

// Keygen samples f, g and completes them into an NTRU basis (f, g, F, G)
// with f*G - g*F = q. Rejected candidates are retried until one passes,
// MaxTrials is hit or ctx is done.
func Keygen(ctx context.Context, n int, rng io.Reader, opts KeygenOpts) (f, g, F, G []int64, err error) {
	if _, err := ParamsFor(n); err != nil {
		return nil, nil, nil, nil, err
	}
	zr, err := RingFor(n)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	workers := max(opts.Workers, 1)
	if workers > 1 {
		rng = &lockedReader{r: rng}
	}

	var (
		trials atomic.Int64
		once   sync.Once
		res    [4][]int64
	)
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			sz := NewSamplerZ(rng)
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				t := trials.Add(1)
				if opts.MaxTrials > 0 && t > int64(opts.MaxTrials) {
					return fmt.Errorf("%w: %d candidates", ErrKeygenExhausted, opts.MaxTrials)
				}
				cf, cg, cF, cG, ok := keygenTrial(n, zr, sz, t)
				if ok {
					once.Do(func() { res = [4][]int64{cf, cg, cF, cG} })
					return errKeyFound
				}
			}
		})
	}
	if err := eg.Wait(); !errors.Is(err, errKeyFound) {
		return nil, nil, nil, nil, err
	}
	logger.Debug().Int("n", n).Int64("trials", trials.Load()).Msg("keygen done")
	return res[0], res[1], res[2], res[3], nil
}

// keygenTrial runs one candidate through the three rejection tests.
func keygenTrial(n int, zr *ZqRing, sz *SamplerZ, trial int64) (f, g, F, G []int64, ok bool) {
	f = GenPoly(n, sz)
	g = GenPoly(n, sz)
	if gs := GSNorm(f, g); gs > gsBoundFactor*Q {
		measure.KeygenCandidate(measure.OutcomeGSNorm)
		logger.Debug().Int64("trial", trial).Float64("gs_norm", gs).Msg("keygen: Gram-Schmidt norm too large")
		return nil, nil, nil, nil, false
	}
	if !zr.IsInvertible(f) {
		measure.KeygenCandidate(measure.OutcomeNotInvertible)
		logger.Debug().Int64("trial", trial).Msg("keygen: f not invertible mod q")
		return nil, nil, nil, nil, false
	}
	start := time.Now()
	F, G, err := NTRUSolve(f, g)
	prof.Track(start, "ntru/ntrusolve")
	if err != nil {
		measure.KeygenCandidate(measure.OutcomeNoSolution)
		logger.Debug().Int64("trial", trial).Err(err).Msg("keygen: NTRU equation unsolved")
		return nil, nil, nil, nil, false
	}
	measure.KeygenCandidate(measure.OutcomeAccepted)
	return f, g, F, G, true
}
