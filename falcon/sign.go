package falcon

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"falcon-signature/internal/logging"
	"falcon-signature/measure"
	"falcon-signature/ntru"
	"falcon-signature/prof"
)

var logger = logging.New("falcon")

// preimageSampler draws short vectors (s0, s1) with s0 + s1*h = point.
type preimageSampler interface {
	SamplePreimage(point []int64, sz *ntru.SamplerZ) (s0, s1 []int64)
}

// Sign signs message with randomness from crypto/rand.
func (sk *SecretKey) Sign(message []byte) ([]byte, error) {
	return sk.SignContext(context.Background(), rand.Reader, message)
}

// SignWithRand signs message drawing the salt and every Gaussian sample from rng.
func (sk *SecretKey) SignWithRand(rng io.Reader, message []byte) ([]byte, error) {
	return sk.SignContext(context.Background(), rng, message)
}

// SignContext is SignWithRand with cancellation checked between resampling attempts.
func (sk *SecretKey) SignContext(ctx context.Context, rng io.Reader, message []byte) ([]byte, error) {
	start := time.Now()
	sig, err := sk.sign(ctx, sk.sampler, rng, message)
	if err == nil {
		measure.ObserveSign(time.Since(start))
		prof.Track(start, "falcon/sign")
	}
	return sig, err
}

func (sk *SecretKey) sign(ctx context.Context, ps preimageSampler, rng io.Reader, message []byte) ([]byte, error) {
	par := sk.params
	salt := make([]byte, ntru.SaltLen)
	if _, err := io.ReadFull(rng, salt); err != nil {
		return nil, fmt.Errorf("falcon: read salt: %w", err)
	}
	point, err := ntru.HashToPoint(message, salt, par.N)
	if err != nil {
		return nil, err
	}
	sz := ntru.NewSamplerZ(rng)
	slen := par.SigByteLen - ntru.HeadLen - ntru.SaltLen
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s0, s1 := ps.SamplePreimage(point, sz)
		if norm := squareNorm(s0) + squareNorm(s1); norm > par.SigBound {
			measure.SignAttempt(measure.OutcomeNormExceeded)
			logger.Debug().Int("attempt", attempt).Int64("norm", norm).Int64("bound", par.SigBound).Msg("sign: norm above bound, resampling")
			continue
		}
		enc, err := ntru.Compress(s1, slen)
		if errors.Is(err, ntru.ErrEncodeOverflow) {
			measure.SignAttempt(measure.OutcomeEncodeOverflow)
			logger.Debug().Int("attempt", attempt).Msg("sign: s1 does not fit, resampling")
			continue
		}
		if err != nil {
			return nil, err
		}
		measure.SignAttempt(measure.OutcomeAccepted)
		sig := make([]byte, 0, par.SigByteLen)
		sig = append(sig, par.Header())
		sig = append(sig, salt...)
		sig = append(sig, enc...)
		return sig, nil
	}
}

// squareNorm saturates instead of overflowing so that absurd samples are
// still rejected by the bound.
func squareNorm(a []int64) int64 {
	const limit = int64(1) << 61
	var s int64
	for _, v := range a {
		if v > 1<<31 || v < -(1<<31) {
			return limit
		}
		s += v * v
		if s > limit {
			return limit
		}
	}
	return s
}
