package falcon

import (
	"falcon-signature/measure"
	"falcon-signature/ntru"
)

// Verify reports whether sig is a valid signature of message under pk.
// Malformed signatures are rejected, never reported as errors.
func (pk *PublicKey) Verify(message, sig []byte) bool {
	ok := pk.verify(message, sig)
	measure.Verification(ok)
	return ok
}

func (pk *PublicKey) verify(message, sig []byte) bool {
	par := pk.params
	if len(pk.h) != par.N || par.N == 0 {
		logger.Debug().Msg("verify: uninitialized public key")
		return false
	}
	if len(sig) != par.SigByteLen {
		logger.Debug().Int("len", len(sig)).Int("want", par.SigByteLen).Msg("verify: bad signature length")
		return false
	}
	if sig[0] != par.Header() {
		logger.Debug().Uint8("header", sig[0]).Msg("verify: bad header")
		return false
	}
	salt := sig[ntru.HeadLen : ntru.HeadLen+ntru.SaltLen]
	enc := sig[ntru.HeadLen+ntru.SaltLen:]
	s1, err := ntru.Decompress(enc, par.SigByteLen-ntru.HeadLen-ntru.SaltLen, par.N)
	if err != nil {
		logger.Debug().Err(err).Msg("verify: undecodable s1")
		return false
	}
	point, err := ntru.HashToPoint(message, salt, par.N)
	if err != nil {
		return false
	}
	zr, err := ntru.RingFor(par.N)
	if err != nil {
		return false
	}
	s0 := ntru.CenterModQ(zr.Sub(point, zr.Mul(s1, pk.h)))
	norm := squareNorm(s0) + squareNorm(s1)
	if norm > par.SigBound {
		logger.Debug().Int64("norm", norm).Int64("bound", par.SigBound).Msg("verify: norm above bound")
		return false
	}
	return true
}
