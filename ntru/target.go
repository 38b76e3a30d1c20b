package ntru

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// ErrModulusTooLarge is returned when q does not fit in 16 bits.
var ErrModulusTooLarge = fmt.Errorf("%w: modulus exceeds 2^16", ErrParameter)

// HashToPoint hashes salt||message with SHAKE256 to a polynomial with
// coefficients in [0, q).
func HashToPoint(message, salt []byte, n int) ([]int64, error) {
	return hashToPoint(message, salt, n, Q)
}

// hashToPoint reads 16-bit big-endian words and keeps those below k*q,
// k = floor(2^16/q), so every residue is equally likely.
func hashToPoint(message, salt []byte, n int, q uint32) ([]int64, error) {
	if q > 1<<16 {
		return nil, fmt.Errorf("%w: q=%d", ErrModulusTooLarge, q)
	}
	k := uint32(1<<16) / q
	shake := sha3.NewShake256()
	shake.Write(salt)
	shake.Write(message)
	out := make([]int64, n)
	var buf [2]byte
	for i := 0; i < n; {
		shake.Read(buf[:])
		v := uint32(buf[0])<<8 | uint32(buf[1])
		if v < k*q {
			out[i] = int64(v % q)
			i++
		}
	}
	return out, nil
}
