package ntru

import (
	"errors"
	"fmt"
)

var (
	// ErrEncodeOverflow is returned when a vector does not fit the requested length.
	ErrEncodeOverflow = errors.New("ntru: compressed encoding exceeds length")
	// ErrMalformedEncoding is the parent of every decoding failure.
	ErrMalformedEncoding = errors.New("ntru: malformed compressed encoding")
)

// Compress encodes v into exactly slen bytes. Each coefficient is a sign
// bit, its 7 low magnitude bits, then the high magnitude bits in unary
// (that many 0s closed by a 1). Unused trailing bits are zero.
func Compress(v []int64, slen int) ([]byte, error) {
	bits := 0
	for _, x := range v {
		bits += 9 + int(abs64(x)>>7)
		if bits > 8*slen {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrEncodeOverflow, slen)
		}
	}
	out := make([]byte, slen)
	pos := 0
	put := func(bit uint64) {
		if bit != 0 {
			out[pos>>3] |= 0x80 >> (pos & 7)
		}
		pos++
	}
	for _, x := range v {
		m := uint64(abs64(x))
		if x < 0 {
			put(1)
		} else {
			put(0)
		}
		for i := 6; i >= 0; i-- {
			put((m >> i) & 1)
		}
		for j := m >> 7; j > 0; j-- {
			put(0)
		}
		put(1)
	}
	return out, nil
}

// Decompress decodes exactly n coefficients from b. It rejects inputs longer
// than slen, truncated coefficients, negative zero and non-zero padding.
func Decompress(b []byte, slen, n int) ([]int64, error) {
	if len(b) > slen {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMalformedEncoding, len(b), slen)
	}
	total := 8 * len(b)
	pos := 0
	get := func() uint64 {
		bit := uint64(b[pos>>3]>>(7-(pos&7))) & 1
		pos++
		return bit
	}
	v := make([]int64, n)
	for i := range v {
		if total-pos < 9 {
			return nil, fmt.Errorf("%w: truncated at coefficient %d", ErrMalformedEncoding, i)
		}
		sign := get()
		var m uint64
		for j := 0; j < 7; j++ {
			m = m<<1 | get()
		}
		var hi uint64
		for {
			if pos >= total {
				return nil, fmt.Errorf("%w: unterminated coefficient %d", ErrMalformedEncoding, i)
			}
			if get() == 1 {
				break
			}
			hi++
		}
		m |= hi << 7
		if sign == 1 && m == 0 {
			return nil, fmt.Errorf("%w: negative zero at coefficient %d", ErrMalformedEncoding, i)
		}
		if sign == 1 {
			v[i] = -int64(m)
		} else {
			v[i] = int64(m)
		}
	}
	for pos < total {
		if get() != 0 {
			return nil, fmt.Errorf("%w: non-zero padding", ErrMalformedEncoding)
		}
	}
	return v, nil
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
