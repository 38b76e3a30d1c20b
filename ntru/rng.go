package ntru

import (
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

// RNG is a deterministic ChaCha20 key stream, for reproducible tests and
// benchmarks. It is safe for concurrent use.
type RNG struct {
	mu sync.Mutex
	c  *chacha20.Cipher
}

var _ io.Reader = (*RNG)(nil)

// NewRNG keys a stream with SHA3-256(seed) and an all-zero nonce.
func NewRNG(seed []byte) *RNG {
	key := sha3.Sum256(seed)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}
	return &RNG{c: c}
}

// Read fills p with key stream bytes and never fails.
func (r *RNG) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(p)
	r.c.XORKeyStream(p, p)
	return len(p), nil
}

// lockedReader serialises access to a reader shared between goroutines.
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}
