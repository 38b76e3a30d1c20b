package falcon

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"falcon-signature/ntru"
	"falcon-signature/prof"
)

// ErrInvalidKey is returned when key material fails its consistency checks.
var ErrInvalidKey = errors.New("falcon: invalid key")

// SecretKey is a Falcon signing key. Fields are read-only after construction.
type SecretKey struct {
	params     ntru.Params
	f, g, F, G []int64
	h          []int64
	sampler    *ntru.Sampler
	pub        *PublicKey
}

// PublicKey is a Falcon verification key h = g/f mod q.
type PublicKey struct {
	params ntru.Params
	h      []int64
}

// KeyGenOptions configures GenerateKeyPairContext.
type KeyGenOptions struct {
	Rand      io.Reader // defaults to crypto/rand.Reader
	Workers   int       // concurrent candidate searches
	MaxTrials int       // 0 means unbounded
}

// GenerateKeyPair generates a key pair of degree n from crypto/rand.
func GenerateKeyPair(n int) (*SecretKey, *PublicKey, error) {
	return GenerateKeyPairContext(context.Background(), n, KeyGenOptions{})
}

// GenerateKeyPairContext generates a key pair of degree n. It returns
// ctx.Err() if ctx is done before a candidate is accepted.
func GenerateKeyPairContext(ctx context.Context, n int, opts KeyGenOptions) (*SecretKey, *PublicKey, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.Reader
	}
	f, g, F, G, err := ntru.Keygen(ctx, n, rng, ntru.KeygenOpts{MaxTrials: opts.MaxTrials, Workers: opts.Workers})
	if err != nil {
		return nil, nil, fmt.Errorf("falcon: keygen: %w", err)
	}
	sk, err := newSecretKey(f, g, F, G)
	if err != nil {
		return nil, nil, err
	}
	return sk, sk.pub, nil
}

// NewSecretKey rebuilds a secret key from its NTRU polynomials. The NTRU
// equation f*G - g*F = q and the invertibility of f are checked.
func NewSecretKey(f, g, F, G []int64) (*SecretKey, error) {
	if _, err := ntru.ParamsFor(len(f)); err != nil {
		return nil, err
	}
	if !ntru.CheckNTRUIdentity(f, g, F, G) {
		return nil, fmt.Errorf("%w: f*G - g*F != q", ErrInvalidKey)
	}
	return newSecretKey(f, g, F, G)
}

func newSecretKey(f, g, F, G []int64) (*SecretKey, error) {
	defer prof.Track(time.Now(), "falcon/secret-key")
	par, err := ntru.ParamsFor(len(f))
	if err != nil {
		return nil, err
	}
	zr, err := ntru.RingFor(par.N)
	if err != nil {
		return nil, err
	}
	h, err := zr.Div(g, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	S, err := ntru.NewSampler(f, g, F, G, par)
	if err != nil {
		return nil, err
	}
	sk := &SecretKey{
		params:  par,
		f:       clone(f),
		g:       clone(g),
		F:       clone(F),
		G:       clone(G),
		h:       h,
		sampler: S,
	}
	sk.pub = &PublicKey{params: par, h: h}
	return sk, nil
}

// NewPublicKey builds a verification key from h, coefficients in [0, q).
func NewPublicKey(h []int64) (*PublicKey, error) {
	par, err := ntru.ParamsFor(len(h))
	if err != nil {
		return nil, err
	}
	for i, v := range h {
		if v < 0 || v >= ntru.Q {
			return nil, fmt.Errorf("%w: h[%d] = %d outside [0, q)", ErrInvalidKey, i, v)
		}
	}
	return &PublicKey{params: par, h: clone(h)}, nil
}

// Params returns the parameter set of the key.
func (sk *SecretKey) Params() ntru.Params { return sk.params }

// PublicKey returns the matching verification key.
func (sk *SecretKey) PublicKey() *PublicKey { return sk.pub }

// Polys returns copies of f, g, F, G.
func (sk *SecretKey) Polys() (f, g, F, G []int64) {
	return clone(sk.f), clone(sk.g), clone(sk.F), clone(sk.G)
}

// Tree returns the normalized LDL tree used for sampling.
func (sk *SecretKey) Tree() ntru.LDLTree { return sk.sampler.Tree() }

// String summarises the key without the tree.
func (sk *SecretKey) String() string {
	return fmt.Sprintf("Falcon secret key n=%d\nf = %v\ng = %v\nF = %v\nG = %v", sk.params.N, sk.f, sk.g, sk.F, sk.G)
}

// Detailed adds the basis, the Gram matrix and the LDL tree to String.
func (sk *SecretKey) Detailed() string {
	var sb strings.Builder
	sb.WriteString(sk.String())
	fmt.Fprintf(&sb, "\nB0 = %v\nG0 = %v\nFFT tree:\n", sk.sampler.Basis(), sk.sampler.GramMatrix())
	sb.WriteString(ntru.FormatTree(sk.sampler.Tree()))
	return sb.String()
}

// Params returns the parameter set of the key.
func (pk *PublicKey) Params() ntru.Params { return pk.params }

// H returns a copy of h.
func (pk *PublicKey) H() []int64 { return clone(pk.h) }

// String prints the degree and h.
func (pk *PublicKey) String() string {
	return fmt.Sprintf("Falcon public key n=%d\nh = %v", pk.params.N, pk.h)
}

// Equal reports whether two public keys are identical.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil || pk.params.N != other.params.N {
		return false
	}
	for i := range pk.h {
		if pk.h[i] != other.h[i] {
			return false
		}
	}
	return true
}

func clone(a []int64) []int64 {
	return append([]int64(nil), a...)
}
