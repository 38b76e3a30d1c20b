package keys

import (
	"fmt"
	"path/filepath"

	"falcon-signature/falcon"
	"falcon-signature/ntru"
)

// PublicKeyVersion tags the public key JSON layout.
const PublicKeyVersion = "falcon-public-v1"

// PublicKey is a Falcon verification key persisted to JSON.
type PublicKey struct {
	Version string  `json:"version"`
	N       int     `json:"N"`
	Q       int     `json:"Q"`
	HCoeffs []int64 `json:"h_coeffs"`
}

// FromPublicKey captures h.
func FromPublicKey(pk *falcon.PublicKey) *PublicKey {
	return &PublicKey{
		Version: PublicKeyVersion,
		N:       pk.Params().N,
		Q:       ntru.Q,
		HCoeffs: pk.H(),
	}
}

// PublicKey rebuilds the verification key.
func (pk *PublicKey) PublicKey() (*falcon.PublicKey, error) {
	if pk.Version != PublicKeyVersion {
		return nil, fmt.Errorf("keys: unsupported public key version %q", pk.Version)
	}
	if pk.Q != ntru.Q {
		return nil, fmt.Errorf("keys: public key modulus %d, want %d", pk.Q, ntru.Q)
	}
	if len(pk.HCoeffs) != pk.N {
		return nil, fmt.Errorf("keys: h has %d coefficients, N=%d", len(pk.HCoeffs), pk.N)
	}
	return falcon.NewPublicKey(pk.HCoeffs)
}

// SavePublic writes the public key to dir/public.json.
func SavePublic(dir string, pk *PublicKey) error {
	if pk == nil {
		return nil
	}
	return writeJSON(filepath.Join(dir, "public.json"), 0o644, pk)
}

// LoadPublic reads the public key from dir/public.json.
func LoadPublic(dir string) (*PublicKey, error) {
	var pk PublicKey
	if err := readJSON(filepath.Join(dir, "public.json"), &pk); err != nil {
		return nil, err
	}
	return &pk, nil
}
