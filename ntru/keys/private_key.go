package keys

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"falcon-signature/falcon"
	"falcon-signature/ntru"
)

// PrivateKeyVersion tags the private key JSON layout.
const PrivateKeyVersion = "falcon-private-v1"

// PrivateKey is a Falcon secret key persisted to JSON.
type PrivateKey struct {
	Version string  `json:"version"`
	N       int     `json:"N"`
	Q       int     `json:"Q"`
	Fsmall  []int64 `json:"f"`
	Gsmall  []int64 `json:"g"`
	F       []int64 `json:"F"`
	G       []int64 `json:"G"`
}

// FromSecretKey captures the NTRU polynomials of sk.
func FromSecretKey(sk *falcon.SecretKey) *PrivateKey {
	f, g, F, G := sk.Polys()
	return &PrivateKey{
		Version: PrivateKeyVersion,
		N:       sk.Params().N,
		Q:       ntru.Q,
		Fsmall:  f,
		Gsmall:  g,
		F:       F,
		G:       G,
	}
}

// SecretKey rebuilds the signing key, checking the NTRU equation.
func (pk *PrivateKey) SecretKey() (*falcon.SecretKey, error) {
	if pk.Version != PrivateKeyVersion {
		return nil, fmt.Errorf("keys: unsupported private key version %q", pk.Version)
	}
	if pk.Q != ntru.Q {
		return nil, fmt.Errorf("keys: private key modulus %d, want %d", pk.Q, ntru.Q)
	}
	if len(pk.Fsmall) != pk.N {
		return nil, fmt.Errorf("keys: f has %d coefficients, N=%d", len(pk.Fsmall), pk.N)
	}
	return falcon.NewSecretKey(pk.Fsmall, pk.Gsmall, pk.F, pk.G)
}

// SavePrivate writes the private key to dir/private.json.
func SavePrivate(dir string, sk *PrivateKey) error {
	if sk == nil {
		return nil
	}
	return writeJSON(filepath.Join(dir, "private.json"), 0o600, sk)
}

// LoadPrivate reads the private key from dir/private.json.
func LoadPrivate(dir string) (*PrivateKey, error) {
	var sk PrivateKey
	if err := readJSON(filepath.Join(dir, "private.json"), &sk); err != nil {
		return nil, err
	}
	return &sk, nil
}

func writeJSON(path string, perm os.FileMode, v any) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("keys: decode %s: %w", path, err)
	}
	return nil
}
