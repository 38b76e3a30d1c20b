package keys

import (
	"encoding/base64"
	"path/filepath"
	"time"
)

// SignatureVersion tags the signature bundle JSON layout.
const SignatureVersion = "falcon-signature-v1"

// Signature is a signed message bundle persisted to JSON.
type Signature struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Params    struct {
		N          int `json:"N"`
		SigByteLen int `json:"sig_bytelen"`
	} `json:"params"`
	Message   string `json:"message"`   // base64
	Signature string `json:"signature"` // base64, header||salt||compressed s1
}

// NewSignature bundles msg and sig with the current time.
func NewSignature(n, sigByteLen int, msg, sig []byte) *Signature {
	s := &Signature{Version: SignatureVersion}
	s.Timestamp = time.Now().UTC().Format(time.RFC3339)
	s.Params.N = n
	s.Params.SigByteLen = sigByteLen
	s.Message = EncodeBase64(msg)
	s.Signature = EncodeBase64(sig)
	return s
}

// Decode returns the raw message and signature bytes.
func (s *Signature) Decode() (msg, sig []byte, err error) {
	if msg, err = DecodeBase64(s.Message); err != nil {
		return nil, nil, err
	}
	if sig, err = DecodeBase64(s.Signature); err != nil {
		return nil, nil, err
	}
	return msg, sig, nil
}

// Save writes the bundle to dir/signature.json.
func Save(dir string, sig *Signature) error {
	if sig == nil {
		return nil
	}
	return writeJSON(filepath.Join(dir, "signature.json"), 0o644, sig)
}

// Load reads the bundle from dir/signature.json.
func Load(dir string) (*Signature, error) {
	var sig Signature
	if err := readJSON(filepath.Join(dir, "signature.json"), &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// DecodeBase64 converts a base64 string to bytes.
func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// EncodeBase64 returns the base64 representation of b.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
