package bench

import (
	"context"
	"testing"

	"falcon-signature/falcon"
	"falcon-signature/ntru"
)

func benchKey(b *testing.B, n int) *falcon.SecretKey {
	b.Helper()
	sk, _, err := falcon.GenerateKeyPairContext(context.Background(), n, falcon.KeyGenOptions{Rand: ntru.NewRNG([]byte("bench sign"))})
	if err != nil {
		b.Fatal(err)
	}
	return sk
}

func BenchmarkSign512(b *testing.B) {
	sk := benchKey(b, 512)
	rng := ntru.NewRNG([]byte("bench sign rng"))
	msg := []byte("benchmark message")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sk.SignWithRand(rng, msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify512(b *testing.B) {
	sk := benchKey(b, 512)
	pk := sk.PublicKey()
	msg := []byte("benchmark message")
	sig, err := sk.Sign(msg)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !pk.Verify(msg, sig) {
			b.Fatal("signature rejected")
		}
	}
}
