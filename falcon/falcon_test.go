package falcon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"falcon-signature/ntru"
)

var (
	keysMu sync.Mutex
	keys   = map[int]*SecretKey{}
)

func testKey(t testing.TB, n int) *SecretKey {
	t.Helper()
	keysMu.Lock()
	defer keysMu.Unlock()
	if sk, ok := keys[n]; ok {
		return sk
	}
	sk, _, err := GenerateKeyPairContext(context.Background(), n, KeyGenOptions{Rand: ntru.NewRNG([]byte(fmt.Sprintf("falcon %d", n)))})
	require.NoError(t, err)
	keys[n] = sk
	return sk
}

func degrees() []int {
	if testing.Short() {
		return []int{2, 4, 8, 16, 32, 64, 128}
	}
	return ntru.Degrees()
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, n := range degrees() {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			sk := testKey(t, n)
			pk := sk.PublicKey()
			for i := 0; i < 5; i++ {
				msg := []byte(fmt.Sprintf("message %d", i))
				sig, err := sk.Sign(msg)
				require.NoError(t, err)
				require.Len(t, sig, sk.Params().SigByteLen)
				require.Equal(t, byte(0x30+sk.Params().LogN), sig[0])
				require.True(t, pk.Verify(msg, sig), "n=%d message %d", n, i)
			}
		})
	}
}

func TestGenerateKeyPair(t *testing.T) {
	sk, pk, err := GenerateKeyPair(16)
	require.NoError(t, err)
	require.True(t, pk.Equal(sk.PublicKey()))
	f, g, F, G := sk.Polys()
	require.True(t, ntru.CheckNTRUIdentity(f, g, F, G))
	require.True(t, ntru.CheckPublicKey(f, g, pk.H()))
}

func TestGenerateKeyPairUnsupportedDegree(t *testing.T) {
	_, _, err := GenerateKeyPair(100)
	require.ErrorIs(t, err, ntru.ErrUnsupportedDegree)
	require.ErrorIs(t, err, ntru.ErrParameter)
}

func TestVerifyRejectsOtherMessage(t *testing.T) {
	sk := testKey(t, 64)
	sig, err := sk.Sign([]byte("original"))
	require.NoError(t, err)
	require.False(t, sk.PublicKey().Verify([]byte("forged"), sig))
}

func TestVerifyRejectsOtherKey(t *testing.T) {
	sk := testKey(t, 64)
	other, _, err := GenerateKeyPairContext(context.Background(), 64, KeyGenOptions{Rand: ntru.NewRNG([]byte("other key"))})
	require.NoError(t, err)
	sig, err := sk.Sign([]byte("msg"))
	require.NoError(t, err)
	require.False(t, other.PublicKey().Verify([]byte("msg"), sig))
}

func TestVerifyRejectsEveryBitFlip(t *testing.T) {
	sk := testKey(t, 16)
	pk := sk.PublicKey()
	msg := []byte("bit flips")
	sig, err := sk.SignWithRand(ntru.NewRNG([]byte("flip")), msg)
	require.NoError(t, err)
	require.True(t, pk.Verify(msg, sig))
	for i := 0; i < len(sig)*8; i++ {
		mut := bytes.Clone(sig)
		mut[i/8] ^= 1 << (i % 8)
		require.False(t, pk.Verify(msg, mut), "flipped bit %d accepted", i)
	}
}

func TestVerifyRejectsBadLengthsAndHeaders(t *testing.T) {
	sk := testKey(t, 32)
	pk := sk.PublicKey()
	msg := []byte("lengths")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	require.False(t, pk.Verify(msg, nil))
	require.False(t, pk.Verify(msg, sig[:len(sig)-1]))
	require.False(t, pk.Verify(msg, append(bytes.Clone(sig), 0)))
	bad := bytes.Clone(sig)
	bad[0] = 0x30 + 4
	require.False(t, pk.Verify(msg, bad))
}

// Scenario from the n=8 walkthrough: valid signature, salt tampering, and an
// all-zero buffer one byte short.
func TestHelloScenario(t *testing.T) {
	sk := testKey(t, 8)
	pk := sk.PublicKey()
	msg := []byte("Hello!")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	require.True(t, pk.Verify(msg, sig))

	tampered := bytes.Clone(sig)
	tampered[ntru.HeadLen] ^= 0x01
	require.False(t, pk.Verify(msg, tampered))

	require.False(t, pk.Verify(msg, make([]byte, sk.Params().SigByteLen-1)))
	require.False(t, pk.Verify(msg, make([]byte, sk.Params().SigByteLen)))
}

func TestSignDeterministicWithSeed(t *testing.T) {
	sk := testKey(t, 32)
	a, err := sk.SignWithRand(ntru.NewRNG([]byte("seed")), []byte("m"))
	require.NoError(t, err)
	b, err := sk.SignWithRand(ntru.NewRNG([]byte("seed")), []byte("m"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

type oversizedFirst struct {
	inner preimageSampler
	calls int
}

func (o *oversizedFirst) SamplePreimage(point []int64, sz *ntru.SamplerZ) (s0, s1 []int64) {
	o.calls++
	if o.calls == 1 {
		s0 = make([]int64, len(point))
		s1 = make([]int64, len(point))
		for i := range s0 {
			s0[i], s1[i] = 6000, -6000
		}
		return s0, s1
	}
	return o.inner.SamplePreimage(point, sz)
}

func TestSignDiscardsSamplesAboveBound(t *testing.T) {
	sk := testKey(t, 16)
	ps := &oversizedFirst{inner: sk.sampler}
	msg := []byte("bound")
	sig, err := sk.sign(context.Background(), ps, ntru.NewRNG([]byte("bound")), msg)
	require.NoError(t, err)
	require.GreaterOrEqual(t, ps.calls, 2)
	require.True(t, sk.PublicKey().Verify(msg, sig))
}

func TestSignContextCancelled(t *testing.T) {
	sk := testKey(t, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sk.SignContext(ctx, ntru.NewRNG(nil), []byte("m"))
	require.True(t, errors.Is(err, context.Canceled))
}

func TestConcurrentSignVerify(t *testing.T) {
	sk := testKey(t, 64)
	pk := sk.PublicKey()
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := []byte(fmt.Sprintf("goroutine %d", i))
			sig, err := sk.Sign(msg)
			if err != nil {
				errs <- err
				return
			}
			if !pk.Verify(msg, sig) {
				errs <- fmt.Errorf("goroutine %d: signature rejected", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestNewSecretKeyChecksIdentity(t *testing.T) {
	sk := testKey(t, 16)
	f, g, F, G := sk.Polys()
	rebuilt, err := NewSecretKey(f, g, F, G)
	require.NoError(t, err)
	require.True(t, rebuilt.PublicKey().Equal(sk.PublicKey()))

	G[0]++
	_, err = NewSecretKey(f, g, F, G)
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = NewSecretKey(f[:3], g[:3], F[:3], G[:3])
	require.ErrorIs(t, err, ntru.ErrUnsupportedDegree)
}

func TestNewPublicKey(t *testing.T) {
	sk := testKey(t, 16)
	pk, err := NewPublicKey(sk.PublicKey().H())
	require.NoError(t, err)
	msg := []byte("rebuilt")
	sig, err := sk.Sign(msg)
	require.NoError(t, err)
	require.True(t, pk.Verify(msg, sig))

	h := sk.PublicKey().H()
	h[0] = ntru.Q
	_, err = NewPublicKey(h)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestDetailedIncludesTree(t *testing.T) {
	sk := testKey(t, 4)
	require.Contains(t, sk.Detailed(), "|____>")
	require.Contains(t, sk.String(), "n=4")
	require.Contains(t, sk.PublicKey().String(), "h =")
}

func TestVerifyZeroValuePublicKey(t *testing.T) {
	var pk PublicKey
	require.NotPanics(t, func() {
		require.False(t, pk.Verify([]byte("m"), nil))
		require.False(t, pk.Verify([]byte("m"), []byte{}))
		require.False(t, pk.Verify([]byte("m"), make([]byte, 41)))
	})
}
