// Package falcon implements Falcon signatures over the NTRU lattices of
// package ntru: key pair generation, signing with the fast-Fourier preimage
// sampler and verification of compressed signatures.
//
// A signature is a header byte 0x30+log2(n), a 40-byte salt and the
// compressed second half s1 of a short vector (s0, s1) with
// s0 + s1*h = HashToPoint(salt||message) mod q. Its length is fixed per
// degree (see ntru.Params.SigByteLen).
//
// Keys are immutable after construction. Signing and verifying with one key
// from several goroutines is safe as long as the randomness source is
// (crypto/rand.Reader is).
package falcon
