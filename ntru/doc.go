// Package ntru implements the lattice machinery behind Falcon signatures:
// arithmetic in Z[x]/(x^n+1) over the integers, modulo q = 12289 (through
// lattigo's NTT) and over the complex FFT domain; the discrete Gaussian
// integer sampler; NTRU trapdoor generation; the LDL tree and the
// fast-Fourier preimage sampler; hashing to a point and the compressed
// encoding of signature vectors.
//
// Polynomials are plain slices ([]int64 in coefficient form, []complex128 in
// FFT form) and are never modified in place by the exported functions.
package ntru
