package ntru

import (
	"math/big"
)

// extGCD returns (u, v, d) with a*u + b*v = d = gcd(a, b) and d >= 0.
func extGCD(a, b *big.Int) (u, v, d *big.Int) {
	u, v = new(big.Int), new(big.Int)
	d = new(big.Int).GCD(u, v, a, b)
	return u, v, d
}
