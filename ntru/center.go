package ntru

// CenterModQ maps coefficients to the symmetric interval (-q/2, q/2].
func CenterModQ(a []int64) []int64 {
	out := make([]int64, len(a))
	for i, v := range a {
		v %= Q
		if v < 0 {
			v += Q
		}
		if v > Q/2 {
			v -= Q
		}
		out[i] = v
	}
	return out
}
