package ntru

import (
	"fmt"
	"math"
	"strings"
)

// GramFFT is a 2x2 matrix of polynomials in the FFT domain.
type GramFFT [2][2][]complex128

// LDLTree is the recursive LDL* decomposition of a Gram matrix. It is either
// an *LDLNode or an *LDLLeaf.
type LDLTree interface {
	isLDLTree()
}

// LDLNode holds the off-diagonal factor L10 and the trees of the two
// diagonal blocks, each split to half degree.
type LDLNode struct {
	L10         []complex128
	Left, Right LDLTree
}

// LDLLeaf holds a degree-2 diagonal entry with its second FFT slot zeroed.
// After Normalize, Value[0] is the real leaf deviation and Value[1] is 0.
type LDLLeaf struct {
	Value [2]complex128
}

func (*LDLNode) isLDLTree() {}
func (*LDLLeaf) isLDLTree() {}

// Gram returns B * B^* for a 2x2 basis in the FFT domain.
func Gram(B GramFFT) GramFFT {
	var G GramFFT
	n := len(B[0][0])
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			acc := make([]complex128, n)
			for k := 0; k < 2; k++ {
				acc = AddFFT(acc, MulFFT(B[i][k], AdjFFT(B[j][k])))
			}
			G[i][j] = acc
		}
	}
	return G
}

// ldlFFT factors a self-adjoint 2x2 matrix as L D L^*.
func ldlFFT(G GramFFT) (L10, D00, D11 []complex128) {
	D00 = G[0][0]
	L10 = DivFFT(G[1][0], G[0][0])
	D11 = SubFFT(G[1][1], MulFFT(MulFFT(L10, AdjFFT(L10)), G[0][0]))
	return L10, D00, D11
}

// FFLDL builds the LDL tree of a Gram matrix of degree n >= 2.
func FFLDL(G GramFFT) LDLTree {
	n := len(G[0][0])
	L10, D00, D11 := ldlFFT(G)
	if n == 2 {
		return &LDLNode{
			L10:   L10,
			Left:  &LDLLeaf{Value: [2]complex128{D00[0], 0}},
			Right: &LDLLeaf{Value: [2]complex128{D11[0], 0}},
		}
	}
	d00, d01 := SplitFFT(D00)
	d10, d11 := SplitFFT(D11)
	G0 := GramFFT{{d00, d01}, {AdjFFT(d01), d00}}
	G1 := GramFFT{{d10, d11}, {AdjFFT(d11), d10}}
	return &LDLNode{L10: L10, Left: FFLDL(G0), Right: FFLDL(G1)}
}

// Normalize replaces every leaf value v by sigma/sqrt(Re v) in place.
func Normalize(T LDLTree, sigma float64) {
	switch t := T.(type) {
	case *LDLNode:
		Normalize(t.Left, sigma)
		Normalize(t.Right, sigma)
	case *LDLLeaf:
		t.Value[0] = complex(sigma/math.Sqrt(real(t.Value[0])), 0)
		t.Value[1] = 0
	}
}

// Leaves returns the leaf deviations left to right.
func Leaves(T LDLTree) []float64 {
	var out []float64
	var walk func(LDLTree)
	walk = func(T LDLTree) {
		switch t := T.(type) {
		case *LDLNode:
			walk(t.Left)
			walk(t.Right)
		case *LDLLeaf:
			out = append(out, real(t.Value[0]))
		}
	}
	walk(T)
	return out
}

// FormatTree draws the tree with one node per line.
func FormatTree(T LDLTree) string {
	var sb strings.Builder
	formatTree(&sb, T, "")
	return sb.String()
}

const (
	treeBranch = "|______"
	treeLink1  = "|      "
	treeLink2  = "       "
)

func formatTree(sb *strings.Builder, T LDLTree, prefix string) {
	switch t := T.(type) {
	case *LDLNode:
		if prefix != "" {
			sb.WriteString(prefix + treeBranch)
		}
		fmt.Fprintf(sb, "%v\n", t.L10)
		formatTree(sb, t.Left, prefix+treeLink1)
		formatTree(sb, t.Right, prefix+treeLink2)
	case *LDLLeaf:
		fmt.Fprintf(sb, "%s|____> %v\n", prefix[:len(prefix)-len(treeBranch)], t.Value)
	}
}
