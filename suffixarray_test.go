package fmindex

import (
	"sort"
	"testing"
)

// checkSAIndices checks that sa contains exactly the indices [0, n).
func checkSAIndices(t *testing.T, n int, sa []uint32) {
	t.Helper()
	if len(sa) != n {
		t.Fatalf("suffix array has length %d, want %d", len(sa), n)
	}
	indices := make([]int, len(sa))
	for i, j := range sa {
		indices[i] = int(j)
	}
	sort.Ints(indices)
	for i, j := range indices {
		if j != i {
			t.Fatalf("suffix array is not a permutation of [0,%d): sorted indices = %v", n, indices)
		}
	}
}

// checkSASorted checks that sa really does list suffixes of content in
// lexicographic order.
func checkSASorted(t *testing.T, content []byte, sa []uint32) {
	t.Helper()
	for i := 1; i < len(sa); i++ {
		a, b := string(content[sa[i-1]:]), string(content[sa[i]:])
		if a >= b {
			t.Errorf("suffix array not sorted at %d: %q >= %q", i, a, b)
		}
	}
}

func TestSuffixArrayConstruction(t *testing.T) {
	rng := newRandomSeed(t)
	for i := 0; i < 20; i++ {
		n := rng.Intn(40) + 1
		txt := randomTextN(n, "acgt", rng)
		text, err := NewText(txt, maxByte("acgt"))
		if err != nil {
			t.Fatalf("NewText: %v", err)
		}
		sa := buildSuffixArray(text)
		checkSAIndices(t, n+1, sa)
		checkSASorted(t, txt, sa)
		if sa[0] != uint32(n) {
			t.Errorf("sa[0] = %d, want %d (the sentinel row)", sa[0], n)
		}
	}
}

func TestSuffixArrayMississippi(t *testing.T) {
	txt := []byte("mississippi\x00")
	text, err := NewText(txt, 's')
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	sa := buildSuffixArray(text)
	checkSAIndices(t, len(txt), sa)
	checkSASorted(t, txt, sa)
}
