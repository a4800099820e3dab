package fmindex

import (
	"strings"
	"testing"
)

func mississippiText(t *testing.T) Text {
	t.Helper()
	txt, err := NewText([]byte("mississippi\x00"), 's')
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	return txt
}

func locateSet(t *testing.T, s LocateState) map[uint64]bool {
	t.Helper()
	set := make(map[uint64]bool)
	it := s.IterMatches()
	for {
		mt, ok := it.Next()
		if !ok {
			break
		}
		set[mt.Locate()] = true
	}
	return set
}

func wantSet(vals ...uint64) map[uint64]bool {
	set := make(map[uint64]bool)
	for _, v := range vals {
		set[v] = true
	}
	return set
}

func eqSet(a, b map[uint64]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func TestSeedScenarios(t *testing.T) {
	ix, err := NewIndexWithLocate(mississippiText(t), 1)
	if err != nil {
		t.Fatalf("NewIndexWithLocate: %v", err)
	}

	cases := []struct {
		pattern string
		count   uint64
		locates map[uint64]bool
	}{
		{"iss", 2, wantSet(1, 4)},
		{"ssi", 2, wantSet(2, 5)},
		{"mississippi", 1, wantSet(0)},
		{"x", 0, wantSet()},
	}
	for _, c := range cases {
		s := ix.Search([]byte(c.pattern))
		if got := s.Count(); got != c.count {
			t.Errorf("count(%q) = %d, want %d", c.pattern, got, c.count)
		}
		if got := locateSet(t, s); !eqSet(got, c.locates) {
			t.Errorf("locate(%q) = %v, want %v", c.pattern, got, c.locates)
		}
	}
}

func TestPPINeighborhood(t *testing.T) {
	ix, err := NewIndexWithLocate(mississippiText(t), 0)
	if err != nil {
		t.Fatalf("NewIndexWithLocate: %v", err)
	}
	s := ix.Search([]byte("ppi"))
	if s.Count() != 1 {
		t.Fatalf("count(ppi) = %d, want 1", s.Count())
	}
	it := s.IterMatches()
	mt, ok := it.Next()
	if !ok {
		t.Fatal("expected a match")
	}

	var backward []byte
	bi := mt.IterCharsBackward()
	for {
		c, ok := bi.Next()
		if !ok {
			break
		}
		backward = append(backward, c)
	}
	// i, s, s, i, s, s, i, m - the text read backward from the match,
	// nearest character first.
	if got, want := string(backward), "ississim"; got != want {
		t.Errorf("backward = %q, want %q", got, want)
	}

	var forward []byte
	fi := mt.IterCharsForward()
	for {
		c, ok := fi.Next()
		if !ok {
			break
		}
		forward = append(forward, c)
	}
	if len(forward) != 0 {
		t.Errorf("forward = %q, want empty", forward)
	}
}

func TestChainingLaw(t *testing.T) {
	ix, err := NewIndex(mississippiText(t))
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	chained := ix.Search([]byte("ppi")).Search([]byte("si"))
	direct := ix.Search([]byte("sippi"))
	if chained.Count() != 1 || direct.Count() != 1 {
		t.Fatalf("counts = %d, %d, want 1, 1", chained.Count(), direct.Count())
	}
	if chained.lo != direct.lo || chained.hi != direct.hi {
		t.Errorf("chained interval [%d,%d) != direct interval [%d,%d)",
			chained.lo, chained.hi, direct.lo, direct.hi)
	}
}

// bruteForceOccurrences returns every starting position of pattern in
// content (which may include trailing bytes after the sentinel; callers
// pass only the content before it).
func bruteForceOccurrences(content, pattern string) map[uint64]bool {
	set := make(map[uint64]bool)
	if pattern == "" {
		return set
	}
	start := 0
	for {
		idx := strings.Index(content[start:], pattern)
		if idx < 0 {
			break
		}
		set[uint64(start+idx)] = true
		start += idx + 1
	}
	return set
}

func TestCountAndLocateAgainstBruteForce(t *testing.T) {
	rng := newRandomSeed(t)
	alpha := "acgt"
	for trial := 0; trial < 15; trial++ {
		n := rng.Intn(60) + 5
		txt := randomTextN(n, alpha, rng)
		content := string(txt[:n])
		text, err := NewText(txt, maxByte(alpha))
		if err != nil {
			t.Fatalf("NewText: %v", err)
		}
		ix, err := NewIndexWithLocate(text, uint8(rng.Intn(4)))
		if err != nil {
			t.Fatalf("NewIndexWithLocate: %v", err)
		}

		plen := rng.Intn(4) + 1
		start := rng.Intn(n)
		end := start + plen
		if end > n {
			end = n
		}
		pattern := content[start:end]

		want := bruteForceOccurrences(content, pattern)
		s := ix.Search([]byte(pattern))
		if got := s.Count(); got != uint64(len(want)) {
			t.Fatalf("count(%q) = %d, want %d", pattern, got, len(want))
		}
		got := locateSet(t, s)
		if !eqSet(got, want) {
			t.Fatalf("locate(%q) = %v, want %v", pattern, got, want)
		}
	}
}

func TestSamplingLevelIndependence(t *testing.T) {
	rng := newRandomSeed(t)
	alpha := "acgt"
	n := rng.Intn(80) + 10
	txt := randomTextN(n, alpha, rng)
	text, err := NewText(txt, maxByte(alpha))
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}

	start := rng.Intn(n)
	pattern := txt[start : start+1]

	var sets []map[uint64]bool
	var counts []uint64
	for level := uint8(0); level < 4; level++ {
		ix, err := NewIndexWithLocate(text, level)
		if err != nil {
			t.Fatalf("NewIndexWithLocate(level=%d): %v", level, err)
		}
		s := ix.Search(pattern)
		counts = append(counts, s.Count())
		sets = append(sets, locateSet(t, s))
	}
	for i := 1; i < len(sets); i++ {
		if counts[i] != counts[0] {
			t.Errorf("count differs across sampling levels: %v", counts)
		}
		if !eqSet(sets[i], sets[0]) {
			t.Errorf("locate set differs across sampling levels: level 0 = %v, level %d = %v", sets[0], i, sets[i])
		}
	}
}
