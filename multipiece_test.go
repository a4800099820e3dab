package fmindex

import "testing"

func TestMultiPieceTranslate(t *testing.T) {
	pieces := [][]byte{[]byte("foo"), []byte("far"), []byte("baz")}
	mp, err := NewMultiPieceIndex(pieces, 1)
	if err != nil {
		t.Fatalf("NewMultiPieceIndex: %v", err)
	}

	s := mp.Search([]byte("a"))
	if got, want := s.Count(), uint64(2); got != want {
		t.Fatalf("count(a) = %d, want %d", got, want)
	}

	var got [][2]uint64
	it := s.IterMatches()
	for {
		mt, ok := it.Next()
		if !ok {
			break
		}
		pieceID, offset := mp.Translate(mt.Locate())
		got = append(got, [2]uint64{uint64(pieceID), offset})
	}

	want := map[[2]uint64]bool{{1, 1}: true, {2, 1}: true}
	if len(got) != len(want) {
		t.Fatalf("translated matches = %v, want %v", got, want)
	}
	for _, g := range got {
		if !want[g] {
			t.Errorf("unexpected translated match %v, want one of %v", g, want)
		}
	}
}

func TestMultiPieceTranslateBoundaries(t *testing.T) {
	pieces := [][]byte{[]byte("foo"), []byte("far"), []byte("baz")}
	mp, err := NewMultiPieceIndex(pieces, 1)
	if err != nil {
		t.Fatalf("NewMultiPieceIndex: %v", err)
	}

	cases := []struct {
		pos       uint64
		pieceID   int
		offset    uint64
	}{
		{0, 0, 0},  // 'f' of "foo"
		{3, 0, 3},  // sentinel of "foo"
		{4, 1, 0},  // 'f' of "far"
		{7, 1, 3},  // sentinel of "far"
		{8, 2, 0},  // 'b' of "baz"
		{11, 2, 3}, // sentinel of "baz"
	}
	for _, c := range cases {
		pieceID, offset := mp.Translate(c.pos)
		if pieceID != c.pieceID || offset != c.offset {
			t.Errorf("Translate(%d) = (%d, %d), want (%d, %d)", c.pos, pieceID, offset, c.pieceID, c.offset)
		}
	}
}

func TestMultiPieceRejectsEmbeddedSentinel(t *testing.T) {
	pieces := [][]byte{[]byte("foo"), []byte("f\x00r")}
	_, err := NewMultiPieceIndex(pieces, 1)
	assertBuildErrorKind(t, err, ExtraSentinel)
}
