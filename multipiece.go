package fmindex

import "sort"

// MultiPieceIndex indexes the concatenation of several independent byte
// pieces, each terminated by its own sentinel. It is a thin wrapper over
// an ordinary with-locate FM index plus the list of sentinel positions
// needed to translate a global position back into (piece_id, offset).
type MultiPieceIndex struct {
	*IndexWithLocate
	sentinels []uint64
}

// NewMultiPieceIndex concatenates pieces (none of which may contain a 0
// byte) with a sentinel after each, and builds a with-locate FM index
// over the result.
func NewMultiPieceIndex(pieces [][]byte, level uint8) (*MultiPieceIndex, error) {
	buf, sentinels, maxChar, err := concatPieces(pieces)
	if err != nil {
		return nil, err
	}
	t, err := NewText(buf, maxChar)
	if err != nil {
		return nil, err
	}
	ix, err := NewIndexWithLocate(t, level)
	if err != nil {
		return nil, err
	}
	return &MultiPieceIndex{IndexWithLocate: ix, sentinels: sentinels}, nil
}

// Translate maps a global locate position back to the piece that
// contains it and the offset within that piece: piece_id is the number
// of sentinels at positions strictly before pos.
func (mp *MultiPieceIndex) Translate(pos uint64) (pieceID int, offset uint64) {
	pieceID = sort.Search(len(mp.sentinels), func(i int) bool {
		return mp.sentinels[i] >= pos
	})
	var start uint64
	if pieceID > 0 {
		start = mp.sentinels[pieceID-1] + 1
	}
	return pieceID, pos - start
}
