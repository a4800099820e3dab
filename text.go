package fmindex

import "fmt"

// maxTextLen is the largest text length this package will index, per the
// sentinel/position-width contract: positions must fit in 2^32-1.
const maxTextLen = 1<<32 - 1

// BuildErrorKind classifies why index construction refused a text.
type BuildErrorKind int

const (
	// EmptyText is returned for a zero-length input.
	EmptyText BuildErrorKind = iota
	// MissingSentinel is returned when the text does not end in a 0 byte.
	MissingSentinel
	// ExtraSentinel is returned when a 0 byte occurs before the final position.
	ExtraSentinel
	// TooLarge is returned when the text exceeds maxTextLen bytes.
	TooLarge
	// AlphabetOverflow is returned when a byte in the text exceeds the
	// declared max_char.
	AlphabetOverflow
)

func (k BuildErrorKind) String() string {
	switch k {
	case EmptyText:
		return "EmptyText"
	case MissingSentinel:
		return "MissingSentinel"
	case ExtraSentinel:
		return "ExtraSentinel"
	case TooLarge:
		return "TooLarge"
	case AlphabetOverflow:
		return "AlphabetOverflow"
	default:
		return "UnknownBuildError"
	}
}

// BuildError is returned when a Text fails validation or index construction
// cannot proceed from it.
type BuildError struct {
	Kind BuildErrorKind
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("fmindex: build failed: %s", e.Kind)
}

// Text is a validated byte sequence ready to be indexed: it ends in a
// unique sentinel (0) byte and carries the declared alphabet bound
// maxChar (at least the largest byte value it contains) so callers
// building an index know the wavelet alphabet size up front.
type Text struct {
	bytes   []byte
	maxChar byte
}

// NewText validates b as indexable text: it must be non-empty, end in a
// single 0 byte not repeated earlier, and fit within maxTextLen bytes.
// maxChar is the largest byte value that may legally occur in b; it is
// asserted against the data, not merely trusted, so the alphabet bound
// used by the wavelet matrix is always sound.
func NewText(b []byte, maxChar byte) (Text, error) {
	n := len(b)
	if n == 0 {
		return Text{}, &BuildError{Kind: EmptyText}
	}
	if n > maxTextLen {
		return Text{}, &BuildError{Kind: TooLarge}
	}
	if b[n-1] != 0 {
		return Text{}, &BuildError{Kind: MissingSentinel}
	}
	var observedMax byte
	for _, c := range b[:n-1] {
		if c == 0 {
			return Text{}, &BuildError{Kind: ExtraSentinel}
		}
		if c > observedMax {
			observedMax = c
		}
	}
	if observedMax > maxChar {
		return Text{}, &BuildError{Kind: AlphabetOverflow}
	}
	return Text{bytes: b, maxChar: maxChar}, nil
}

// Len returns the length of the text, sentinel included.
func (t Text) Len() int { return len(t.bytes) }

// MaxChar returns the largest byte value the wavelet alphabet must cover.
func (t Text) MaxChar() byte { return t.maxChar }

// concatPieces joins pieces with a 0 sentinel after each one and returns
// the concatenated bytes, the position of each sentinel (used by
// MultiPieceIndex.Translate), and the largest byte value in the pieces.
// Pieces must not themselves contain a 0 byte.
func concatPieces(pieces [][]byte) ([]byte, []uint64, byte, error) {
	total := 0
	var maxChar byte
	for _, p := range pieces {
		total += len(p) + 1
		for _, c := range p {
			if c == 0 {
				return nil, nil, 0, &BuildError{Kind: ExtraSentinel}
			}
			if c > maxChar {
				maxChar = c
			}
		}
	}
	buf := make([]byte, 0, total)
	sentinels := make([]uint64, 0, len(pieces))
	for _, p := range pieces {
		buf = append(buf, p...)
		buf = append(buf, 0)
		sentinels = append(sentinels, uint64(len(buf)-1))
	}
	return buf, sentinels, maxChar, nil
}
