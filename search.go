package fmindex

// SearchState is the BWT interval produced by backward search: rows
// [lo, hi) whose suffix starts with the searched pattern, along with
// the pattern length m. It is empty when lo >= hi. SearchState itself
// carries no locate capability; LocateState (below) is the with-locate
// counterpart produced by IndexWithLocate.Search.
type SearchState struct {
	src  bwtSource
	lo   uint32
	hi   uint32
	m    uint32
}

func newSearchState(src bwtSource, pattern []byte) SearchState {
	s := SearchState{src: src, lo: 0, hi: src.size(), m: 0}
	return s.extend(pattern)
}

// extend narrows [lo, hi) by the bytes of p, processed from last to
// first. The same loop implements both the initial search and chaining:
// only the starting interval differs.
func (s SearchState) extend(p []byte) SearchState {
	lo, hi := s.lo, s.hi
	for i := len(p) - 1; i >= 0; i-- {
		c := p[i]
		if int(c) > int(s.src.maxChar()) {
			return SearchState{src: s.src, lo: 0, hi: 0, m: s.m + uint32(len(p))}
		}
		newLo := s.src.cOf(c) + s.src.rankL(c, lo)
		newHi := s.src.cOf(c) + s.src.rankL(c, hi)
		if newLo >= newHi {
			return SearchState{src: s.src, lo: 0, hi: 0, m: s.m + uint32(len(p))}
		}
		lo, hi = newLo, newHi
	}
	return SearchState{src: s.src, lo: lo, hi: hi, m: s.m + uint32(len(p))}
}

// Count returns the number of occurrences of the searched pattern.
func (s SearchState) Count() uint64 {
	if s.lo >= s.hi {
		return 0
	}
	return uint64(s.hi - s.lo)
}

// Empty reports whether the pattern has no occurrences.
func (s SearchState) Empty() bool { return s.lo >= s.hi }

// Search chains a further backward search, prepending prefix to the
// pattern already matched: state.Search(a).Search(b) matches the same
// rows as a fresh search for b ++ a.
func (s SearchState) Search(prefix []byte) SearchState {
	return s.extend(prefix)
}

// IterMatches returns a lazy, ascending-row-order sequence of matches.
// Matches from a plain SearchState carry no locate capability.
func (s SearchState) IterMatches() *MatchIter {
	return &MatchIter{src: s.src, cur: s.lo, hi: s.hi, m: s.m}
}

// MatchIter lazily walks rows [lo, hi) in ascending order.
type MatchIter struct {
	src      bwtSource
	cur, hi  uint32
	m        uint32
}

// Next returns the next match, or ok=false once exhausted.
func (it *MatchIter) Next() (Match, bool) {
	if it.cur >= it.hi {
		return Match{}, false
	}
	mt := Match{src: it.src, row: it.cur, m: it.m}
	it.cur++
	return mt, true
}

// Match is a single occurrence, tied to the row of the index's BWT it
// came from. It never owns or clones the index: it borrows a reference
// that must outlive it.
type Match struct {
	src bwtSource
	row uint32
	m   uint32
}

// IterCharsBackward lazily yields the characters of the text immediately
// before this match, nearest first. The sentinel is never itself
// yielded: the iterator halts the step before it would be produced.
func (mt Match) IterCharsBackward() *BackwardIter {
	return &BackwardIter{src: mt.src, row: mt.row}
}

// IterCharsForward lazily yields the characters of the text immediately
// after this match's occurrence, nearest first, via the psi (inverse-LF)
// decomposition. Like the backward iterator, it halts without yielding
// the sentinel.
func (mt Match) IterCharsForward() *ForwardIter {
	// The first forward character sits at text position SA[row]+m; reading
	// it off the BWT (an L-column access) requires the row whose SA value
	// is one past that, i.e. m+1 psi-steps from the match row, not m.
	return &ForwardIter{src: mt.src, row: mt.row, remaining: mt.m + 1, started: false}
}

// BackwardIter walks LF from a match row, yielding L at each step.
type BackwardIter struct {
	src  bwtSource
	row  uint32
	done bool
}

// Next returns the next character before the match, or ok=false once the
// sentinel would be produced or the text start has been reached.
func (it *BackwardIter) Next() (byte, bool) {
	if it.done {
		return 0, false
	}
	c := it.src.accessL(it.row)
	if c == 0 {
		it.done = true
		return 0, false
	}
	it.row = lf(it.src, it.row)
	return c, true
}

// ForwardIter walks psi from a match row advanced past the matched
// pattern, yielding the text's forward neighborhood one psi-step at a
// time.
type ForwardIter struct {
	src       bwtSource
	row       uint32
	remaining uint32
	started   bool
	done      bool
}

// Next returns the next character after the match's occurrence, or
// ok=false once the sentinel would be produced.
func (it *ForwardIter) Next() (byte, bool) {
	if it.done {
		return 0, false
	}
	if !it.started {
		it.started = true
		for ; it.remaining > 0; it.remaining-- {
			it.row = psi(it.src, it.row)
		}
	} else {
		it.row = psi(it.src, it.row)
	}
	c := it.src.accessL(it.row)
	if c == 0 {
		it.done = true
		return 0, false
	}
	return c, true
}

// LocateState is the with-locate counterpart of SearchState, produced by
// IndexWithLocate.Search (and its RLFM/MultiPiece equivalents).
type LocateState struct {
	SearchState
	samp *sampler
}

// Search chains a further backward search while preserving locate
// capability, matching SearchState.Search's chaining behavior.
func (s LocateState) Search(prefix []byte) LocateState {
	return LocateState{SearchState: s.SearchState.Search(prefix), samp: s.samp}
}

// IterMatches returns a lazy, ascending-row-order sequence of locatable
// matches.
func (s LocateState) IterMatches() *LocateMatchIter {
	return &LocateMatchIter{inner: s.SearchState.IterMatches(), samp: s.samp}
}

// LocateMatchIter is the with-locate counterpart of MatchIter.
type LocateMatchIter struct {
	inner *MatchIter
	samp  *sampler
}

// Next returns the next locatable match, or ok=false once exhausted.
func (it *LocateMatchIter) Next() (LocateMatch, bool) {
	mt, ok := it.inner.Next()
	if !ok {
		return LocateMatch{}, false
	}
	return LocateMatch{Match: mt, samp: it.samp}, true
}

// LocateMatch is the with-locate counterpart of Match: the same
// occurrence, plus the sampled suffix array needed to resolve its text
// position.
type LocateMatch struct {
	Match
	samp *sampler
}

// Locate returns the text position of this occurrence.
func (mt LocateMatch) Locate() uint64 {
	return mt.samp.locate(mt.src, mt.row)
}
