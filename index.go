package fmindex

// Index is a built FM-index without locate capability: it answers count
// and match-iteration queries but Match values derived from it carry no
// Locate method.
type Index struct {
	src bwtSource
}

// NewIndex builds an Index from t (already validated by NewText): suffix array, BWT,
// wavelet matrix, and character-prefix table. No sampled suffix array
// is built, so locate is unavailable on the result.
func NewIndex(t Text) (*Index, error) {
	sa := buildSuffixArray(t)
	l := buildBWT(t, sa)
	core, err := newFMCore(l, t.maxChar)
	if err != nil {
		return nil, err
	}
	return &Index{src: core}, nil
}

// Len returns the length of the indexed text, sentinel included.
func (ix *Index) Len() uint64 { return uint64(ix.src.size()) }

// Search runs backward search for pattern over the index.
func (ix *Index) Search(pattern []byte) SearchState {
	return newSearchState(ix.src, pattern)
}

// IndexWithLocate is a built FM-index with a sampled suffix array: Match
// values derived from it carry a Locate method.
type IndexWithLocate struct {
	Index
	samp *sampler
}

// NewIndexWithLocate builds an index with a sampled suffix array at the
// given stride level from t (already validated by NewText). level must be
// in [0, 63].
func NewIndexWithLocate(t Text, level uint8) (*IndexWithLocate, error) {
	sa := buildSuffixArray(t)
	l := buildBWT(t, sa)
	core, err := newFMCore(l, t.maxChar)
	if err != nil {
		return nil, err
	}
	return &IndexWithLocate{
		Index: Index{src: core},
		samp:  newSampler(sa, level),
	}, nil
}

// Search runs backward search for pattern over the index, returning a
// LocateState whose matches support Locate.
func (ix *IndexWithLocate) Search(pattern []byte) LocateState {
	return LocateState{SearchState: newSearchState(ix.src, pattern), samp: ix.samp}
}
