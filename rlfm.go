package fmindex

import (
	"sort"

	waveletmatrix "github.com/hideo55/go-waveletmatrix"
)

// rlfmCore is the run-length FM backend: the BWT is partitioned into
// maximal same-character runs, and only the run heads are stored in
// a wavelet matrix, alongside two bit vectors that let rank_L and
// access_L be recovered without ever materializing the full BWT:
//
//   - b marks the start of each run in BWT (text) order.
//   - bp marks the start of each run when runs are instead listed
//     grouped by head character, in run order within each group. Because
//     grouping by character reproduces exactly the character-count
//     partition, group c occupies grouped-array positions [C[c], C[c+1)),
//     so walking bp's run starts inside that range gives the cumulative
//     length of c's runs directly.
//   - heads is a wavelet matrix over one byte per run (its head
//     character), indexed in BWT run order — the same order b uses.
//   - c is the ordinary character-prefix table computed once over the
//     full BWT; cRuns is the analogous prefix table over run counts per
//     character.
type rlfmCore struct {
	heads waveletmatrix.WaveletMatrix
	b     *bitVector
	bp    *bitVector
	c     *cTable
	cRuns *cTable
	n     uint32
	mx    byte
}

func newRLFMCore(l []byte, maxChar byte) (*rlfmCore, error) {
	runHeads, runLens, runStarts := extractRuns(l)

	headSrc := make([]uint64, len(runHeads))
	for i, h := range runHeads {
		headSrc[i] = uint64(h)
	}
	headsWM, err := waveletmatrix.NewWM(headSrc)
	if err != nil {
		return nil, err
	}

	sigma := int(maxChar) + 1
	c := newCTable(l, sigma)
	cRuns := newCTable(runHeads, sigma)

	b := newBitVector(uint32(len(l)), runStarts)
	bp := buildGroupedRunStarts(runHeads, runLens, c, sigma)

	return &rlfmCore{
		heads: headsWM,
		b:     b,
		bp:    bp,
		c:     c,
		cRuns: cRuns,
		n:     uint32(len(l)),
		mx:    maxChar,
	}, nil
}

// extractRuns partitions l into maximal same-character runs, returning
// one head byte and one length per run, plus the BWT-order starting
// position of each run.
func extractRuns(l []byte) (heads []byte, lens []uint32, starts []uint32) {
	i := 0
	for i < len(l) {
		j := i + 1
		for j < len(l) && l[j] == l[i] {
			j++
		}
		heads = append(heads, l[i])
		lens = append(lens, uint32(j-i))
		starts = append(starts, uint32(i))
		i = j
	}
	return heads, lens, starts
}

// buildGroupedRunStarts lays runs out grouped by head character (runs of
// the same original relative order within a group), and marks each
// group's run boundaries in grouped-array coordinates. Group c starts at
// grouped position c.of(c), matching the character-count partition.
func buildGroupedRunStarts(heads []byte, lens []uint32, c *cTable, sigma int) *bitVector {
	cursor := make([]uint32, sigma)
	for ch := 0; ch < sigma; ch++ {
		cursor[ch] = c.of(byte(ch))
	}
	n := c.cumsum[sigma]

	starts := make([]uint32, len(heads))
	for i, h := range heads {
		starts[i] = cursor[h]
		cursor[h] += lens[i]
	}
	// starts is increasing within each character's own runs but the
	// per-character cursors are interleaved in original run order, so the
	// full slice needs sorting before newBitVector (which expects
	// strictly increasing positions) can consume it.
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	return newBitVector(n, starts)
}

func (r *rlfmCore) size() uint32      { return r.n }
func (r *rlfmCore) maxChar() byte     { return r.mx }
func (r *rlfmCore) cOf(c byte) uint32 { return r.c.of(c) }

// runAt returns the 0-based index of the run containing BWT position i.
func (r *rlfmCore) runAt(i uint32) uint32 {
	return r.b.rank1(i+1) - 1
}

func (r *rlfmCore) rankL(c byte, i uint32) uint32 {
	if i == 0 {
		return 0
	}
	if i == r.n {
		return r.c.cumsum[int(c)+1] - r.c.cumsum[c]
	}
	run := r.runAt(i)
	k, _ := r.heads.Rank(uint64(c), uint64(run))
	fullcount := r.cumRunLen(c, uint32(k))

	head := r.runHead(run)
	partial := uint32(0)
	if head == c {
		partial = i - r.b.select1(run)
	}
	return fullcount + partial
}

// cumRunLen returns the combined length of the first k runs of head c.
func (r *rlfmCore) cumRunLen(c byte, k uint32) uint32 {
	total := r.cRuns.cumsum[int(c)+1] - r.cRuns.cumsum[c]
	if k == total {
		return r.c.cumsum[int(c)+1] - r.c.cumsum[c]
	}
	return r.bp.select1(r.cRuns.of(c)+k) - r.c.of(c)
}

func (r *rlfmCore) runHead(run uint32) byte {
	v, _ := r.heads.Lookup(uint64(run))
	return byte(v)
}

func (r *rlfmCore) accessL(i uint32) byte {
	return r.runHead(r.runAt(i))
}

func (r *rlfmCore) selectL(c byte, k uint32) uint32 {
	groupedPos := r.c.of(c) + k
	groupedRun := r.bp.rank1(groupedPos+1) - 1
	j := groupedRun - r.cRuns.of(c)
	runStartGrouped := r.bp.select1(groupedRun)
	offset := groupedPos - runStartGrouped

	originalRun, _ := r.heads.Select(uint64(c), uint64(j))
	start := r.b.select1(uint32(originalRun))
	return start + offset
}

// RLFMIndex is the run-length-compressed counterpart of Index: same
// query algebra, no locate capability.
type RLFMIndex struct {
	src bwtSource
}

// NewRLFMIndex builds a run-length FM-index from t.
func NewRLFMIndex(t Text) (*RLFMIndex, error) {
	sa := buildSuffixArray(t)
	l := buildBWT(t, sa)
	core, err := newRLFMCore(l, t.maxChar)
	if err != nil {
		return nil, err
	}
	return &RLFMIndex{src: core}, nil
}

// Len returns the length of the indexed text, sentinel included.
func (ix *RLFMIndex) Len() uint64 { return uint64(ix.src.size()) }

// Search runs backward search for pattern over the index.
func (ix *RLFMIndex) Search(pattern []byte) SearchState {
	return newSearchState(ix.src, pattern)
}

// RLFMIndexWithLocate is the run-length-compressed counterpart of
// IndexWithLocate.
type RLFMIndexWithLocate struct {
	RLFMIndex
	samp *sampler
}

// NewRLFMIndexWithLocate builds a run-length FM-index with a sampled
// suffix array at the given stride level.
func NewRLFMIndexWithLocate(t Text, level uint8) (*RLFMIndexWithLocate, error) {
	sa := buildSuffixArray(t)
	l := buildBWT(t, sa)
	core, err := newRLFMCore(l, t.maxChar)
	if err != nil {
		return nil, err
	}
	return &RLFMIndexWithLocate{
		RLFMIndex: RLFMIndex{src: core},
		samp:      newSampler(sa, level),
	}, nil
}

// Search runs backward search for pattern over the index, returning a
// LocateState whose matches support Locate.
func (ix *RLFMIndexWithLocate) Search(pattern []byte) LocateState {
	return LocateState{SearchState: newSearchState(ix.src, pattern), samp: ix.samp}
}
