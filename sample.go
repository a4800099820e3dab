package fmindex

// sampler is a sampled suffix array: every row whose SA value is a
// multiple of the stride 2^level is retained, marked by a bit vector,
// with the retained values themselves compressed by the stride. locate
// walks LF until it lands on a marked row.
type sampler struct {
	level  uint8
	stride uint64
	marked *bitVector
	values []uint32
}

func newSampler(sa []uint32, level uint8) *sampler {
	// stride must be computed in a width wide enough to hold 1<<63 (the
	// largest level this type accepts); a uint32 stride silently wraps to
	// 0 for level >= 32 and every division/modulus below it would panic.
	stride := uint64(1) << level
	// capHint avoids converting stride itself to int: a stride above
	// len(sa) still fits a uint64 but would overflow a signed int capacity
	// on its own, and every row beyond the sentinel stops being sampled at
	// that point anyway (only SA=0 ever divides evenly by it).
	capHint := 1
	if stride <= uint64(len(sa)) {
		capHint = len(sa)/int(stride) + 1
	}
	set := make([]uint32, 0, capHint)
	values := make([]uint32, 0, capHint)
	for i, s := range sa {
		if uint64(s)%stride == 0 {
			set = append(set, uint32(i))
			values = append(values, uint32(uint64(s)/stride))
		}
	}
	return &sampler{
		level:  level,
		stride: stride,
		marked: newBitVector(uint32(len(sa)), set),
		values: values,
	}
}

// locate walks LF from row i until a sampled row is reached, then returns
// SA[i] reconstructed from the sample plus the step count. Bounded by the
// sampling stride.
func (s *sampler) locate(src bwtSource, i uint32) uint64 {
	var steps uint32
	for !s.marked.get(i) {
		i = lf(src, i)
		steps++
	}
	v := s.values[s.marked.rank1(i)]
	return uint64(v)*uint64(s.stride) + uint64(steps)
}

// lf computes the LF-mapping: the BWT row of the suffix immediately
// preceding row i in text order.
func lf(src bwtSource, i uint32) uint32 {
	c := src.accessL(i)
	return src.cOf(c) + src.rankL(c, i)
}

// psi is the inverse of lf: the BWT row whose suffix follows row i's
// suffix by exactly one character (SA[psi(i)] = SA[i]+1). It is derived
// from the C table and a select on the BWT: find the character F[i] that
// row i's first column holds by locating i's character-prefix bucket,
// then ask for the (i - C[F[i]])-th occurrence of that character in L.
// This is the standard FM-index decomposition; neither backend's
// wavelet library hands it to us directly, so it is implemented once
// here and shared by both.
func psi(src bwtSource, i uint32) uint32 {
	c := firstColumnChar(src, i)
	return src.selectL(c, i-src.cOf(c))
}

// firstColumnChar returns F[i], the character of the first BWT column at
// row i, found by binary search over the C table: F[i] = c iff
// C[c] <= i < C[c+1].
func firstColumnChar(src bwtSource, i uint32) byte {
	lo, hi := 0, int(src.maxChar())+1
	for lo < hi {
		mid := (lo + hi) / 2
		if src.cOf(byte(mid)) <= i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return byte(lo - 1)
}
