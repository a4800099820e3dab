package fmindex

// Suffix array construction by prefix doubling: suffixes are sorted with
// respect to progressively longer prefixes, doubling the prefix length
// considered on every pass, until the assigned ranks are already a
// permutation (every suffix has a unique rank and therefore a unique
// sorted position). Each pass is a radix sort over 32-bit rank pairs, so
// the whole construction is O(n log n) rather than the asymptotically
// faster O(n) SA-IS approach; that tradeoff is recorded in DESIGN.md.

// calcRank0 assigns each byte of content a dense rank starting at 1 (0 is
// reserved for the implicit sentinel/padding), and returns one rank per
// content byte plus the sentinel's rank 0 at the end.
func calcRank0(content []byte) (rank []int32, sigma int32) {
	var alpha [256]int32
	rank = make([]int32, len(content)+1)

	for _, a := range content {
		alpha[a] = 1
	}

	sigma = 1 // start at 1, 0 is the sentinel
	for a := 0; a < 256; a++ {
		if alpha[a] == 1 {
			alpha[a] = sigma
			sigma++
		}
	}

	for i, a := range content {
		rank[i] = alpha[a]
	}
	// rank[len(content)] is left at 0: the sentinel.

	return rank, sigma
}

func sa0(n int) []int32 {
	sa := make([]int32, n)
	for i := range sa {
		sa[i] = int32(i)
	}
	return sa
}

// getRank returns rank[i] padded with zeros past the end of rank, so a
// suffix's k-th doubled prefix can always be compared even near the end
// of the text.
func getRank(rank []int32, i int32) int32 {
	if int(i) < len(rank) {
		return rank[i]
	}
	return 0
}

// radixSortBuckets sorts sa by getRank(rank, sa[i]+k), stably, via four
// byte-wise bucket passes over the 32-bit rank value.
func radixSortBuckets(rank, sa, buf []int32, k int32) {
	saP, bufP := &sa, &buf

	for shift := 0; shift < 32; shift += 8 {
		var buckets [256]int32
		for i := range sa {
			b := getRank(rank, (*saP)[i]+k) >> shift
			buckets[b&0xff]++
		}
		var acc int32
		for i := 0; i < 256; i++ {
			b := buckets[i]
			buckets[i] = acc
			acc += b
		}
		for i := range sa {
			b := getRank(rank, (*saP)[i]+k) >> shift
			(*bufP)[buckets[b&0xff]] = (*saP)[i]
			buckets[b&0xff]++
		}

		saP, bufP = bufP, saP
	}
	// Four (even) passes: the sorted result ends back up in sa, not buf.
}

// radixSort re-sorts each bucket of suffixes that currently share a rank,
// by their rank k positions further along, leaving sa refined in place.
func radixSort(k int32, rank, sa, buf []int32) {
	start, end := 0, 0
	for start < len(sa) {
		for end < len(sa) && rank[sa[start]] == rank[sa[end]] {
			end++
		}
		if end-start > 1 {
			radixSortBuckets(rank, sa[start:end], buf[start:end], k)
		}
		start = end
	}
}

// updateRank assigns a fresh dense rank to each suffix in sa, now ordered
// by the pair (rank[sa[i]], rank[sa[i]+k]), and reports the resulting
// alphabet size (number of distinct ranks).
func updateRank(sa, rank, out []int32, k int32) (sigma int32) {
	pair := func(i int) int64 {
		return int64(rank[sa[i]])<<32 | int64(getRank(rank, sa[i]+k))
	}

	a := int32(0)
	out[sa[0]] = a
	prevPair := pair(0)
	for i := 1; i < len(sa); i++ {
		curPair := pair(i)
		if prevPair != curPair {
			a++
		}
		prevPair = curPair
		out[sa[i]] = a
	}

	return a + 1
}

// buildSuffixArray computes the suffix array of a validated Text: the
// sentinel is never scanned as ordinary content (it sorts first by
// construction, giving sa[0] = n-1), and the result is narrowed to
// uint32 since texts are bounded to 2^32-1 bytes.
func buildSuffixArray(t Text) []uint32 {
	content := t.bytes[:len(t.bytes)-1]

	sa := sa0(len(content) + 1)
	buf := make([]int32, len(sa))
	rank, sigma := calcRank0(content)
	radixSortBuckets(rank, sa, buf, 0)

	bufP, rankP := &buf, &rank
	for k := int32(1); int(sigma) < len(rank); k *= 2 {
		radixSort(k, *rankP, sa, *bufP)
		sigma = updateRank(sa, *rankP, *bufP, k)
		bufP, rankP = rankP, bufP
	}

	out := make([]uint32, len(sa))
	for i, v := range sa {
		out[i] = uint32(v)
	}
	return out
}
