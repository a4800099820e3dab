// Package fmindex is a compressed full-text self-index: given a byte
// text terminated by a unique sentinel, it answers substring count,
// locate, and forward/backward neighborhood queries without keeping the
// text itself around in plain form.
//
// Three backends share the same query algebra (SearchState/LocateState,
// Match/LocateMatch): Index/IndexWithLocate store the BWT verbatim in a
// wavelet matrix; RLFMIndex/RLFMIndexWithLocate run-length compress it;
// MultiPieceIndex wraps an IndexWithLocate over the concatenation of several texts
// with translation back to (piece, offset).
package fmindex
