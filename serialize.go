package fmindex

import (
	"bytes"
	"encoding/binary"
	"errors"

	waveletmatrix "github.com/hideo55/go-waveletmatrix"
)

// Binary layout: little-endian throughout, FM magic "FMIDXv01",
// followed by n, max_char, the C table, the wavelet matrix's own
// marshaled blob (length-prefixed), and an optional sampling block.
// RLFM and MultiPiece start with their own variant tag in place of the
// FM magic. RLFM additionally stores its run-count table and the B/B'
// bit vectors before the run-head wavelet blob; MultiPiece appends a
// length-prefixed sentinel position list after the sampling block.

var (
	fmMagic = [8]byte{'F', 'M', 'I', 'D', 'X', 'v', '0', '1'}
	rlfmMagic = [8]byte{'R', 'L', 'F', 'M', 'v', '0', '1', 0}
	mpMagic = [8]byte{'F', 'M', 'M', 'P', 'v', '0', '1', 0}
)

// ErrInvalidFormat is returned when binary input does not match the
// expected layout or magic.
var ErrInvalidFormat = errors.New("fmindex: invalid binary format")

func (bv *bitVector) marshal(buf *bytes.Buffer) {
	binary.Write(buf, binary.LittleEndian, bv.n)
	binary.Write(buf, binary.LittleEndian, uint64(len(bv.words)))
	binary.Write(buf, binary.LittleEndian, bv.words)
}

func unmarshalBitVector(r *bytes.Reader) (*bitVector, error) {
	var n uint32
	var nwords uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, ErrInvalidFormat
	}
	if err := binary.Read(r, binary.LittleEndian, &nwords); err != nil {
		return nil, ErrInvalidFormat
	}
	words := make([]uint64, nwords)
	if err := binary.Read(r, binary.LittleEndian, words); err != nil {
		return nil, ErrInvalidFormat
	}
	return buildBitVector(n, words), nil
}

func (s *sampler) marshal(buf *bytes.Buffer) {
	buf.WriteByte(s.level)
	s.marked.marshal(buf)
	binary.Write(buf, binary.LittleEndian, uint64(len(s.values)))
	binary.Write(buf, binary.LittleEndian, s.values)
}

func unmarshalSampler(r *bytes.Reader) (*sampler, error) {
	level, err := r.ReadByte()
	if err != nil {
		return nil, ErrInvalidFormat
	}
	marked, err := unmarshalBitVector(r)
	if err != nil {
		return nil, err
	}
	var nvals uint64
	if err := binary.Read(r, binary.LittleEndian, &nvals); err != nil {
		return nil, ErrInvalidFormat
	}
	values := make([]uint32, nvals)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return nil, ErrInvalidFormat
	}
	return &sampler{level: level, stride: uint64(1) << level, marked: marked, values: values}, nil
}

// MarshalBinary encodes the index per the FM layout.
func (ix *Index) MarshalBinary() ([]byte, error) {
	core := ix.src.(*fmCore)
	var buf bytes.Buffer
	buf.Write(fmMagic[:])
	marshalFMCore(&buf, core)
	return buf.Bytes(), nil
}

// UnmarshalIndex decodes an Index previously written by MarshalBinary.
func UnmarshalIndex(data []byte) (*Index, error) {
	r := bytes.NewReader(data)
	if err := expectMagic(r, fmMagic); err != nil {
		return nil, err
	}
	core, err := unmarshalFMCore(r)
	if err != nil {
		return nil, err
	}
	return &Index{src: core}, nil
}

// MarshalBinary encodes the index, with its sampled suffix array, per
// the FM layout.
func (ix *IndexWithLocate) MarshalBinary() ([]byte, error) {
	core := ix.src.(*fmCore)
	var buf bytes.Buffer
	buf.Write(fmMagic[:])
	marshalFMCore(&buf, core)
	ix.samp.marshal(&buf)
	return buf.Bytes(), nil
}

// UnmarshalIndexWithLocate decodes an IndexWithLocate previously written
// by MarshalBinary.
func UnmarshalIndexWithLocate(data []byte) (*IndexWithLocate, error) {
	r := bytes.NewReader(data)
	if err := expectMagic(r, fmMagic); err != nil {
		return nil, err
	}
	core, err := unmarshalFMCore(r)
	if err != nil {
		return nil, err
	}
	samp, err := unmarshalSampler(r)
	if err != nil {
		return nil, err
	}
	return &IndexWithLocate{Index: Index{src: core}, samp: samp}, nil
}

func marshalFMCore(buf *bytes.Buffer, core *fmCore) {
	binary.Write(buf, binary.LittleEndian, uint64(core.n))
	binary.Write(buf, binary.LittleEndian, uint32(core.mx))
	binary.Write(buf, binary.LittleEndian, core.c.cumsum)

	blob, _ := core.wm.MarshalBinary()
	binary.Write(buf, binary.LittleEndian, uint64(len(blob)))
	buf.Write(blob)
}

func unmarshalFMCore(r *bytes.Reader) (*fmCore, error) {
	var n uint64
	var mx uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, ErrInvalidFormat
	}
	if err := binary.Read(r, binary.LittleEndian, &mx); err != nil {
		return nil, ErrInvalidFormat
	}
	cumsum := make([]uint32, int(mx)+2)
	if err := binary.Read(r, binary.LittleEndian, cumsum); err != nil {
		return nil, ErrInvalidFormat
	}
	var blobLen uint64
	if err := binary.Read(r, binary.LittleEndian, &blobLen); err != nil {
		return nil, ErrInvalidFormat
	}
	blob := make([]byte, blobLen)
	if _, err := r.Read(blob); err != nil {
		return nil, ErrInvalidFormat
	}
	wm, err := waveletmatrix.NewWMFromBinary(blob)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return &fmCore{wm: wm, c: &cTable{cumsum: cumsum}, n: uint32(n), mx: byte(mx)}, nil
}

func expectMagic(r *bytes.Reader, want [8]byte) error {
	var got [8]byte
	if _, err := r.Read(got[:]); err != nil || got != want {
		return ErrInvalidFormat
	}
	return nil
}

func marshalRLFMCore(buf *bytes.Buffer, core *rlfmCore) {
	binary.Write(buf, binary.LittleEndian, uint64(core.n))
	binary.Write(buf, binary.LittleEndian, uint32(core.mx))
	binary.Write(buf, binary.LittleEndian, core.c.cumsum)
	binary.Write(buf, binary.LittleEndian, core.cRuns.cumsum)
	core.b.marshal(buf)
	core.bp.marshal(buf)

	blob, _ := core.heads.MarshalBinary()
	binary.Write(buf, binary.LittleEndian, uint64(len(blob)))
	buf.Write(blob)
}

func unmarshalRLFMCore(r *bytes.Reader) (*rlfmCore, error) {
	var n uint64
	var mx uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, ErrInvalidFormat
	}
	if err := binary.Read(r, binary.LittleEndian, &mx); err != nil {
		return nil, ErrInvalidFormat
	}
	cumsum := make([]uint32, int(mx)+2)
	if err := binary.Read(r, binary.LittleEndian, cumsum); err != nil {
		return nil, ErrInvalidFormat
	}
	cumsumRuns := make([]uint32, int(mx)+2)
	if err := binary.Read(r, binary.LittleEndian, cumsumRuns); err != nil {
		return nil, ErrInvalidFormat
	}
	b, err := unmarshalBitVector(r)
	if err != nil {
		return nil, err
	}
	bp, err := unmarshalBitVector(r)
	if err != nil {
		return nil, err
	}
	var blobLen uint64
	if err := binary.Read(r, binary.LittleEndian, &blobLen); err != nil {
		return nil, ErrInvalidFormat
	}
	blob := make([]byte, blobLen)
	if _, err := r.Read(blob); err != nil {
		return nil, ErrInvalidFormat
	}
	heads, err := waveletmatrix.NewWMFromBinary(blob)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return &rlfmCore{
		heads: heads,
		b:     b,
		bp:    bp,
		c:     &cTable{cumsum: cumsum},
		cRuns: &cTable{cumsum: cumsumRuns},
		n:     uint32(n),
		mx:    byte(mx),
	}, nil
}

// MarshalBinary encodes the index per the RLFM layout.
func (ix *RLFMIndex) MarshalBinary() ([]byte, error) {
	core := ix.src.(*rlfmCore)
	var buf bytes.Buffer
	buf.Write(rlfmMagic[:])
	marshalRLFMCore(&buf, core)
	return buf.Bytes(), nil
}

// UnmarshalRLFMIndex decodes an RLFMIndex previously written by
// MarshalBinary.
func UnmarshalRLFMIndex(data []byte) (*RLFMIndex, error) {
	r := bytes.NewReader(data)
	if err := expectMagic(r, rlfmMagic); err != nil {
		return nil, err
	}
	core, err := unmarshalRLFMCore(r)
	if err != nil {
		return nil, err
	}
	return &RLFMIndex{src: core}, nil
}

// MarshalBinary encodes the index, with its sampled suffix array, per
// the RLFM layout.
func (ix *RLFMIndexWithLocate) MarshalBinary() ([]byte, error) {
	core := ix.src.(*rlfmCore)
	var buf bytes.Buffer
	buf.Write(rlfmMagic[:])
	marshalRLFMCore(&buf, core)
	ix.samp.marshal(&buf)
	return buf.Bytes(), nil
}

// UnmarshalRLFMIndexWithLocate decodes an RLFMIndexWithLocate previously
// written by MarshalBinary.
func UnmarshalRLFMIndexWithLocate(data []byte) (*RLFMIndexWithLocate, error) {
	r := bytes.NewReader(data)
	if err := expectMagic(r, rlfmMagic); err != nil {
		return nil, err
	}
	core, err := unmarshalRLFMCore(r)
	if err != nil {
		return nil, err
	}
	samp, err := unmarshalSampler(r)
	if err != nil {
		return nil, err
	}
	return &RLFMIndexWithLocate{RLFMIndex: RLFMIndex{src: core}, samp: samp}, nil
}

// MarshalBinary encodes the index per the MultiPiece layout: the FM
// layout (with locate) followed by the length-prefixed sentinel list.
func (mp *MultiPieceIndex) MarshalBinary() ([]byte, error) {
	core := mp.src.(*fmCore)
	var buf bytes.Buffer
	buf.Write(mpMagic[:])
	marshalFMCore(&buf, core)
	mp.samp.marshal(&buf)
	binary.Write(&buf, binary.LittleEndian, uint64(len(mp.sentinels)))
	binary.Write(&buf, binary.LittleEndian, mp.sentinels)
	return buf.Bytes(), nil
}

// UnmarshalMultiPieceIndex decodes a MultiPieceIndex previously written
// by MarshalBinary.
func UnmarshalMultiPieceIndex(data []byte) (*MultiPieceIndex, error) {
	r := bytes.NewReader(data)
	if err := expectMagic(r, mpMagic); err != nil {
		return nil, err
	}
	core, err := unmarshalFMCore(r)
	if err != nil {
		return nil, err
	}
	samp, err := unmarshalSampler(r)
	if err != nil {
		return nil, err
	}
	var nsent uint64
	if err := binary.Read(r, binary.LittleEndian, &nsent); err != nil {
		return nil, ErrInvalidFormat
	}
	sentinels := make([]uint64, nsent)
	if err := binary.Read(r, binary.LittleEndian, sentinels); err != nil {
		return nil, ErrInvalidFormat
	}
	return &MultiPieceIndex{
		IndexWithLocate: &IndexWithLocate{Index: Index{src: core}, samp: samp},
		sentinels:       sentinels,
	}, nil
}
