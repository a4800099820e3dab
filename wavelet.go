package fmindex

import waveletmatrix "github.com/hideo55/go-waveletmatrix"

// bwtSource is the abstract interface backward search, sampling, and the
// character iterators are written against. FM and RLFM give genuinely
// different concrete implementations; nothing above this interface
// needs to know which one it is talking to.
type bwtSource interface {
	size() uint32
	maxChar() byte
	cOf(c byte) uint32
	rankL(c byte, i uint32) uint32
	accessL(i uint32) byte
	selectL(c byte, k uint32) uint32
}

// fmCore is the plain FM backend: the BWT stored verbatim inside a
// go-waveletmatrix wavelet matrix, alongside the character-prefix table.
type fmCore struct {
	wm  waveletmatrix.WaveletMatrix
	c   *cTable
	n   uint32
	mx  byte
}

func newFMCore(l []byte, maxChar byte) (*fmCore, error) {
	src := make([]uint64, len(l))
	for i, b := range l {
		src[i] = uint64(b)
	}
	wm, err := waveletmatrix.NewWM(src)
	if err != nil {
		return nil, err
	}
	return &fmCore{
		wm: wm,
		c:  newCTable(l, int(maxChar)+1),
		n:  uint32(len(l)),
		mx: maxChar,
	}, nil
}

func (f *fmCore) size() uint32    { return f.n }
func (f *fmCore) maxChar() byte   { return f.mx }
func (f *fmCore) cOf(c byte) uint32 { return f.c.of(c) }

func (f *fmCore) rankL(c byte, i uint32) uint32 {
	r, _ := f.wm.Rank(uint64(c), uint64(i))
	return uint32(r)
}

func (f *fmCore) accessL(i uint32) byte {
	v, _ := f.wm.Lookup(uint64(i))
	return byte(v)
}

func (f *fmCore) selectL(c byte, k uint32) uint32 {
	pos, _ := f.wm.Select(uint64(c), uint64(k))
	return uint32(pos)
}
