package hdf5

import (
	"bufio"
	"bytes"
)

var heapSignature = []byte{'H', 'E', 'A', 'P'}

// localHeap holds a group's link names as NUL-terminated strings. The
// whole data segment is read up front; name lookups then stay in memory.
type localHeap struct {
	dataSize    uint64
	dataAddress uint64
	data        []byte
}

func readLocalHeap(f *raFile, address uint64) *localHeap {
	bf := bufio.NewReader(f.seekAt(int64(address)))
	sig := readBytes(bf, 4)
	assertErrorf(bytes.Equal(sig, heapSignature), ErrCorrupted,
		"local heap signature %q", sig)
	version := read8(bf)
	assertErrorf(version == 0, ErrVersion, "local heap version %d", version)
	skip(bf, 3) // reserved
	h := &localHeap{
		dataSize: read64(bf),
	}
	read64(bf) // free list head offset, unused by readers
	h.dataAddress = read64(bf)
	assertErrorf(h.dataSize <= f.remaining(h.dataAddress), ErrTruncated,
		"heap data segment of %d bytes runs past the end of the file",
		h.dataSize)
	db := newResetReaderOffset(f, int64(h.dataSize), h.dataAddress)
	h.data = readAll(db)
	return h
}

// getString returns the NUL-terminated string at the given heap offset.
func (h *localHeap) getString(offset uint64) string {
	assertErrorf(offset < uint64(len(h.data)), ErrCorrupted,
		"heap offset %d beyond data segment of %d bytes", offset, len(h.data))
	end := bytes.IndexByte(h.data[offset:], 0)
	if end < 0 {
		return string(h.data[offset:])
	}
	return string(h.data[offset : offset+uint64(end)])
}
