package hdf5

// Primitive little-endian reads. All of them throw on I/O failure, so
// parse code never checks read errors inline.

import (
	"io"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-native-hdf5/hdf5/util"
)

func read8(r io.Reader) uint8 {
	var v uint8
	util.MustReadLE(r, &v)
	return v
}

func read16(r io.Reader) uint16 {
	var v uint16
	util.MustReadLE(r, &v)
	return v
}

// read24 reads a 3-byte little-endian value, zero-extended.
func read24(r io.Reader) uint32 {
	var b [3]byte
	read(r, b[:])
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func read32(r io.Reader) uint32 {
	var v uint32
	util.MustReadLE(r, &v)
	return v
}

func read64(r io.Reader) uint64 {
	var v uint64
	util.MustReadLE(r, &v)
	return v
}

func readF32(r io.Reader) float32 {
	var v float32
	util.MustReadLE(r, &v)
	return v
}

// read fills b completely or throws.
func read(r io.Reader, b []byte) {
	_, err := io.ReadFull(r, b)
	thrower.ThrowIfError(err)
}

func readBytes(r io.Reader, n int) []byte {
	b := make([]byte, n)
	read(r, b)
	return b
}

// readAll consumes and returns whatever the bounded reader has left.
func readAll(bf remReader) []byte {
	return readBytes(bf, int(bf.Rem()))
}

func skip(r io.Reader, n int64) {
	_, err := io.CopyN(io.Discard, r, n)
	thrower.ThrowIfError(err)
}

// checkZeroes reads n reserved bytes that the format requires to be zero.
func checkZeroes(r io.Reader, n int) {
	for _, v := range readBytes(r, n) {
		assertErrorf(v == 0, ErrCorrupted, "reserved byte %#02x", v)
	}
}

// hasFlag8 reports whether the given bit is set.
func hasFlag8(b uint8, bit uint) bool {
	return (b>>bit)&1 == 1
}
