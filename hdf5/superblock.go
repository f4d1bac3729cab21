package hdf5

import (
	"bufio"
	"bytes"
	"io"
)

var superblockSignature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

// undefAddress marks addresses the file leaves unset.
const undefAddress = ^uint64(0)

// Superblock is the version 0 file bootstrap record: sizing parameters
// and the root group's symbol table entry.
type Superblock struct {
	Version       uint8
	LeafNodeK     uint16
	InternalNodeK uint16
	BaseAddress   uint64
	EndOfFile     uint64
	RootEntry     SymbolTableEntry
}

// SymbolTableEntry binds a link name to an object header address. For
// cached group entries (cache type 1) the scratch space carries the
// group's B-tree and heap addresses.
type SymbolTableEntry struct {
	LinkNameOffset      uint64
	ObjectHeaderAddress uint64
	CacheType           uint32
	BTreeAddress        uint64
	HeapAddress         uint64
}

// Symbol table entry cache types.
const (
	cacheNone     = 0 // nothing cached
	cacheGroup    = 1 // B-tree and heap addresses cached in scratch
	cacheSymbolic = 2 // symbolic link (not supported)
)

// findSuperblock searches for the signature at offset 0, then 512, 1024,
// and so on doubling, the way the format defines user blocks.
func findSuperblock(f *raFile) int64 {
	for offset := int64(0); ; {
		var sig [8]byte
		if _, err := io.ReadFull(f.seekAt(offset), sig[:]); err != nil {
			failError(ErrBadMagic, "no superblock signature found")
		}
		if bytes.Equal(sig[:], superblockSignature) {
			return offset
		}
		if offset == 0 {
			offset = 512
		} else {
			offset *= 2
		}
	}
}

// readSuperblock locates and parses the superblock. Only the version 0
// layout with 64-bit offsets and lengths is handled.
func readSuperblock(f *raFile) *Superblock {
	offset := findSuperblock(f)
	logger.Info("superblock at offset", offset)
	bf := bufio.NewReader(f.seekAt(offset + int64(len(superblockSignature))))

	version := read8(bf)
	assertErrorf(version == 0, ErrSuperblock, "superblock version %d", version)
	freespaceVersion := read8(bf)
	assertErrorf(freespaceVersion == 0, ErrVersion,
		"free-space storage version %d", freespaceVersion)
	rootGroupVersion := read8(bf)
	assertErrorf(rootGroupVersion == 0, ErrVersion,
		"root group symbol table version %d", rootGroupVersion)
	checkZeroes(bf, 1)
	sharedVersion := read8(bf)
	assertErrorf(sharedVersion == 0, ErrVersion,
		"shared header message version %d", sharedVersion)
	offsetSize := read8(bf)
	assertErrorf(offsetSize == 8, ErrOffsetSize, "offset size %d", offsetSize)
	lengthSize := read8(bf)
	assertErrorf(lengthSize == 8, ErrOffsetSize, "length size %d", lengthSize)
	checkZeroes(bf, 1)

	sb := &Superblock{Version: version}
	sb.LeafNodeK = read16(bf)
	assertError(sb.LeafNodeK > 0, ErrCorrupted, "group leaf node k is zero")
	sb.InternalNodeK = read16(bf)
	assertError(sb.InternalNodeK > 0, ErrCorrupted, "group internal node k is zero")
	read32(bf) // file consistency flags, unused by readers

	sb.BaseAddress = read64(bf)
	assertErrorf(sb.BaseAddress == uint64(offset), ErrSuperblock,
		"base address %d does not match superblock offset %d",
		sb.BaseAddress, offset)
	freespaceAddress := read64(bf)
	warnAssert(freespaceAddress == undefAddress,
		"free-space manager present but ignored")
	sb.EndOfFile = read64(bf)
	read64(bf) // driver info block address, unused

	sb.RootEntry = readSymbolTableEntry(bf)
	return sb
}

// readSymbolTableEntry reads one directory entry. Cache type 1 entries
// carry the group's B-tree and heap addresses in the scratch space.
func readSymbolTableEntry(r io.Reader) SymbolTableEntry {
	e := SymbolTableEntry{
		LinkNameOffset:      read64(r),
		ObjectHeaderAddress: read64(r),
		CacheType:           read32(r),
	}
	skip(r, 4) // reserved
	scratch := readBytes(r, 16)
	switch e.CacheType {
	case cacheNone:
	case cacheGroup:
		sr := newResetReaderFromBytes(scratch)
		e.BTreeAddress = read64(sr)
		e.HeapAddress = read64(sr)
	case cacheSymbolic:
		failError(ErrLinkType, "symbolic link entry")
	default:
		failErrorf(ErrCorrupted, "symbol table entry cache type %d", e.CacheType)
	}
	return e
}
