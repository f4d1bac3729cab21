package hdf5

import (
	"bufio"
	"bytes"
)

var (
	btreeSignature = []byte{'T', 'R', 'E', 'E'}
	snodSignature  = []byte{'S', 'N', 'O', 'D'}
)

// linkEntry is one named object in a group.
type linkEntry struct {
	name  string
	entry SymbolTableEntry
}

// readGroupEntries walks a version 1 group B-tree and returns the linked
// objects in key order. Level 0 children are symbol table nodes; higher
// levels recurse into child B-tree nodes.
func readGroupEntries(f *raFile, address uint64, heap *localHeap) []linkEntry {
	return readGroupNode(f, address, heap, -1)
}

// readGroupNode reads one B-tree node and its subtree. Every node below
// the root must declare a level exactly one less than its parent's, so
// wantLevel pins the child levels; the root (wantLevel < 0) sets the
// tree's height.
func readGroupNode(f *raFile, address uint64, heap *localHeap, wantLevel int) []linkEntry {
	bf := bufio.NewReader(f.seekAt(int64(address)))
	sig := readBytes(bf, 4)
	assertErrorf(bytes.Equal(sig, btreeSignature), ErrCorrupted,
		"B-tree signature %q", sig)
	nodeType := read8(bf)
	assertErrorf(nodeType == 0, ErrCorrupted,
		"B-tree node type %d in a group B-tree", nodeType)
	nodeLevel := read8(bf)
	assertErrorf(wantLevel < 0 || int(nodeLevel) == wantLevel, ErrCorrupted,
		"B-tree node at level %d where level %d was expected",
		nodeLevel, wantLevel)
	entriesUsed := read16(bf)
	read64(bf) // left sibling, unused
	read64(bf) // right sibling, unused
	logger.Infof("B-tree node level %d with %d entries", nodeLevel, entriesUsed)

	// entriesUsed+1 keys bracket entriesUsed children. The keys are heap
	// offsets of separator names; the names themselves come from the
	// symbol table nodes.
	var entries []linkEntry
	children := make([]uint64, entriesUsed)
	for i := range children {
		read64(bf) // key
		children[i] = read64(bf)
	}
	read64(bf) // final key
	for _, child := range children {
		if nodeLevel == 0 {
			entries = append(entries, readSymbolNode(f, child, heap)...)
		} else {
			entries = append(entries, readGroupNode(f, child, heap, int(nodeLevel)-1)...)
		}
	}
	return entries
}

// readSymbolNode reads one SNOD record: a run of symbol table entries
// sorted by link name.
func readSymbolNode(f *raFile, address uint64, heap *localHeap) []linkEntry {
	bf := bufio.NewReader(f.seekAt(int64(address)))
	sig := readBytes(bf, 4)
	assertErrorf(bytes.Equal(sig, snodSignature), ErrCorrupted,
		"symbol table node signature %q", sig)
	version := read8(bf)
	assertErrorf(version == 1, ErrVersion,
		"symbol table node version %d", version)
	skip(bf, 1) // reserved
	count := read16(bf)

	entries := make([]linkEntry, count)
	for i := range entries {
		e := readSymbolTableEntry(bf)
		entries[i] = linkEntry{name: heap.getString(e.LinkNameOffset), entry: e}
	}
	return entries
}
