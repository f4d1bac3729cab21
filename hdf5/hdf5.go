// Package hdf5 reads HDF5 files natively: the superblock, the root
// group, and version 1 object headers with their typed messages. Decoding
// is strict; structural violations and unimplemented format features fail
// with ErrInvalidFile and ErrUnsupported kinds rather than being skipped.
package hdf5

import (
	"bufio"
	"io"
	"os"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-native-hdf5/hdf5/util"
)

var (
	logger = util.NewLogger()
	log    = "don't use the log package" // prevents usage of standard log package
)

// SetLogLevel sets the log level: 0 fatal, 1 error, 2 warn, 3 info.
func SetLogLevel(level int) {
	logger.SetLogLevel(level)
}

// File is an open HDF5 file: the parsed superblock plus the root group's
// link table. Object headers and data are read on demand.
type File struct {
	fname  string
	file   *raFile
	sblock *Superblock
	root   *util.OrderedMap // link name to SymbolTableEntry
}

// Open opens an HDF5 file by name.
func Open(fname string) (f *File, err error) {
	defer thrower.RecoverError(&err)
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	f, err = New(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	f.fname = fname
	return f, nil
}

// New reads an HDF5 file from a seekable stream. The stream must not be
// used by the caller while the File is live; it is closed by Close when
// it implements io.Closer.
func New(file io.ReadSeeker) (f *File, err error) {
	defer thrower.RecoverError(&err)
	ra := newRaFile(file)
	sb := readSuperblock(ra)
	f = &File{
		// addresses are relative to the superblock's base address
		file:   ra.withBase(int64(sb.BaseAddress)),
		sblock: sb,
	}
	f.readRootGroup()
	return f, nil
}

// Close releases the underlying stream.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

// Version returns the superblock version.
func (f *File) Version() uint8 {
	return f.sblock.Version
}

// Superblock returns a copy of the parsed superblock.
func (f *File) Superblock() Superblock {
	return *f.sblock
}

// readRootGroup walks the root group's B-tree and heap and caches the
// link table. Uncached root entries go through the root object header's
// symbol table message instead of the superblock scratch space.
func (f *File) readRootGroup() {
	entry := f.sblock.RootEntry
	btreeAddress := entry.BTreeAddress
	heapAddress := entry.HeapAddress
	if entry.CacheType == cacheNone {
		oh := readObjectHeaderAt(f.file, entry.ObjectHeaderAddress)
		st := oh.findSymbolTable()
		btreeAddress = st.BTreeAddress
		heapAddress = st.LocalHeapAddress
	}
	heap := readLocalHeap(f.file, heapAddress)
	entries := readGroupEntries(f.file, btreeAddress, heap)

	names := make([]string, len(entries))
	values := make(map[string]any, len(entries))
	for i, e := range entries {
		names[i] = e.name
		values[e.name] = e.entry
	}
	root, err := util.NewOrderedMap(names, values)
	thrower.ThrowIfError(err)
	f.root = root
}

// ListObjects returns the names linked in the root group, in B-tree
// (sorted) order.
func (f *File) ListObjects() []string {
	return f.root.Keys()
}

// GetObjectHeader parses the named object's header.
func (f *File) GetObjectHeader(name string) (oh *ObjectHeader, err error) {
	defer thrower.RecoverError(&err)
	e := f.lookup(name)
	return readObjectHeaderAt(f.file, e.ObjectHeaderAddress), nil
}

// GetDataObject parses the named object's header and decodes its data.
func (f *File) GetDataObject(name string) (d *DataObject, err error) {
	defer thrower.RecoverError(&err)
	e := f.lookup(name)
	oh := readObjectHeaderAt(f.file, e.ObjectHeaderAddress)
	return oh.getDataObject(f.file), nil
}

func (f *File) lookup(name string) SymbolTableEntry {
	v, has := f.root.Get(name)
	if !has {
		failErrorf(ErrNotFound, "object %q", name)
	}
	return v.(SymbolTableEntry)
}

func readObjectHeaderAt(f *raFile, address uint64) *ObjectHeader {
	assertError(address != undefAddress, ErrCorrupted,
		"undefined object header address")
	return readObjectHeader(bufio.NewReader(f.seekAt(int64(address))))
}
