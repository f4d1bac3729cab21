package hdf5

// Bounded and random-access readers. Every bounded byte region in the
// format is parsed through a remReader so that a malformed record cannot
// read into its neighbors.

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/batchatco/go-thrower"
)

// remReader remembers the count (used) and remaining bytes
type remReader interface {
	io.Reader
	Count() int64
	Rem() int64
}

// resetReader takes a reader and a size (or a byte slice) and returns a
// remReader enforcing the size as a hard read ceiling. Reads past the
// ceiling return EOF instead of spilling into the next record.
type resetReader struct {
	lr   *io.LimitedReader
	size int64
}

func (r *resetReader) Rem() int64 {
	return r.lr.N
}

func (r *resetReader) Count() int64 {
	return r.size - r.lr.N
}

func (r *resetReader) Read(p []byte) (int, error) {
	return r.lr.Read(p)
}

func newResetReader(file io.Reader, size int64) remReader {
	return &resetReader{
		lr:   &io.LimitedReader{R: file, N: size},
		size: size,
	}
}

func newResetReaderFromBytes(b []byte) remReader {
	return newResetReader(bytes.NewReader(b), int64(len(b)))
}

// newResetReaderOffset returns a bounded reader over size bytes starting
// at the given file address.
func newResetReaderOffset(file *raFile, size int64, offset uint64) remReader {
	ra := file.seekAt(int64(offset))
	return newResetReader(bufio.NewReader(ra), size)
}

// refCountedFile allows multiple readers on the same file handle
type refCountedFile struct {
	file     io.ReadSeeker
	size     int64 // stream length, fixed at construction
	refCount int
	lock     sync.Mutex
}

// raFile is a random-access view of a file: every view seeks to its own
// position under the shared lock, so views never disturb one another.
// base is added to every address; it is nonzero when the superblock sits
// after a user block and the file's addresses are relative to it.
type raFile struct {
	rcFile      *refCountedFile
	base        int64
	seekPointer int64
}

func newRaFile(file io.ReadSeeker) *raFile {
	size, err := file.Seek(0, io.SeekEnd)
	thrower.ThrowIfError(err)
	return &raFile{
		rcFile: &refCountedFile{file: file, size: size, refCount: 1},
	}
}

// withBase returns a view translating all future addresses by base.
func (f *raFile) withBase(base int64) *raFile {
	return &raFile{
		rcFile:      f.rcFile,
		base:        base,
		seekPointer: base,
	}
}

// seekAt returns a view positioned at the given address.
func (f *raFile) seekAt(offset int64) *raFile {
	return &raFile{
		rcFile:      f.rcFile,
		base:        f.base,
		seekPointer: f.base + offset,
	}
}

// remaining returns how many bytes the stream holds at and after the
// given address, zero when the address lies past the end. Sizes the
// file declares for its own segments are checked against it before
// anything is allocated.
func (f *raFile) remaining(address uint64) uint64 {
	end := uint64(f.rcFile.size)
	base := uint64(f.base)
	if base >= end || address >= end-base {
		return 0
	}
	return end - base - address
}

func (f *raFile) Read(p []byte) (int, error) {
	f.rcFile.lock.Lock()
	defer f.rcFile.lock.Unlock()
	if _, err := f.rcFile.file.Seek(f.seekPointer, io.SeekStart); err != nil {
		logger.Error("Seek error in Read", err)
		return 0, err
	}
	n, err := f.rcFile.file.Read(p)
	if err != nil {
		return n, err
	}
	f.seekPointer += int64(n)
	return n, nil
}

func (f *raFile) Close() error {
	return f.rcFile.dereference()
}

func (rcf *refCountedFile) dereference() error {
	rcf.lock.Lock()
	defer rcf.lock.Unlock()
	var err error
	rcf.refCount--
	switch {
	case rcf.refCount == 0:
		logger.Info("Closing file")
		if f, ok := rcf.file.(io.Closer); ok {
			err = f.Close()
		}
		rcf.file = nil
	case rcf.refCount < 0:
		err = ErrInternal
	}
	return err
}
