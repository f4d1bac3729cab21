package hdf5

// Data layout classes, in wire order.
const (
	layoutCompact = iota
	layoutContiguous
	layoutChunked
)

// ContiguousLayout locates a dataset stored as one flat region: an
// absolute file address and a byte length.
type ContiguousLayout struct {
	Address uint64
	Size    uint64
}

// DataLayoutMessage is the version-checked wrapper around the layout.
// Contiguous storage is the only class that parses; compact and chunked
// are recognized and rejected.
type DataLayoutMessage struct {
	Contiguous ContiguousLayout
}

func readDataLayoutMessage(bf remReader) *DataLayoutMessage {
	version := read8(bf)
	assertErrorf(version == 3, ErrLayout, "data layout version %d", version)
	class := read8(bf)
	switch class {
	case layoutContiguous:
		// the only supported class
	case layoutCompact:
		failError(ErrLayout, "compact data layout")
	case layoutChunked:
		failError(ErrLayout, "chunked data layout")
	default:
		failErrorf(ErrLayoutClass, "data layout class %d", class)
	}
	msg := &DataLayoutMessage{
		Contiguous: ContiguousLayout{
			Address: read64(bf),
			Size:    read64(bf),
		},
	}
	readAll(bf) // the message is padded past the class body
	logger.Infof("contiguous layout address %d size %d",
		msg.Contiguous.Address, msg.Contiguous.Size)
	return msg
}
