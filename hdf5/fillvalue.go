package hdf5

// FillValueMessage carries the fill policy and an optional raw fill
// value for unwritten parts of a dataset.
type FillValueMessage struct {
	AllocationTime uint8
	WriteTime      uint8
	Defined        bool
	Value          []byte // nil when no fill value is defined
}

func readFillValueMessage(bf remReader) *FillValueMessage {
	version := read8(bf)
	assertErrorf(version == 2, ErrVersion, "fill value version %d", version)
	msg := &FillValueMessage{
		AllocationTime: read8(bf),
		WriteTime:      read8(bf),
	}
	defined := read8(bf)
	assertErrorf(defined <= 1, ErrCorrupted,
		"fill value defined flag %d", defined)
	msg.Defined = defined == 1
	if msg.Defined {
		size := read32(bf)
		assertErrorf(int64(size) <= bf.Rem(), ErrTruncated,
			"fill value of %d bytes in a message body of %d", size, bf.Rem())
		msg.Value = readBytes(bf, int(size))
	}
	return msg
}
