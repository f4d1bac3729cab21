package hdf5

import (
	"fmt"
	"io"

	"github.com/batchatco/go-thrower"
)

// Header message type codes with parsers here. Other codes are valid
// HDF5 and rejected as unsupported.
const (
	msgNil              = 0x00
	msgDataspace        = 0x01
	msgDatatype         = 0x03
	msgFillValue        = 0x05
	msgDataLayout       = 0x08
	msgSymbolTable      = 0x11
	msgModificationTime = 0x12
)

// HeaderMessage is one typed, length-delimited record in an object
// header. Type and Flags come from the record head; exactly one variant
// field is set for payload-bearing types.
type HeaderMessage struct {
	Type  uint16
	Flags uint8

	Dataspace        *DataspaceMessage
	Datatype         *DatatypeMessage
	FillValue        *FillValueMessage
	DataLayout       *DataLayoutMessage
	SymbolTable      *SymbolTableMessage
	ModificationTime *ObjectModificationTimeMessage
}

// Kind returns the message type name for display.
func (m *HeaderMessage) Kind() string {
	switch m.Type {
	case msgNil:
		return "nil"
	case msgDataspace:
		return "dataspace"
	case msgDatatype:
		return "datatype"
	case msgFillValue:
		return "fill value"
	case msgDataLayout:
		return "data layout"
	case msgSymbolTable:
		return "symbol table"
	case msgModificationTime:
		return "modification time"
	}
	return fmt.Sprintf("unknown (%#04x)", m.Type)
}

// readHeaderMessage reads one message record: head, then the body parsed
// through a sub-reader bounded to the declared length. The body must be
// consumed exactly; a parser leaving bytes behind has misread the record.
func readHeaderMessage(r remReader) *HeaderMessage {
	msgType := read16(r)
	length := read16(r)
	flags := read8(r)
	skip(r, 3) // reserved
	logger.Infof("header message type %#04x length %d flags %#02x",
		msgType, length, flags)
	msg := &HeaderMessage{Type: msgType, Flags: flags}
	bf := newResetReader(r, int64(length))
	msg.readBody(bf)
	assertErrorf(bf.Rem() == 0, ErrTrailingBytes,
		"%s message leaves %d of %d bytes unread",
		msg.Kind(), bf.Rem(), length)
	return msg
}

func (m *HeaderMessage) readBody(bf remReader) {
	switch m.Type {
	case msgNil:
		skip(bf, bf.Rem()) // nil messages are padding
	case msgDataspace:
		m.Dataspace = readDataspaceMessage(bf)
	case msgDatatype:
		m.Datatype = readDatatypeMessage(bf)
	case msgFillValue:
		m.FillValue = readFillValueMessage(bf)
	case msgDataLayout:
		m.DataLayout = readDataLayoutMessage(bf)
	case msgSymbolTable:
		m.SymbolTable = readSymbolTableMessage(bf)
	case msgModificationTime:
		m.ModificationTime = readModTimeMessage(bf)
	default:
		failErrorf(ErrMessageType, "header message type %#04x", m.Type)
	}
}

// ObjectHeaderPrefix is the counted message region of a version 1 object
// header.
type ObjectHeaderPrefix struct {
	Messages       []*HeaderMessage
	ReferenceCount uint32
	HeaderSize     uint32
}

// readPrefix parses the fixed head, then exactly the declared number of
// messages from a region bounded to the declared size. The region must
// end with zero bytes remaining: per-message lengths already include the
// 8-byte alignment padding, so any remainder is a size/count mismatch.
func readPrefix(r io.Reader) *ObjectHeaderPrefix {
	version := read8(r)
	assertErrorf(version == 1, ErrObjectHeaderVersion,
		"object header version %d", version)
	reserved := read8(r)
	assertErrorf(reserved == 0, ErrCorrupted,
		"object header reserved byte %d", reserved)
	messageCount := read16(r)
	referenceCount := read32(r)
	headerSize := read32(r)
	skip(r, 4) // alignment padding
	logger.Infof("object header: %d messages in %d bytes, %d references",
		messageCount, headerSize, referenceCount)

	bf := newResetReader(r, int64(headerSize))
	messages := make([]*HeaderMessage, 0, messageCount)
	for i := 0; i < int(messageCount); i++ {
		messages = append(messages, readHeaderMessage(bf))
	}
	assertErrorf(bf.Rem() == 0, ErrTrailingBytes,
		"object header declares %d bytes but %d remain after %d messages",
		headerSize, bf.Rem(), messageCount)
	return &ObjectHeaderPrefix{
		Messages:       messages,
		ReferenceCount: referenceCount,
		HeaderSize:     headerSize,
	}
}

// ObjectHeader is the metadata of one stored object: parse once, query
// many. It holds no reference to the stream it was parsed from.
type ObjectHeader struct {
	Prefix ObjectHeaderPrefix
}

// ReadObjectHeader parses a version 1 object header from a stream
// positioned at its first byte.
func ReadObjectHeader(r io.Reader) (oh *ObjectHeader, err error) {
	defer thrower.RecoverError(&err)
	return readObjectHeader(r), nil
}

func readObjectHeader(r io.Reader) *ObjectHeader {
	return &ObjectHeader{Prefix: *readPrefix(r)}
}

// Messages returns the parsed messages in file order.
func (h *ObjectHeader) Messages() []*HeaderMessage {
	return h.Prefix.Messages
}

// The find helpers return the first message of a kind. Messages are a
// multiset; first match wins.

func (h *ObjectHeader) findDataspace() *DataspaceMessage {
	for _, m := range h.Prefix.Messages {
		if m.Dataspace != nil {
			return m.Dataspace
		}
	}
	failError(ErrNotDataObject, "no dataspace message in object header")
	panic("never gets here")
}

func (h *ObjectHeader) findDatatype() *DatatypeMessage {
	for _, m := range h.Prefix.Messages {
		if m.Datatype != nil {
			return m.Datatype
		}
	}
	failError(ErrNotDataObject, "no datatype message in object header")
	panic("never gets here")
}

func (h *ObjectHeader) findDataLayout() *DataLayoutMessage {
	for _, m := range h.Prefix.Messages {
		if m.DataLayout != nil {
			return m.DataLayout
		}
	}
	failError(ErrNotDataObject, "no data layout message in object header")
	panic("never gets here")
}

func (h *ObjectHeader) findSymbolTable() *SymbolTableMessage {
	for _, m := range h.Prefix.Messages {
		if m.SymbolTable != nil {
			return m.SymbolTable
		}
	}
	failError(ErrInternal, "no symbol table message in object header")
	panic("never gets here")
}

// Dimensions returns the object's dimension extents.
func (h *ObjectHeader) Dimensions() (dims []uint64, err error) {
	defer thrower.RecoverError(&err)
	return h.findDataspace().DimensionSizes, nil
}

// Datatype returns the object's element datatype.
func (h *ObjectHeader) Datatype() (dt *DatatypeMessage, err error) {
	defer thrower.RecoverError(&err)
	return h.findDatatype(), nil
}

// IsGroup reports whether the object is a group.
func (h *ObjectHeader) IsGroup() bool {
	for _, m := range h.Prefix.Messages {
		if m.SymbolTable != nil {
			return true
		}
	}
	return false
}
