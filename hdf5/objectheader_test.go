package hdf5

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/batchatco/go-thrower"

	"github.com/batchatco/go-native-hdf5/hdf5/util"
)

// catch runs f and returns the error it throws, if any.
func catch(f func()) (err error) {
	defer thrower.RecoverError(&err)
	f()
	return nil
}

// message builds one header message record: type, length, flags, three
// reserved bytes, then the body.
func message(msgType uint16, flags uint8, body []byte) []byte {
	var buf bytes.Buffer
	util.MustWriteLE(&buf, msgType)
	util.MustWriteLE(&buf, uint16(len(body)))
	util.MustWriteByte(&buf, flags)
	util.MustWriteRaw(&buf, []byte{0, 0, 0})
	util.MustWriteRaw(&buf, body)
	return buf.Bytes()
}

// headerBytesRaw builds an object header with the given head fields. The
// trailing byte slices land in the message region as is, so tests can
// declare sizes and counts that disagree with the content.
func headerBytesRaw(version, reserved uint8, count uint16, size uint32, messages ...[]byte) []byte {
	var buf bytes.Buffer
	util.MustWriteByte(&buf, version)
	util.MustWriteByte(&buf, reserved)
	util.MustWriteLE(&buf, count)
	util.MustWriteLE(&buf, uint32(1)) // reference count
	util.MustWriteLE(&buf, size)
	util.MustWriteRaw(&buf, make([]byte, 4)) // alignment
	for _, m := range messages {
		util.MustWriteRaw(&buf, m)
	}
	return buf.Bytes()
}

// headerBytes builds a consistent version 1 object header around the
// given message records.
func headerBytes(messages ...[]byte) []byte {
	size := 0
	for _, m := range messages {
		size += len(m)
	}
	return headerBytesRaw(1, 0, uint16(len(messages)), uint32(size), messages...)
}

func dataspaceBody(dims, maxDims []uint64) []byte {
	var buf bytes.Buffer
	util.MustWriteByte(&buf, 1) // version
	util.MustWriteByte(&buf, uint8(len(dims)))
	var flags uint8
	if maxDims != nil {
		flags = 1 << dspaceMaxSizesFlag
	}
	util.MustWriteByte(&buf, flags)
	util.MustWriteRaw(&buf, make([]byte, 5)) // reserved
	for _, d := range dims {
		util.MustWriteLE(&buf, d)
	}
	for _, d := range maxDims {
		util.MustWriteLE(&buf, d)
	}
	return buf.Bytes()
}

func layoutBody(version, class uint8, address, size uint64, pad int) []byte {
	var buf bytes.Buffer
	util.MustWriteByte(&buf, version)
	util.MustWriteByte(&buf, class)
	util.MustWriteLE(&buf, address)
	util.MustWriteLE(&buf, size)
	util.MustWriteRaw(&buf, make([]byte, pad))
	return buf.Bytes()
}

func fillValueBody(version, alloc, write, defined uint8, value []byte) []byte {
	var buf bytes.Buffer
	util.MustWriteRaw(&buf, []byte{version, alloc, write, defined})
	if defined == 1 {
		util.MustWriteLE(&buf, uint32(len(value)))
		util.MustWriteRaw(&buf, value)
	}
	return buf.Bytes()
}

func symbolTableBody(btree, heap uint64) []byte {
	var buf bytes.Buffer
	util.MustWriteLE(&buf, btree)
	util.MustWriteLE(&buf, heap)
	return buf.Bytes()
}

func modTimeBody(seconds uint32) []byte {
	var buf bytes.Buffer
	util.MustWriteByte(&buf, 1) // version
	util.MustWriteRaw(&buf, []byte{0, 0, 0})
	util.MustWriteLE(&buf, seconds)
	return buf.Bytes()
}

func TestObjectHeaderAllMessages(t *testing.T) {
	fill := []byte{0, 0, 128, 63}
	b := headerBytes(
		message(msgNil, 0, []byte{1, 2, 3, 4, 5, 6, 7, 8}),
		message(msgDataspace, 0, dataspaceBody([]uint64{2, 3}, []uint64{4, 6})),
		message(msgDatatype, 0, ieeeFloatMessage()),
		message(msgFillValue, 0, fillValueBody(2, 2, 1, 1, fill)),
		message(msgDataLayout, 0, layoutBody(3, layoutContiguous, 9000, 24, 6)),
		message(msgSymbolTable, 0, symbolTableBody(0x1000, 0x2000)),
		message(msgModificationTime, 0, modTimeBody(1600000000)),
	)
	oh, err := ReadObjectHeader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	msgs := oh.Messages()
	if len(msgs) != 7 {
		t.Fatal("Got", len(msgs), "messages, expected 7")
	}
	kinds := []string{
		"nil", "dataspace", "datatype", "fill value",
		"data layout", "symbol table", "modification time",
	}
	for i, want := range kinds {
		if got := msgs[i].Kind(); got != want {
			t.Errorf("message %d: got %q, want %q", i, got, want)
		}
	}

	ds := msgs[1].Dataspace
	if !reflect.DeepEqual(ds.DimensionSizes, []uint64{2, 3}) {
		t.Error("Got dimensions", ds.DimensionSizes, "expected [2 3]")
	}
	if !reflect.DeepEqual(ds.DimensionMaxSizes, []uint64{4, 6}) {
		t.Error("Got max sizes", ds.DimensionMaxSizes, "expected [4 6]")
	}
	if got := msgs[2].Datatype.ClassName(); got != "floating-point" {
		t.Error("Got", got, "expected floating-point")
	}
	fv := msgs[3].FillValue
	if !fv.Defined || !bytes.Equal(fv.Value, fill) {
		t.Errorf("got fill value %+v, want defined %v", fv, fill)
	}
	layout := msgs[4].DataLayout.Contiguous
	if layout.Address != 9000 || layout.Size != 24 {
		t.Errorf("got layout %+v, want address 9000 size 24", layout)
	}
	st := msgs[5].SymbolTable
	if st.BTreeAddress != 0x1000 || st.LocalHeapAddress != 0x2000 {
		t.Errorf("got symbol table %+v", st)
	}
	if got := msgs[6].ModificationTime.Time().Unix(); got != 1600000000 {
		t.Error("Got", got, "expected 1600000000")
	}

	if !oh.IsGroup() {
		t.Error("header with a symbol table message should be a group")
	}
	dims, err := oh.Dimensions()
	if err != nil {
		t.Fatal(err)
	}
	if len(dims) != 2 || dims[0] != 2 || dims[1] != 3 {
		t.Error("Got", dims, "expected [2 3]")
	}
	dt, err := oh.Datatype()
	if err != nil {
		t.Fatal(err)
	}
	if dt.Size() != 4 {
		t.Error("Got size", dt.Size(), "expected 4")
	}
}

func TestObjectHeaderVersion(t *testing.T) {
	for _, version := range []uint8{0, 2} {
		b := headerBytesRaw(version, 0, 1, 16, message(msgModificationTime, 0, modTimeBody(1)))
		_, err := ReadObjectHeader(bytes.NewReader(b))
		if !errors.Is(err, ErrObjectHeaderVersion) {
			t.Error("Got", err, "expected", ErrObjectHeaderVersion)
		}
		if !errors.Is(err, ErrInvalidFile) {
			t.Error("Got", err, "expected an invalid file error")
		}
	}
}

func TestObjectHeaderReserved(t *testing.T) {
	b := headerBytesRaw(1, 9, 1, 16, message(msgModificationTime, 0, modTimeBody(1)))
	_, err := ReadObjectHeader(bytes.NewReader(b))
	if !errors.Is(err, ErrCorrupted) {
		t.Error("Got", err, "expected", ErrCorrupted)
	}
}

func TestObjectHeaderOversized(t *testing.T) {
	m1 := message(msgModificationTime, 0, modTimeBody(1))
	m2 := message(msgModificationTime, 0, modTimeBody(2))
	// 8 bytes of region beyond the two declared messages
	b := headerBytesRaw(1, 0, 2, uint32(len(m1)+len(m2)+8), m1, m2, make([]byte, 8))
	_, err := ReadObjectHeader(bytes.NewReader(b))
	if !errors.Is(err, ErrTrailingBytes) {
		t.Error("Got", err, "expected", ErrTrailingBytes)
	}
	if !errors.Is(err, ErrInvalidFile) {
		t.Error("Got", err, "expected an invalid file error")
	}
}

func TestObjectHeaderUndersized(t *testing.T) {
	m1 := message(msgModificationTime, 0, modTimeBody(1))
	m2 := message(msgModificationTime, 0, modTimeBody(2))
	// the region ends inside the second message
	b := headerBytesRaw(1, 0, 2, uint32(len(m1)+8), m1, m2)
	_, err := ReadObjectHeader(bytes.NewReader(b))
	if !errors.Is(err, io.EOF) {
		t.Error("Got", err, "expected EOF")
	}
}

func TestUnknownMessageType(t *testing.T) {
	b := headerBytes(message(0x7F, 0, make([]byte, 4)))
	_, err := ReadObjectHeader(bytes.NewReader(b))
	if !errors.Is(err, ErrMessageType) {
		t.Error("Got", err, "expected", ErrMessageType)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("Got", err, "expected an unsupported error")
	}
	if !strings.Contains(err.Error(), "0x007f") {
		t.Errorf("error %q does not name the message type", err)
	}
}

func TestMessageFlags(t *testing.T) {
	b := headerBytes(message(msgModificationTime, 0x05, modTimeBody(1)))
	oh, err := ReadObjectHeader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if got := oh.Messages()[0].Flags; got != 0x05 {
		t.Errorf("got flags %#02x, want 0x05", got)
	}
}

func TestMessageTrailingBytes(t *testing.T) {
	cases := []struct {
		name    string
		msgType uint16
		body    []byte
	}{
		{"dataspace", msgDataspace, dataspaceBody([]uint64{2}, nil)},
		{"datatype", msgDatatype, ieeeFloatMessage()},
		{"fill value", msgFillValue, fillValueBody(2, 2, 1, 0, nil)},
		{"symbol table", msgSymbolTable, symbolTableBody(1, 2)},
		{"modification time", msgModificationTime, modTimeBody(1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body := append(append([]byte{}, c.body...), 0)
			b := headerBytes(message(c.msgType, 0, body))
			_, err := ReadObjectHeader(bytes.NewReader(b))
			if !errors.Is(err, ErrTrailingBytes) {
				t.Error("Got", err, "expected", ErrTrailingBytes)
			}
			if !errors.Is(err, ErrInvalidFile) {
				t.Error("Got", err, "expected an invalid file error")
			}
		})
	}
}

func TestMessageTruncated(t *testing.T) {
	body := modTimeBody(1)
	b := headerBytes(message(msgModificationTime, 0, body[:len(body)-1]))
	_, err := ReadObjectHeader(bytes.NewReader(b))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("Got", err, "expected unexpected EOF")
	}
}

// nil messages are padding: their content is ignored, whatever it holds
func TestNilMessageContent(t *testing.T) {
	b := headerBytes(message(msgNil, 0, []byte{0xDE, 0xAD, 0xBE, 0xEF}))
	oh, err := ReadObjectHeader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if len(oh.Messages()) != 1 || oh.Messages()[0].Kind() != "nil" {
		t.Error("Got", oh.Messages(), "expected one nil message")
	}
}

func TestHeaderQueriesWithoutData(t *testing.T) {
	b := headerBytes(message(msgModificationTime, 0, modTimeBody(1)))
	oh, err := ReadObjectHeader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if oh.IsGroup() {
		t.Error("header without a symbol table message is not a group")
	}
	if _, err := oh.Dimensions(); !errors.Is(err, ErrNotDataObject) {
		t.Error("Got", err, "expected", ErrNotDataObject)
	}
	if _, err := oh.Datatype(); !errors.Is(err, ErrNotDataObject) {
		t.Error("Got", err, "expected", ErrNotDataObject)
	}
}
