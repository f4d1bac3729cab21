package hdf5

import (
	"fmt"

	"github.com/pkg/errors"
)

// The three error kinds. Every sentinel below wraps exactly one of them,
// so callers can match the specific sentinel or classify with
// errors.Is(err, ErrInvalidFile) and the like.
var (
	// ErrInvalidFile means a structural field violates the format's own
	// rules. The file is corrupt or not HDF5 at all.
	ErrInvalidFile = errors.New("invalid HDF5 file")

	// ErrUnsupported means the file uses a recognized format feature this
	// reader does not implement. The file itself may be fine.
	ErrUnsupported = errors.New("unsupported HDF5 feature")

	// ErrInternal is an internal consistency error not tied to a specific
	// byte pattern.
	ErrInternal = errors.New("internal error")
)

// kind tags a sentinel with the error kind it belongs to.
func kind(k error, msg string) error {
	return fmt.Errorf("%s: %w", msg, k)
}

var (
	// ErrBadMagic is returned when no superblock signature can be found
	ErrBadMagic = kind(ErrInvalidFile, "bad magic number")

	// ErrCorrupted is returned when reserved fields or signatures have
	// values the format forbids
	ErrCorrupted = kind(ErrInvalidFile, "corrupted file")

	// ErrTrailingBytes is returned when a bounded region is not consumed
	// exactly: bytes remain after a message body, an object header, or a
	// data region
	ErrTrailingBytes = kind(ErrInvalidFile, "trailing bytes")

	// ErrTruncated is returned when a region has fewer bytes than its
	// metadata declares
	ErrTruncated = kind(ErrInvalidFile, "file is too small, may be truncated")

	// ErrObjectHeaderVersion is returned for object header versions other
	// than 1; the version is a structural field, so this is corruption,
	// not a missing feature
	ErrObjectHeaderVersion = kind(ErrInvalidFile, "object header version must be 1")

	// ErrUnknownDatatype is returned for datatype class codes outside the
	// range the format defines
	ErrUnknownDatatype = kind(ErrInvalidFile, "unknown datatype class")

	// ErrLayoutClass is returned for data layout class codes outside the
	// range the format defines
	ErrLayoutClass = kind(ErrInvalidFile, "unknown data layout class")

	// ErrVersion is returned when a message or node version is valid HDF5
	// but not handled by this reader
	ErrVersion = kind(ErrUnsupported, "version not supported")

	// ErrSuperblock is returned for superblock versions or features other
	// than the version 0 layout
	ErrSuperblock = kind(ErrUnsupported, "superblock not supported")

	// ErrOffsetSize is returned when offsets or lengths other than 64-bit
	// are indicated. Only 64-bit is supported in this implementation.
	ErrOffsetSize = kind(ErrUnsupported, "only 64-bit offsets are supported")

	// ErrMessageType is returned for header message type codes this
	// reader has no parser for
	ErrMessageType = kind(ErrUnsupported, "header message type not supported")

	// ErrDatatypeClass is returned for datatype classes that are valid
	// HDF5 but not decoded here
	ErrDatatypeClass = kind(ErrUnsupported, "datatype class not supported")

	// ErrDataspaceVersion is returned for unsupported dataspace versions
	ErrDataspaceVersion = kind(ErrUnsupported, "dataspace version not supported")

	// ErrPermutation is returned when a dataspace carries dimension
	// permutation indices
	ErrPermutation = kind(ErrUnsupported, "dimension permutation indices not supported")

	// ErrLayout is returned for data layouts other than version 3
	// contiguous storage
	ErrLayout = kind(ErrUnsupported, "data layout not supported")

	// ErrFloatingPoint is returned when non-standard floating point is
	// encountered; only IEEE-754 single precision decodes
	ErrFloatingPoint = kind(ErrUnsupported, "non-standard floating point not handled")

	// ErrFixedPoint is returned when fixed-point data is decoded;
	// fixed-point descriptions parse, but decoding them is unimplemented
	ErrFixedPoint = kind(ErrUnsupported, "fixed-point decoding not implemented")

	// ErrLinkType is returned for symbolic links, which are not supported
	ErrLinkType = kind(ErrUnsupported, "link type not supported")

	// ErrNotDataObject is returned when a data operation is applied to an
	// object without dataspace, datatype and layout messages
	ErrNotDataObject = kind(ErrInternal, "not a data object")

	// ErrNotFound is returned for items requested that don't exist
	ErrNotFound = errors.New("not found")
)
