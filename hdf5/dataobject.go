package hdf5

import (
	"io"
	"reflect"

	"github.com/batchatco/go-thrower"
)

// DataObject is one decoded dataset: float64 values in row-major order
// over the declared dimensions. Floating point is the only element class
// that decodes; everything else fails before a DataObject is built.
type DataObject struct {
	Dimensions []uint64
	Values     []float64
}

// Count returns the number of elements (one for a scalar).
func (d *DataObject) Count() uint64 {
	count := uint64(1)
	for _, dim := range d.Dimensions {
		count *= dim
	}
	return count
}

// Interface returns the values as nested slices, one level per
// dimension: [][]float64 for two dimensions, a bare float64 for a
// scalar, and so on.
func (d *DataObject) Interface() any {
	if len(d.Dimensions) == 0 {
		return d.Values[0]
	}
	typ := reflect.TypeOf([]float64(nil))
	for i := 1; i < len(d.Dimensions); i++ {
		typ = reflect.SliceOf(typ)
	}
	v, rest := makeSlices(typ, d.Dimensions, d.Values)
	assert(len(rest) == 0, "dimensions do not cover the decoded values")
	return v.Interface()
}

// makeSlices builds one nesting level and recurses, consuming the flat
// values left to right.
func makeSlices(typ reflect.Type, dims []uint64, flat []float64) (reflect.Value, []float64) {
	n := int(dims[0])
	if len(dims) == 1 {
		return reflect.ValueOf(flat[0:n:n]), flat[n:]
	}
	v := reflect.MakeSlice(typ, n, n)
	rest := flat
	var inner reflect.Value
	for i := 0; i < n; i++ {
		inner, rest = makeSlices(typ.Elem(), dims[1:], rest)
		v.Index(i).Set(inner)
	}
	return v, rest
}

// GetDataObject locates the object's dataspace, datatype and contiguous
// layout, reads the data region from the stream, and decodes it into a
// shaped array. The region must hold exactly dimensions x element size
// bytes.
func (h *ObjectHeader) GetDataObject(file io.ReadSeeker) (d *DataObject, err error) {
	defer thrower.RecoverError(&err)
	return h.getDataObject(newRaFile(file)), nil
}

// GetDataBytes reads the object's raw contiguous data region without
// decoding it.
func (h *ObjectHeader) GetDataBytes(file io.ReadSeeker) (b []byte, err error) {
	defer thrower.RecoverError(&err)
	return h.getDataBytes(newRaFile(file)), nil
}

func (h *ObjectHeader) getDataObject(f *raFile) *DataObject {
	dspace := h.findDataspace()
	dt := h.findDatatype()
	layout := h.findDataLayout().Contiguous

	// The dimension sizes, element size and region size all come from the
	// file, so they are checked against each other and against the bytes
	// the stream actually holds before anything is allocated from them.
	avail := f.remaining(layout.Address)
	count := uint64(1)
	for _, dim := range dspace.DimensionSizes {
		if dim == 0 {
			count = 0
			continue
		}
		assertErrorf(count <= avail/dim, ErrTruncated,
			"dimension sizes %v exceed the %d bytes at the data address",
			dspace.DimensionSizes, avail)
		count *= dim
	}
	elem := uint64(dt.Size())
	assertError(elem > 0, ErrCorrupted, "datatype element size is zero")
	assertErrorf(count <= layout.Size/elem, ErrTruncated,
		"data region of %d bytes cannot hold %d elements of %d bytes",
		layout.Size, count, elem)
	assertErrorf(count*elem == layout.Size, ErrTrailingBytes,
		"data region of %d bytes exceeds %d elements of %d bytes",
		layout.Size, count, elem)
	assertErrorf(layout.Size <= avail, ErrTruncated,
		"data region of %d bytes at address %d runs past the end of the file",
		layout.Size, layout.Address)
	logger.Infof("data object: %d elements of %s in %d bytes at %d",
		count, dt.ClassName(), layout.Size, layout.Address)

	bf := newResetReaderOffset(f, int64(layout.Size), layout.Address)
	values := make([]float64, count)
	for i := uint64(0); i < count; i++ {
		values[i] = dt.decodeValue(bf)
	}
	assertErrorf(bf.Rem() == 0, ErrTrailingBytes,
		"data region of %d bytes leaves %d after %d elements",
		layout.Size, bf.Rem(), count)
	return &DataObject{
		Dimensions: dspace.DimensionSizes,
		Values:     values,
	}
}

func (h *ObjectHeader) getDataBytes(f *raFile) []byte {
	layout := h.findDataLayout().Contiguous
	assertErrorf(layout.Size <= f.remaining(layout.Address), ErrTruncated,
		"data region of %d bytes at address %d runs past the end of the file",
		layout.Size, layout.Address)
	bf := newResetReaderOffset(f, int64(layout.Size), layout.Address)
	return readBytes(bf, int(layout.Size))
}
