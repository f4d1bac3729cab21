package hdf5

// FixedPointDatatype describes a fixed-point (integer) element encoding.
// The description parses so that fixed-point objects remain inspectable,
// but decoding a value is unimplemented and rejects.
type FixedPointDatatype struct {
	Size         uint32
	BitOffset    uint16
	BitPrecision uint16
}

type fixedPointManagerType struct{}

var (
	fixedPointManager                 = fixedPointManagerType{}
	_                 datatypeManager = fixedPointManager
)

func (fixedPointManagerType) typeName() string {
	return "fixed-point"
}

func (fixedPointManagerType) parse(dt *DatatypeMessage, bf remReader) {
	fp := &FixedPointDatatype{
		Size:         dt.size,
		BitOffset:    read16(bf),
		BitPrecision: read16(bf),
	}
	skip(bf, 4) // reserved
	logger.Infof("fixed-point offset %d precision %d",
		fp.BitOffset, fp.BitPrecision)
	dt.FixedPoint = fp
}

func (fixedPointManagerType) decode(dt *DatatypeMessage, bf remReader) float64 {
	failErrorf(ErrFixedPoint, "%d-byte fixed-point element", dt.size)
	panic("never gets here")
}
