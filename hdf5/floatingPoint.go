package hdf5

// ByteOrder is the byte order of a stored element.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
	VaxEndian // historical middle-endian VAX ordering
)

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	case VaxEndian:
		return "VAX-endian"
	}
	return "invalid byte order"
}

// MantissaNorm is the mantissa normalization of a floating-point type.
type MantissaNorm uint8

const (
	NormNone MantissaNorm = iota
	NormAlwaysSet
	NormImplied
)

func (n MantissaNorm) String() string {
	switch n {
	case NormNone:
		return "none"
	case NormAlwaysSet:
		return "always set"
	case NormImplied:
		return "implied"
	}
	return "invalid normalization"
}

// Bit positions within the floating-point class bit field.
const (
	fpOrderLoBit     = 0 // with fpOrderHiBit, selects the byte order
	fpLoPadBit       = 1
	fpHiPadBit       = 2
	fpInternalPadBit = 3
	fpNormShift      = 4 // bits 4-5
	fpNormMask       = 0b11
	fpOrderHiBit     = 6
	fpSignShift      = 8 // bits 8-15
)

// fpByteOrder extracts the byte order from the class bit field. The high
// bit set alone is a reserved pattern the format forbids.
func fpByteOrder(bitFields uint32) ByteOrder {
	switch bitFields & (1<<fpOrderHiBit | 1<<fpOrderLoBit) {
	case 0:
		return LittleEndian
	case 1 << fpOrderLoBit:
		return BigEndian
	case 1 << fpOrderHiBit:
		failError(ErrCorrupted, "reserved byte order bit pattern")
		panic("never gets here")
	default:
		return VaxEndian
	}
}

// fpMantissaNorm extracts the mantissa normalization. Value 3 is reserved.
func fpMantissaNorm(bitFields uint32) MantissaNorm {
	norm := (bitFields >> fpNormShift) & fpNormMask
	assertErrorf(norm <= uint32(NormImplied), ErrCorrupted,
		"reserved mantissa normalization %d", norm)
	return MantissaNorm(norm)
}

// FloatingPointDatatype describes a floating-point element encoding: the
// byte order, padding policy, normalization, and the positions and sizes
// of the sign, exponent and mantissa fields.
type FloatingPointDatatype struct {
	Size             uint32
	Order            ByteOrder
	LoPad            bool
	HiPad            bool
	InternalPad      bool
	Norm             MantissaNorm
	SignLocation     uint8
	BitOffset        uint16
	BitPrecision     uint16
	ExponentLocation uint8
	ExponentSize     uint8
	MantissaLocation uint8
	MantissaSize     uint8
	ExponentBias     uint32
}

type floatingPointManagerType struct{}

var (
	floatingPointManager                 = floatingPointManagerType{}
	_                    datatypeManager = floatingPointManager
)

func (floatingPointManagerType) typeName() string {
	return "floating-point"
}

func (floatingPointManagerType) parse(dt *DatatypeMessage, bf remReader) {
	fp := &FloatingPointDatatype{
		Size:         dt.size,
		Order:        fpByteOrder(dt.bitFields),
		LoPad:        hasFlag8(uint8(dt.bitFields), fpLoPadBit),
		HiPad:        hasFlag8(uint8(dt.bitFields), fpHiPadBit),
		InternalPad:  hasFlag8(uint8(dt.bitFields), fpInternalPadBit),
		Norm:         fpMantissaNorm(dt.bitFields),
		SignLocation: uint8(dt.bitFields >> fpSignShift),
	}
	fp.BitOffset = read16(bf)
	fp.BitPrecision = read16(bf)
	fp.ExponentLocation = read8(bf)
	fp.ExponentSize = read8(bf)
	fp.MantissaLocation = read8(bf)
	fp.MantissaSize = read8(bf)
	fp.ExponentBias = read32(bf)
	skip(bf, 4) // reserved
	logger.Infof("floating-point offset %d precision %d sign %d bias %d",
		fp.BitOffset, fp.BitPrecision, fp.SignLocation, fp.ExponentBias)
	dt.FloatingPoint = fp
}

// decode reads one element. Only the IEEE-754 single-precision layout
// with the standard field positions decodes; each deviating field is
// rejected before any data bytes are consumed, so a failed decode leaves
// the data stream untouched.
func (floatingPointManagerType) decode(dt *DatatypeMessage, bf remReader) float64 {
	fp := dt.FloatingPoint
	assertErrorf(fp.Order == LittleEndian, ErrFloatingPoint,
		"%s byte order", fp.Order)
	assertError(!fp.LoPad && !fp.HiPad && !fp.InternalPad, ErrFloatingPoint,
		"padding bits set")
	assertErrorf(fp.Norm == NormImplied, ErrFloatingPoint,
		"mantissa normalization %s", fp.Norm)
	assertErrorf(fp.SignLocation == 31, ErrFloatingPoint,
		"sign location %d", fp.SignLocation)
	assertErrorf(fp.BitOffset == 0, ErrFloatingPoint,
		"bit offset %d", fp.BitOffset)
	assertErrorf(fp.BitPrecision == 32, ErrFloatingPoint,
		"bit precision %d", fp.BitPrecision)
	assertErrorf(fp.ExponentLocation == 23, ErrFloatingPoint,
		"exponent location %d", fp.ExponentLocation)
	assertErrorf(fp.ExponentSize == 8, ErrFloatingPoint,
		"exponent size %d", fp.ExponentSize)
	assertErrorf(fp.MantissaLocation == 0, ErrFloatingPoint,
		"mantissa location %d", fp.MantissaLocation)
	assertErrorf(fp.MantissaSize == 23, ErrFloatingPoint,
		"mantissa size %d", fp.MantissaSize)
	assertErrorf(fp.ExponentBias == 127, ErrFloatingPoint,
		"exponent bias %d", fp.ExponentBias)
	assertErrorf(bf.Rem() >= 4, ErrTruncated,
		"%d bytes left in data region for a 4-byte element", bf.Rem())
	return float64(readF32(bf))
}
