package hdf5

// Datatype classes, in wire order. The class field is well-defined by the
// format even where this reader does not decode the class, so codes past
// typeArray are corruption rather than a missing feature.
const (
	typeFixedPoint = iota
	typeFloatingPoint
	typeTime
	typeString
	typeBitField
	typeOpaque
	typeCompound
	typeReference
	typeEnumerated
	typeVariableLength
	typeArray
)

// datatypeManager parses one datatype class body and decodes single
// elements of that class.
type datatypeManager interface {
	typeName() string
	parse(dt *DatatypeMessage, bf remReader)
	decode(dt *DatatypeMessage, bf remReader) float64
}

// dispatch maps datatype classes to their managers, indexed by class.
var dispatch = []datatypeManager{
	fixedPointManager,
	floatingPointManager,
	unparsedManagerType{"time"},
	unparsedManagerType{"string"},
	unparsedManagerType{"bitfield"},
	unparsedManagerType{"opaque"},
	unparsedManagerType{"compound"},
	unparsedManagerType{"reference"},
	unparsedManagerType{"enumerated"},
	unparsedManagerType{"variable-length"},
	unparsedManagerType{"array"},
}

func getDispatch(class uint8) datatypeManager {
	assertErrorf(int(class) < len(dispatch), ErrUnknownDatatype,
		"datatype class %d", class)
	return dispatch[class]
}

// DatatypeMessage describes the binary encoding of one array element.
// Exactly one of the variant fields is set, per the class.
type DatatypeMessage struct {
	class     uint8
	size      uint32 // element byte size
	bitFields uint32 // raw 24-bit class bit field

	FloatingPoint *FloatingPointDatatype
	FixedPoint    *FixedPointDatatype
}

// Class returns the wire class code.
func (dt *DatatypeMessage) Class() uint8 {
	return dt.class
}

// ClassName returns the class name for display.
func (dt *DatatypeMessage) ClassName() string {
	return getDispatch(dt.class).typeName()
}

// Size returns the element size in bytes.
func (dt *DatatypeMessage) Size() uint32 {
	return dt.size
}

// readDatatypeMessage parses the shared preamble, then hands the rest of
// the body to the class manager.
func readDatatypeMessage(bf remReader) *DatatypeMessage {
	b0 := read8(bf)
	version := b0 >> 4
	class := b0 & 0xf
	assertErrorf(version == 1, ErrVersion, "datatype version %d", version)
	dt := &DatatypeMessage{
		class:     class,
		bitFields: read24(bf),
		size:      read32(bf),
	}
	logger.Infof("datatype class %d size %d bitfields %#06x", class, dt.size, dt.bitFields)
	getDispatch(class).parse(dt, bf)
	return dt
}

// decodeValue decodes one element into the common float64 representation.
func (dt *DatatypeMessage) decodeValue(bf remReader) float64 {
	return getDispatch(dt.class).decode(dt, bf)
}

// unparsedManagerType covers the classes that are valid HDF5 but have no
// parser here. They reject rather than skip: silently ignoring a datatype
// body would misinterpret the data that follows it.
type unparsedManagerType struct {
	name string
}

var _ datatypeManager = unparsedManagerType{}

func (m unparsedManagerType) typeName() string {
	return m.name
}

func (m unparsedManagerType) parse(dt *DatatypeMessage, bf remReader) {
	failErrorf(ErrDatatypeClass, "%s datatype (class %d)", m.name, dt.class)
}

func (m unparsedManagerType) decode(dt *DatatypeMessage, bf remReader) float64 {
	failErrorf(ErrDatatypeClass, "%s datatype (class %d)", m.name, dt.class)
	panic("never gets here")
}
