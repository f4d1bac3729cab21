package hdf5

// Dataspace flag bits.
const (
	dspaceMaxSizesFlag    = 0 // maximum sizes follow the sizes
	dspacePermutationFlag = 1 // permutation indices follow (not supported)
)

// DataspaceMessage carries the dimension extents of a stored array. A
// dimensionality of zero describes a scalar.
type DataspaceMessage struct {
	DimensionSizes    []uint64
	DimensionMaxSizes []uint64 // nil when the file does not record them
}

func readDataspaceMessage(bf remReader) *DataspaceMessage {
	version := read8(bf)
	assertErrorf(version == 1, ErrDataspaceVersion,
		"dataspace version %d", version)
	dimensionality := read8(bf)
	flags := read8(bf)
	assertError(!hasFlag8(flags, dspacePermutationFlag), ErrPermutation,
		"dataspace with permutation indices")
	skip(bf, 5) // reserved
	msg := &DataspaceMessage{
		DimensionSizes: make([]uint64, dimensionality),
	}
	for i := range msg.DimensionSizes {
		msg.DimensionSizes[i] = read64(bf)
	}
	if hasFlag8(flags, dspaceMaxSizesFlag) {
		msg.DimensionMaxSizes = make([]uint64, dimensionality)
		for i := range msg.DimensionMaxSizes {
			msg.DimensionMaxSizes[i] = read64(bf)
		}
	}
	logger.Info("dataspace dimensions", msg.DimensionSizes)
	return msg
}
