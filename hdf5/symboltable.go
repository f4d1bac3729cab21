package hdf5

// SymbolTableMessage marks an object as a group: it points at the B-tree
// and local heap that hold the group's links.
type SymbolTableMessage struct {
	BTreeAddress     uint64
	LocalHeapAddress uint64
}

func readSymbolTableMessage(bf remReader) *SymbolTableMessage {
	return &SymbolTableMessage{
		BTreeAddress:     read64(bf),
		LocalHeapAddress: read64(bf),
	}
}
