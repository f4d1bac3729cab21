package hdf5

import "time"

// ObjectModificationTimeMessage records when the object was last changed.
type ObjectModificationTimeMessage struct {
	Seconds uint32 // Unix time
}

// Time returns the modification time as a time.Time.
func (m *ObjectModificationTimeMessage) Time() time.Time {
	return time.Unix(int64(m.Seconds), 0)
}

func readModTimeMessage(bf remReader) *ObjectModificationTimeMessage {
	version := read8(bf)
	assertErrorf(version == 1, ErrVersion,
		"modification time version %d", version)
	skip(bf, 3) // reserved
	return &ObjectModificationTimeMessage{Seconds: read32(bf)}
}
