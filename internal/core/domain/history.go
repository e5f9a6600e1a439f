package domain

// HistorySlot is one retained workspace instance in the bounded rotation for
// a lock key. Slots are numbered by allocation sequence; the sequence, not
// wall-clock time, decides which slot is oldest.
type HistorySlot struct {
	Key   LockKey
	Index int
	// Dir is the backing workspace directory allocated for this slot.
	Dir string
}

// SeriesState is the persisted rotation bookkeeping for one lock key: the
// next slot index to hand out and the live slot indexes in allocation order.
type SeriesState struct {
	NextIndex int   `json:"next_index"`
	Live      []int `json:"live"`
}
