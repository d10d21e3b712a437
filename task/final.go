package task

// FinalResult maps every distinct task id of a batch to exactly one Result.
// Iteration order is the order in which each id first appears in the batch.
type FinalResult struct {
	order []uint64
	byID  map[uint64]Result
}

// NewFinalResult returns an empty FinalResult sized for n ids.
func NewFinalResult(n int) *FinalResult {
	return &FinalResult{
		order: make([]uint64, 0, n),
		byID:  make(map[uint64]Result, n),
	}
}

// Set records r under its task id, replacing any previous entry. The id keeps
// the position of its first Set.
func (f *FinalResult) Set(r Result) {
	if _, ok := f.byID[r.TaskID]; !ok {
		f.order = append(f.order, r.TaskID)
	}
	f.byID[r.TaskID] = r
}

// Len returns the number of distinct task ids.
func (f *FinalResult) Len() int {
	return len(f.order)
}

// Get returns the result recorded for id.
func (f *FinalResult) Get(id uint64) (Result, bool) {
	r, ok := f.byID[id]
	return r, ok
}

// IDs returns the task ids in first-appearance order.
func (f *FinalResult) IDs() []uint64 {
	ids := make([]uint64, len(f.order))
	copy(ids, f.order)
	return ids
}

// Results returns one result per task id in first-appearance order.
func (f *FinalResult) Results() []Result {
	out := make([]Result, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out
}

// Counts returns the number of completed and failed entries.
func (f *FinalResult) Counts() (completed, failed int) {
	for _, r := range f.byID {
		if r.Succeeded() {
			completed++
		} else {
			failed++
		}
	}
	return completed, failed
}

// Equal reports whether two final results hold the same entries in the same
// order.
func (f *FinalResult) Equal(other *FinalResult) bool {
	if f == nil || other == nil {
		return f == other
	}
	if len(f.order) != len(other.order) {
		return false
	}
	for i, id := range f.order {
		if other.order[i] != id || other.byID[id] != f.byID[id] {
			return false
		}
	}
	return true
}
