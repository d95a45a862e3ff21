package domain

// DiffEntry records the outcome of one diff run.
type DiffEntry struct {
	ID         string    `json:"id"`
	Timestamp  string    `json:"timestamp"`
	CommitHash string    `json:"commit_hash,omitempty"`
	CaptureA   string    `json:"capture_a"`
	CaptureB   string    `json:"capture_b"`
	Mode       AlignMode `json:"mode"`
	Counts     Counts    `json:"counts"`
}

// Delta returns how many more changed rows e has than prev.
func (e DiffEntry) Delta(prev DiffEntry) int {
	return e.Counts.Changed() - prev.Counts.Changed()
}
