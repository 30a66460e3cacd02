package transfer

// Failure records one episode that could not be copied. At most one failure
// is recorded per source file per run.
type Failure struct {
	// Source is the path of the episode file that failed to copy.
	Source string `json:"source"`
	// Reason is a short human-readable description, not a raw system code.
	Reason string `json:"reason"`
}

// Outcome summarizes a completed transfer run. For any run that reached the
// per-episode loop, Copied + Skipped + len(Failed) equals the number of input
// episodes.
type Outcome struct {
	// SessionID identifies the run in logs.
	SessionID string `json:"session_id"`
	// Destination is the root directory the run wrote into.
	Destination string `json:"destination"`
	// Copied counts files written by this run.
	Copied int `json:"copied"`
	// Skipped counts files that already existed at their target path.
	Skipped int `json:"skipped"`
	// Failed lists per-file copy failures in input order.
	Failed []Failure `json:"failed,omitempty"`
}

// Clean reports whether every input episode was copied or skipped.
func (o Outcome) Clean() bool {
	return len(o.Failed) == 0
}
