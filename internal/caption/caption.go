// Package caption stabilizes overlapping speech-to-text hypotheses into a
// finalized history and a mutable active tail, and composes them into the
// text a viewer sees.
package caption

// Segment is a single timestamped hypothesis returned by a decode pass,
// relative to the session's absolute timeline in milliseconds.
type Segment struct {
	StartMS int64
	EndMS   int64
	Text    string
}

// Update is the result of pushing a new batch of segments into the
// Stabilizer: newly finalized segments to append to history, and the full
// replacement set of still-mutable segments.
type Update struct {
	History []Segment
	Active  []Segment
}

// IsEmpty reports whether an update carries nothing new.
func (u Update) IsEmpty() bool {
	return len(u.History) == 0 && len(u.Active) == 0
}
