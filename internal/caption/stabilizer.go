package caption

import (
	"sort"
	"strings"
)

// Stabilizer partitions a stream of overlapping decoder hypotheses into a
// monotonically growing, non-overlapping finalized history and a mutable
// active tail, tolerating small timestamp jitter between overlapping
// decoder windows.
type Stabilizer struct {
	tailMS         int64
	dedupeFuzzMS   int64
	lastFinalEndMS int64
}

// NewStabilizer constructs a Stabilizer. tailMS is how far behind "now" a
// segment must end before it can be finalized; segments newer than that
// remain active and may still be revised by a later decode.
func NewStabilizer(tailMS int64) *Stabilizer {
	return &Stabilizer{
		tailMS:       tailMS,
		dedupeFuzzMS: 80,
	}
}

// Push accepts the latest batch of segments covering up to nowMS of audio
// and returns the update to apply: segments to append to history, and the
// full replacement active set.
func (s *Stabilizer) Push(nowMS int64, segments []Segment) Update {
	cutoff := nowMS - s.tailMS

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartMS != sorted[j].StartMS {
			return sorted[i].StartMS < sorted[j].StartMS
		}
		return sorted[i].EndMS < sorted[j].EndMS
	})

	var update Update
	for _, seg := range sorted {
		trimmed := strings.TrimSpace(seg.Text)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			continue
		}

		if seg.EndMS <= cutoff {
			if seg.EndMS <= s.lastFinalEndMS+s.dedupeFuzzMS {
				continue
			}
			if seg.EndMS > s.lastFinalEndMS {
				s.lastFinalEndMS = seg.EndMS
			}
			update.History = append(update.History, seg)
		} else {
			update.Active = append(update.Active, seg)
		}
	}

	return update
}
