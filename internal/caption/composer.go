package caption

import "strings"

// segmentsToText joins the trimmed, non-empty texts of segments with single
// spaces, in the order given.
func segmentsToText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Compose merges finalized history and the current active tail into the
// display string a viewer should see. Pure function of its inputs.
func Compose(history, active []Segment) string {
	historyText := segmentsToText(history)
	activeText := segmentsToText(active)

	switch {
	case historyText == "":
		return activeText
	case activeText == "":
		return historyText
	default:
		return historyText + " " + activeText
	}
}
