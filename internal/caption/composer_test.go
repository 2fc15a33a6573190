package caption

import "testing"

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		history []Segment
		active  []Segment
		want    string
	}{
		{"both empty", nil, nil, ""},
		{
			"history only",
			[]Segment{{Text: "hello"}, {Text: "there"}},
			nil,
			"hello there",
		},
		{
			"active only",
			nil,
			[]Segment{{Text: "world"}},
			"world",
		},
		{
			"both present",
			[]Segment{{Text: "hello"}},
			[]Segment{{Text: "world"}},
			"hello world",
		},
		{
			"blank segments trimmed out",
			[]Segment{{Text: "  "}, {Text: "hi"}},
			[]Segment{{Text: "   "}},
			"hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.history, tt.active); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}
