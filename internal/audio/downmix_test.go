package audio

import "testing"

func TestDownmix(t *testing.T) {
	tests := []struct {
		name     string
		in       []float32
		channels int
		want     []float32
		wantErr  bool
	}{
		{
			name:     "mono passthrough",
			in:       []float32{0.1, 0.2, 0.3},
			channels: 1,
			want:     []float32{0.1, 0.2, 0.3},
		},
		{
			name:     "stereo average",
			in:       []float32{1.0, -1.0, 0.5, 0.5},
			channels: 2,
			want:     []float32{0.0, 0.5},
		},
		{
			name:     "quad average",
			in:       []float32{1, 1, 1, 1, 0, 0, 0, 0},
			channels: 4,
			want:     []float32{1, 0},
		},
		{
			name:     "not a multiple of channels",
			in:       []float32{1, 2, 3},
			channels: 2,
			wantErr:  true,
		},
		{
			name:     "zero channels",
			in:       []float32{1, 2},
			channels: 0,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []float32
			if !tt.wantErr {
				out = make([]float32, len(tt.want))
			} else {
				out = make([]float32, len(tt.in)) // deliberately oversized/wrong shape
			}
			err := Downmix(out, tt.in, tt.channels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Downmix() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			for i := range tt.want {
				if out[i] != tt.want[i] {
					t.Errorf("out[%d] = %v, want %v", i, out[i], tt.want[i])
				}
			}
		})
	}
}

func TestDownmixOutputLengthMismatch(t *testing.T) {
	out := make([]float32, 3)
	err := Downmix(out, []float32{1, 2, 3, 4}, 2)
	if err == nil {
		t.Fatal("expected error for mismatched output length")
	}
}
