package notename

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"C4", 60, true},
		{"Piano C4", 60, true},
		{"piano_c4", 60, true},
		{"Strings-F#3", 54, true},
		{"Flute Bb2", 46, true},
		{"sub_C-1", 0, true},
		{"lead G9", 127, true},
		{"lead G#9", 0, false},
		{"Cb-1", 0, false},
		{"piano_60", 60, true},
		{"piano 127", 127, true},
		{"piano_128", 0, false},
		{"Kick", 0, false},
		{"Grand Piano", 0, false},
		{"take2", 0, false},
		{"Pad A3 ", 57, true},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parse(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
