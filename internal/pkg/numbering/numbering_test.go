package numbering

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		depth   int
		ordinal int
		want    string
	}{
		{0, 1, "제1장"},
		{0, 12, "제12장"},
		{1, 3, "제3조"},
		{2, 1, "①"},
		{2, 20, "⑳"},
		{2, 21, "(21)"},
		{3, 7, "7."},
		{4, 1, "가."},
		{4, 14, "하."},
		{4, 15, "[15]"},
		{5, 2, "2)"},
		{9, 4, "4)"},
	}
	for _, tt := range tests {
		got := Format(tt.depth, tt.ordinal)
		if got != tt.want {
			t.Errorf("Format(%d, %d) = %q, want %q", tt.depth, tt.ordinal, got, tt.want)
		}
	}
}

func TestFormatNegativeOrdinal(t *testing.T) {
	for depth := 0; depth <= 5; depth++ {
		if got := Format(depth, -1); got != "" {
			t.Errorf("Format(%d, -1) = %q, want empty", depth, got)
		}
	}
}

func TestCitation(t *testing.T) {
	tests := []struct {
		depth   int
		ordinal int
		want    string
	}{
		{0, 2, "제2장"},
		{1, 15, "제15조"},
		{2, 3, "제3항"},
		{3, 1, "제1호"},
		{4, 4, "제4목"},
		{5, 6, "6)"},
	}
	for _, tt := range tests {
		got := Citation(tt.depth, tt.ordinal)
		if got != tt.want {
			t.Errorf("Citation(%d, %d) = %q, want %q", tt.depth, tt.ordinal, got, tt.want)
		}
	}
	if got := Citation(2, -1); got != "" {
		t.Errorf("Citation(2, -1) = %q, want empty", got)
	}
}
