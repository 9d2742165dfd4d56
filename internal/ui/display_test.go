package ui

import "testing"

func TestMarkdownWidth(t *testing.T) {
	tests := []struct {
		termWidth int
		want      int
	}{
		{120, 120 - 2*MarkdownRenderMargin},
		{44, 40},
		{43, 40},
		{20, 40},
		{0, 40},
	}
	for _, tt := range tests {
		d := NewDisplayContextWithWidth(tt.termWidth)
		if got := d.MarkdownWidth(); got != tt.want {
			t.Fatalf("MarkdownWidth() at %d columns = %d, want %d", tt.termWidth, got, tt.want)
		}
	}
}
