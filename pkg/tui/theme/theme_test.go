package theme

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestBarWidth(t *testing.T) {
	p := Default().Progress
	for _, percent := range []int{-5, 0, 33, 100, 140} {
		bar := p.Bar(percent, 12)
		if got := ansi.PrintableRuneWidth(bar); got != 12 {
			t.Fatalf("percent %d: expected width 12, got %d", percent, got)
		}
	}
}

func TestBarFill(t *testing.T) {
	p := Default().Progress
	if n := strings.Count(p.Bar(50, 10), "█"); n != 5 {
		t.Fatalf("expected 5 filled cells, got %d", n)
	}
	if n := strings.Count(p.Bar(100, 10), "░"); n != 0 {
		t.Fatalf("expected full bar, found %d empty cells", n)
	}
	if p.Bar(50, 0) != "" {
		t.Fatalf("expected empty bar for zero width")
	}
}
