package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredMatchesPlainWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got, want := Colored(), Plain(); got != want {
		t.Fatalf("Colored() = %q, want %q", got, want)
	}
}
