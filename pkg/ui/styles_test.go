package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// withANSI renders styles as they would appear on a colour terminal
func withANSI(t *testing.T) {
	t.Helper()
	previous := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })
}

func TestFormatHelpers_KeepText(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
	}{
		{"title", FormatTitle},
		{"bold", FormatBold},
		{"muted", FormatMuted},
		{"strike", StyleStrike.Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format("Products"); !strings.Contains(got, "Products") {
				t.Errorf("%s(%q) = %q, text lost", tt.name, "Products", got)
			}
		})
	}
}

func TestStyleStrike_EmitsCrossOut(t *testing.T) {
	withANSI(t)

	got := StyleStrike.Render("24,99 €")
	if !strings.Contains(got, "\x1b[9m") {
		t.Errorf("expected crossed-out sequence in %q", got)
	}
	if lipgloss.Width(got) != lipgloss.Width("24,99 €") {
		t.Errorf("strikethrough changed the display width: %q", got)
	}
}
