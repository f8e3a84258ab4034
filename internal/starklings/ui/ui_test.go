package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

func newTestUI(noEmoji bool) (*UI, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return New(&buf, noEmoji), &buf
}

func TestPercent(t *testing.T) {
	tests := []struct {
		p    Progress
		want float64
	}{
		{Progress{0, 0}, 0},
		{Progress{1, 4}, 25},
		{Progress{3, 3}, 100},
	}
	for _, tt := range tests {
		if got := tt.p.Percent(); got != tt.want {
			t.Errorf("%+v.Percent() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestBar(t *testing.T) {
	u, _ := newTestUI(false)
	u.width = 10

	tests := []struct {
		p    Progress
		want string
	}{
		{Progress{0, 4}, "Progress: [>---------] 0/4 (0.0 %)"},
		{Progress{1, 4}, "Progress: [##>-------] 1/4 (25.0 %)"},
		{Progress{4, 4}, "Progress: [##########] 4/4 (100.0 %)"},
		{Progress{0, 0}, "Progress: [>---------] 0/0 (0.0 %)"},
	}
	for _, tt := range tests {
		if got := u.Bar(tt.p); got != tt.want {
			t.Errorf("Bar(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestResetOnlyOnTerminal(t *testing.T) {
	u, buf := newTestUI(false)
	u.Reset()
	if buf.Len() != 0 {
		t.Errorf("Reset() wrote %q to a non-terminal", buf.String())
	}
}

func TestCelebrate(t *testing.T) {
	u, buf := newTestUI(true)
	u.Celebrate("The code is compiling!")
	if !strings.Contains(buf.String(), "~*~ The code is compiling! ~*~") {
		t.Errorf("Celebrate() without emoji = %q", buf.String())
	}

	u, buf = newTestUI(false)
	u.Celebrate("ok")
	if !strings.Contains(buf.String(), "🎉 🎉  ok 🎉 🎉") {
		t.Errorf("Celebrate() = %q", buf.String())
	}
	if u.Emoji("🎉", "*") != "🎉" {
		t.Error("Emoji() should pick the emoji")
	}
}

func TestPendingNotice(t *testing.T) {
	u, buf := newTestUI(false)
	u.PendingNotice("I AM NOT DONE", []exercise.ContextLine{
		{Number: 9, Line: "fn main() {"},
		{Number: 10, Line: "// I AM NOT DONE", Important: true},
	})
	out := buf.String()
	for _, want := range []string{
		"`I AM NOT DONE`",
		" 9 |  fn main() {",
		"10 |  // I AM NOT DONE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PendingNotice() missing %q in:\n%s", want, out)
		}
	}
}

func TestOutput(t *testing.T) {
	u, buf := newTestUI(false)
	u.Output("Hello, world!")
	want := "Output:\n====================\nHello, world!\n====================\n\n"
	if buf.String() != want {
		t.Errorf("Output() = %q, want %q", buf.String(), want)
	}
}
