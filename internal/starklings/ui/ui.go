// Package ui renders verification results to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

const (
	// ResetScreen clears the terminal between verification passes.
	ResetScreen = "\x1Bc"
	// ClearScreen is what the shell's clear command prints.
	ClearScreen = "\x1B[2J\x1B[1;1H"

	maxBarWidth = 60
)

// Progress is the (done, total) pair shown above a verification pass.
type Progress struct {
	Done  int
	Total int
}

// Percent of exercises done. An empty list is 0%.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// UI writes to a terminal or any writer.
type UI struct {
	out     io.Writer
	noEmoji bool
	tty     bool
	width   int
}

// New creates a UI on out. Screen resets are only emitted when out is a
// terminal.
func New(out io.Writer, noEmoji bool) *UI {
	u := &UI{out: out, noEmoji: noEmoji, width: maxBarWidth}
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		u.tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		if w, _, err := term.GetSize(int(fd)); err == nil {
			u.width = min(maxBarWidth, max(10, w-30))
		}
	}
	return u
}

// Writer returns the underlying writer.
func (u *UI) Writer() io.Writer {
	return u.out
}

// Printf writes formatted text.
func (u *UI) Printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// Println writes a line.
func (u *UI) Println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

// Reset clears the terminal, if there is one.
func (u *UI) Reset() {
	if u.tty {
		fmt.Fprint(u.out, ResetScreen)
	}
}

// Emoji picks the plain fallback when emojis are disabled.
func (u *UI) Emoji(emoji, fallback string) string {
	if u.noEmoji {
		return fallback
	}
	return emoji
}

// Bar renders "Progress: [###>----] 3/10 (30.0 %)".
func (u *UI) Bar(p Progress) string {
	filled := 0
	if p.Total > 0 {
		filled = min(u.width, p.Done*u.width/p.Total)
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("#", filled))
	if filled < u.width {
		b.WriteString(">")
		b.WriteString(strings.Repeat("-", u.width-filled-1))
	}
	bar := b.String()
	return fmt.Sprintf("Progress: [%s%s] %d/%d (%.1f %%)",
		color.GreenString(bar[:filled]), color.RedString(bar[filled:]),
		p.Done, p.Total, p.Percent())
}

// Progress prints the progress bar line.
func (u *UI) Progress(p Progress) {
	fmt.Fprintln(u.out, u.Bar(p))
}

// Separator frames toolchain output.
func (u *UI) Separator() string {
	return color.New(color.Bold).Sprint("====================")
}

// Output prints captured toolchain output between separators.
func (u *UI) Output(output string) {
	fmt.Fprintln(u.out, "Output:")
	fmt.Fprintln(u.out, u.Separator())
	fmt.Fprintln(u.out, output)
	fmt.Fprintln(u.out, u.Separator())
	fmt.Fprintln(u.out)
}

// Celebrate prints a framed success message.
func (u *UI) Celebrate(msg string) {
	fmt.Fprintln(u.out)
	if u.noEmoji {
		fmt.Fprintf(u.out, "~*~ %s ~*~\n", msg)
	} else {
		fmt.Fprintf(u.out, "🎉 🎉  %s 🎉 🎉\n", msg)
	}
	fmt.Fprintln(u.out)
}

// Context prints the source lines around a pending marker. Important lines
// are bold.
func (u *UI) Context(lines []exercise.ContextLine) {
	blue := color.New(color.FgBlue, color.Bold)
	bold := color.New(color.Bold)
	for _, l := range lines {
		text := l.Line
		if l.Important {
			text = bold.Sprint(l.Line)
		}
		fmt.Fprintf(u.out, "%s %s  %s\n", blue.Sprintf("%2d", l.Number), color.BlueString("|"), text)
	}
}

// PendingNotice tells the learner how to move past an exercise that already
// compiles.
func (u *UI) PendingNotice(marker string, lines []exercise.ContextLine) {
	fmt.Fprintln(u.out, "You can keep working on this exercise,")
	fmt.Fprintf(u.out, "or jump into the next one by removing the %s comment:\n",
		color.New(color.Bold).Sprintf("`%s`", marker))
	fmt.Fprintln(u.out)
	u.Context(lines)
}
