package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/ui"
)

// Welcome is printed when the shell starts.
const Welcome = "Welcome to watch mode! You can type 'help' to get an overview of the commands you can use here."

const helpText = `Commands available to you in watch mode:
  hint  - prints the current exercise's hint
  clear - clears the screen
  quit  - quits watch mode
  help  - displays this help message

Watch mode automatically re-evaluates the current exercise
when you edit a file's contents.`

// Shell reads line commands while a watch session runs.
type Shell struct {
	in    io.Reader
	out   io.Writer
	state *State
}

// NewShell creates a shell acting on state.
func NewShell(in io.Reader, out io.Writer, state *State) *Shell {
	return &Shell{in: in, out: out, state: state}
}

// Run processes commands until quit, end of input or a read error.
func (s *Shell) Run() {
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		_ = s.Execute(sc.Text())
		if s.state.QuitRequested() {
			return
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(s.out, "error reading command: %v\n", err)
	}
}

// Execute runs one command line. Unknown commands are reported to the user
// and returned as ErrUnknownCommand.
func (s *Shell) Execute(line string) error {
	input := strings.TrimSpace(line)
	switch input {
	case "":
	case "hint":
		if hint, ok := s.state.Hint(); ok {
			fmt.Fprintln(s.out, hint)
		}
	case "clear":
		fmt.Fprintln(s.out, ui.ClearScreen)
	case "quit":
		s.state.RequestQuit()
		fmt.Fprintln(s.out, "Bye!")
	case "help":
		fmt.Fprintln(s.out, helpText)
	default:
		fmt.Fprintf(s.out, "unknown command: %s\n", input)
		return fmt.Errorf("%w: %s", serrors.ErrUnknownCommand, input)
	}
	return nil
}
