package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Raw-mode control bytes.
const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

// Prompt owns the interactive terminal used for password and confirmation
// entry. Holding it in a value (rather than reaching for os.Stdin globally)
// keeps raw-mode acquisition and restoration in one place. A single buffered
// reader is shared across line prompts so type-ahead past one newline is
// still available to the next prompt.
type Prompt struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewPrompt returns a Prompt bound to stdin, or an error if stdin is not an
// interactive terminal.
func NewPrompt() (*Prompt, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("cannot prompt for input: stdin is not a terminal")
	}
	return &Prompt{
		in:     os.Stdin,
		out:    os.Stderr,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// ReadPassword reads a line of input with each character echoed as an
// asterisk. Backspace erases the last character. Enter completes the entry.
// Ctrl-C aborts the whole process with exit status 130; the terminal is
// restored to cooked mode on every exit path first.
func (p *Prompt) ReadPassword(label string) (string, error) {
	fd := int(p.in.Fd())
	fmt.Fprint(p.out, label)

	state, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, state)
		fmt.Fprintln(p.out)
	}()

	password, aborted, err := readMasked(p.in, p.out)
	if aborted {
		// os.Exit skips deferred calls, so restore the terminal here.
		_ = term.Restore(fd, state)
		fmt.Fprintln(p.out)
		os.Exit(130)
	}
	return password, err
}

// readMasked consumes raw-mode bytes until Enter, echoing one asterisk per
// completed rune so multi-byte input masks correctly. Backspace erases a
// whole rune. Returns aborted on Ctrl-C; the caller owns terminal restoration
// and the process exit.
func readMasked(in io.Reader, out io.Writer) (password string, aborted bool, err error) {
	var entered []rune
	var pending []byte
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil {
			return "", false, fmt.Errorf("failed to read input: %w", err)
		}
		if n == 0 {
			continue
		}
		b := buf[0]

		if len(pending) == 0 {
			switch b {
			case '\r', '\n':
				return string(entered), false, nil
			case keyCtrlC:
				return "", true, nil
			case keyCtrlD:
				return "", false, fmt.Errorf("input closed before entry completed")
			case keyBackspace, keyDelete:
				if len(entered) > 0 {
					entered = entered[:len(entered)-1]
					fmt.Fprint(out, "\b \b")
				}
				continue
			}
			if b < 0x20 {
				// Ignore other control bytes (arrow keys arrive as escape sequences).
				continue
			}
		}

		pending = append(pending, b)
		if !utf8.FullRune(pending) {
			continue
		}
		r, _ := utf8.DecodeRune(pending)
		pending = pending[:0]
		entered = append(entered, r)
		fmt.Fprint(out, "*")
	}
}

// ReadLine reads a plain visible line of input, trimmed of the trailing
// newline. Used for non-secret entries like credential slot values typed by
// the user at save time.
func (p *Prompt) ReadLine(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question and returns true only for an explicit yes.
func (p *Prompt) Confirm(label string) (bool, error) {
	fmt.Fprint(p.out, label+" [y/N]: ")

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	response := strings.TrimSpace(strings.ToLower(line))
	return response == "y" || response == "yes", nil
}
