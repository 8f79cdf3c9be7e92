package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are seams for the terminal calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line read from reader otherwise. Input already
// buffered in reader was typed ahead and is consumed first, so the
// terminal is only read directly when reader holds nothing.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) || reader.Buffered() > 0 {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}

	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// Outcome is how the user answered a prompt.
type Outcome int

const (
	Cancelled Outcome = iota
	Confirmed
	Input
)

// PromptResult carries the outcome and, for Input, the entered text.
type PromptResult struct {
	Outcome Outcome
	Text    string
}

// Prompt asks a question and classifies the answer: y or yes confirms;
// an empty line, n, no, cancel or end of input cancels; anything else is
// returned as Input.
func Prompt(reader *bufio.Reader, prompt string, w io.Writer) PromptResult {
	line, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return PromptResult{Outcome: Cancelled}
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return PromptResult{Outcome: Confirmed}
	case "", "n", "no", "cancel":
		return PromptResult{Outcome: Cancelled}
	default:
		return PromptResult{Outcome: Input, Text: line}
	}
}
