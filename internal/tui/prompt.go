// Package tui renders the interactive session: styled output, the
// per-image prompt, and the closing summary table.
package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Decision is the reviewer's verdict on a single image.
type Decision int

const (
	Process Decision = iota
	Skip
	SkipAll
	Quit
)

// Prompter reads per-image decisions from an input stream, one line per
// answer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading answers from in and writing the
// prompt to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask blocks until the user answers and returns the decision. End of
// input counts as quit, so a closed stdin ends the review cleanly.
func (p *Prompter) Ask() Decision {
	fmt.Fprint(p.out, promptStyle.Render("Process this image? [y/n/skip-all/quit]: "))

	line, err := p.in.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		fmt.Fprintln(p.out)
		return Quit
	}

	return ParseDecision(line)
}

// ParseDecision maps an answer to a Decision. Anything unrecognized
// skips the current image, matching the prompt's n default.
func ParseDecision(answer string) Decision {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return Process
	case "s", "skip-all":
		return SkipAll
	case "q", "quit":
		return Quit
	default:
		return Skip
	}
}
