package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for input
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	hidden bool
}

// NewPrompter reads from stdin and writes prompts to stderr. Secrets are read without
// echo when stdin is a terminal.
func NewPrompter() *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stderr,
		fd:     fd,
		hidden: term.IsTerminal(fd),
	}
}

// NewPrompterFrom reads from in and writes to out, with secrets echoed like any input
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// Line reads one trimmed line
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Secret reads a password or code
func (p *Prompter) Secret(prompt string) (string, error) {
	if !p.hidden {
		return p.Line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	data, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Confirm asks a yes/no question; anything but y or yes is no
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Line(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
