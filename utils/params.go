package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads values that were not passed on the command line.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: bufio.NewReader(in), Out: out}
}

// GetParam returns args[arg] when present, otherwise prints prompt and reads one line.
func (p *Prompter) GetParam(args []string, arg int, prompt string) (string, error) {
	if len(args) > arg && strings.TrimSpace(args[arg]) != "" {
		return strings.TrimSpace(args[arg]), nil
	}
	fmt.Fprintln(p.Out, prompt)
	text, err := p.In.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
