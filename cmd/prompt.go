package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// promptConfirmer asks yes/no questions on a line-oriented terminal
type promptConfirmer struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan inputLine
}

type inputLine struct {
	text string
	err  error
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out, lines: make(chan inputLine)}
}

// Confirm accepts y or yes; anything else, including end of input, is no
func (p *promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	line, err := p.ask(ctx, prompt+" [y/N] ")
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ask prints prompt and waits for one trimmed line. A final line without a
// newline is returned as is; io.EOF means nothing was left to read.
// Cancelling ctx abandons the wait and returns ctx.Err().
func (p *promptConfirmer) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	p.once.Do(func() { go p.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok || (errors.Is(l.err, io.EOF) && l.text == "") {
			return "", io.EOF
		}
		if l.err != nil && !errors.Is(l.err, io.EOF) {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}

// readLines feeds input lines to ask until the reader fails. A single reader
// goroutine keeps a line pending after a cancelled ask for the next one.
func (p *promptConfirmer) readLines() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		p.lines <- inputLine{text: text, err: err}
		if err != nil {
			return
		}
	}
}
