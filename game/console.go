package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Console reads user input line by line and writes prompts. A single
// goroutine owns the reader so prompts and step triggers can share it.
type Console struct {
	lines <-chan string
	out   io.Writer

	mu      sync.Mutex
	pending []string
}

// NewConsole starts reading lines from in
func NewConsole(in io.Reader, out io.Writer) *Console {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()
	return &Console{lines: lines, out: out}
}

// Printf writes to the console output
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ReadLine blocks for the next line; io.EOF once input is exhausted
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.mu.Lock()
	if len(c.pending) > 0 {
		line := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		return line, nil
	}
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// unread returns a line to the front of the input
func (c *Console) unread(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append([]string{line}, c.pending...)
}

// Ask repeats question until accept takes the answer
func (c *Console) Ask(ctx context.Context, question string, accept func(string) error) (string, error) {
	for {
		c.Printf("%s", question)
		line, err := c.ReadLine(ctx)
		if err != nil {
			return "", errors.Wrapf(err, "[Console.Ask] %q", strings.TrimSpace(question))
		}
		if err := accept(line); err != nil {
			c.Printf("%v\n", err)
			continue
		}
		return line, nil
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

// forwardTriggers turns each input line into one step trigger until the
// input ends, the user quits, or ctx is done. A line read after the run
// stopped listening is put back for the next reader.
func (c *Console) forwardTriggers(ctx context.Context, triggers chan<- struct{}) error {
	for {
		line, err := c.ReadLine(ctx)
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			c.unread(line)
			return nil
		}
		if isQuit(line) {
			return nil
		}
		select {
		case triggers <- struct{}{}:
		case <-ctx.Done():
			c.unread(line)
			return nil
		}
	}
}
