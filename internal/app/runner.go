// Package app provides the read-parse-execute loop for the vending machine CLI.
package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"vending-sim/internal/parser"
	"vending-sim/internal/service"
)

// Runner handles the main read-parse-execute-output loop.
type Runner struct {
	processor *service.Processor
	reader    *bufio.Scanner
	writer    io.Writer
	prompt    string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPrompt prints prompt before each line is read. Used for
// interactive sessions.
func WithPrompt(prompt string) RunnerOption {
	return func(r *Runner) {
		r.prompt = prompt
	}
}

// NewRunner creates a new application runner.
func NewRunner(processor *service.Processor, input io.Reader, output io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{
		processor: processor,
		reader:    bufio.NewScanner(input),
		writer:    output,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the main loop until EXIT is received or EOF is reached.
// Parse and execution errors are printed and the loop continues.
func (r *Runner) Run() error {
	for r.showPrompt(); r.reader.Scan(); r.showPrompt() {
		line := strings.TrimSpace(r.reader.Text())
		if line == "" {
			continue
		}

		cmd, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintf(r.writer, "ERROR %s\n", err)
			continue
		}

		if cmd.Name == "EXIT" {
			return nil
		}

		result, err := r.processor.Execute(cmd)
		if err != nil {
			fmt.Fprintf(r.writer, "ERROR %s\n", err)
			continue
		}

		if result != "" {
			fmt.Fprintln(r.writer, result)
		}
	}

	if err := r.reader.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

func (r *Runner) showPrompt() {
	if r.prompt != "" {
		fmt.Fprint(r.writer, r.prompt)
	}
}
