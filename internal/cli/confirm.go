package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoChoice is returned when input ends before a valid answer.
var ErrNoChoice = errors.New("no choice made")

// Confirmer asks yes/no and multiple choice questions on a terminal.
// With force set every confirmation is answered yes without reading input.
type Confirmer struct {
	reader *NonBlockingReader
	writer io.Writer
	force  bool
}

// NewConfirmer creates a confirmer reading answers from in.
func NewConfirmer(in io.Reader, out io.Writer, force bool) *Confirmer {
	return &Confirmer{
		reader: NewNonBlockingReader(in),
		writer: out,
		force:  force,
	}
}

// Confirm asks question and reports whether the answer was yes. Anything
// other than y/yes, including end of input, means no.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	if c.force {
		return true, nil
	}

	if _, err := fmt.Fprint(c.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := c.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
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

// Choice is one option of a Choose prompt, selected by its key.
type Choice struct {
	Key   string
	Label string
}

// Choose asks question until one of choices is picked by key and returns
// that key. End of input yields ErrNoChoice.
func (c *Confirmer) Choose(ctx context.Context, question string, choices []Choice) (string, error) {
	labels := make([]string, 0, len(choices))
	for _, ch := range choices {
		labels = append(labels, fmt.Sprintf("[%s] %s", ch.Key, ch.Label))
	}

	for {
		prompt := fmt.Sprintf("%s %s", question, strings.Join(labels, "  "))
		if _, err := fmt.Fprint(c.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		answer, err := c.reader.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return "", ErrNoChoice
		}
		if err != nil {
			return "", err
		}

		for _, ch := range choices {
			if strings.EqualFold(answer, ch.Key) || strings.EqualFold(answer, ch.Label) {
				return ch.Key, nil
			}
		}

		if _, err := fmt.Fprintln(c.writer, FormatWarning("Please pick one of the listed options")); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
	}
}
