// Package surface holds presentation surfaces for hosts without a platform
// dialog toolkit.
package surface

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/maloquacious/solicitreview/internal/prompt"
)

// Terminal asks on a text stream. The negative answer is listed first, as
// in a native alert.
type Terminal struct {
	in        *bufio.Reader
	out       io.Writer
	reviewURL string
}

// NewTerminal returns a Terminal reading answers from in and writing to out.
// reviewURL is shown when a native review is requested; it may be empty.
func NewTerminal(in io.Reader, out io.Writer, reviewURL string) *Terminal {
	return &Terminal{
		in:        bufio.NewReader(in),
		out:       out,
		reviewURL: reviewURL,
	}
}

func (t *Terminal) Confirm(ctx context.Context, c prompt.Copy) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(t.out, "%s\n%s\n  1) %s\n  2) %s\n> ", c.Title, c.Message, c.No, c.Yes)

	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch answer := strings.TrimSpace(line); {
	case answer == "2", strings.EqualFold(answer, "y"), strings.EqualFold(answer, "yes"), answer == c.Yes:
		return true, nil
	}
	return false, nil
}

func (t *Terminal) RequestNativeReview(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.reviewURL == "" {
		_, err := fmt.Fprintln(t.out, "Thanks! Please leave a review in the store.")
		return err
	}
	_, err := fmt.Fprintf(t.out, "Thanks! Leave a review at %s\n", t.reviewURL)
	return err
}

// Share prints the share sheet items.
func (t *Terminal) Share(ctx context.Context, s prompt.Share) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(t.out, "%s\n%s\n", s.Text, s.URL)
	return err
}

// Scripted answers every confirmation the same way without showing
// anything. OnReview, when set, runs in place of a native review.
type Scripted struct {
	Accept   bool
	OnReview func(ctx context.Context) error
}

func (s Scripted) Confirm(ctx context.Context, _ prompt.Copy) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.Accept, nil
}

func (s Scripted) RequestNativeReview(ctx context.Context) error {
	if s.OnReview == nil {
		return ctx.Err()
	}
	return s.OnReview(ctx)
}
