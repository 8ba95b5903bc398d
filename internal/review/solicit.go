package review

import (
	"context"
	"fmt"

	"github.com/maloquacious/solicitreview/internal/prompt"
)

// Surface presents the solicitation. Implementations are chosen per host
// platform when the application is composed.
type Surface interface {
	// Confirm shows the two-choice dialog and reports whether the user
	// picked the positive answer.
	Confirm(ctx context.Context, c prompt.Copy) (bool, error)

	// RequestNativeReview invokes the platform review mechanism. The
	// platform may decline to show anything; that is not an error.
	RequestNativeReview(ctx context.Context) error
}

// RequestReview runs the whole flow for one engagement: check eligibility,
// confirm with the user, invoke the native review, then mark the release
// prompted. It reports whether the native review was invoked.
func (t *Tracker) RequestReview(ctx context.Context, s Surface, c prompt.Copy) (bool, error) {
	ok, err := t.ShouldPrompt(ctx)
	if err != nil || !ok {
		return false, err
	}

	t.log.Info("asking for review")
	accepted, err := s.Confirm(ctx, c)
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	if !accepted {
		t.log.Info("review declined")
		return false, nil
	}

	if err := s.RequestNativeReview(ctx); err != nil {
		return false, fmt.Errorf("native review failed: %w", err)
	}
	if err := t.MarkPrompted(ctx); err != nil {
		return true, err
	}
	return true, nil
}
