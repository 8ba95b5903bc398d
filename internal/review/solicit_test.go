package review

import (
	"context"
	"errors"
	"testing"

	"github.com/maloquacious/solicitreview/internal/prompt"
	"golang.org/x/text/language"
)

type fakeSurface struct {
	accept     bool
	confirmErr error
	reviewErr  error

	confirms int
	reviews  int
	lastCopy prompt.Copy
}

func (f *fakeSurface) Confirm(_ context.Context, c prompt.Copy) (bool, error) {
	f.confirms++
	f.lastCopy = c
	return f.accept, f.confirmErr
}

func (f *fakeSurface) RequestNativeReview(context.Context) error {
	f.reviews++
	return f.reviewErr
}

func TestRequestReview(t *testing.T) {
	copyText := prompt.New(language.English, "Goobergine")

	tests := []struct {
		name         string
		surface      *fakeSurface
		wantReviewed bool
		wantErr      bool
		wantConfirms int
		wantReviews  int
		wantMarked   bool
	}{
		{
			name:         "accepted",
			surface:      &fakeSurface{accept: true},
			wantReviewed: true,
			wantConfirms: 1,
			wantReviews:  1,
			wantMarked:   true,
		},
		{
			name:         "declined",
			surface:      &fakeSurface{accept: false},
			wantConfirms: 1,
		},
		{
			name:         "confirm fails",
			surface:      &fakeSurface{accept: true, confirmErr: errors.New("no window")},
			wantErr:      true,
			wantConfirms: 1,
		},
		{
			name:         "native review fails",
			surface:      &fakeSurface{accept: true, reviewErr: errors.New("no scene")},
			wantErr:      true,
			wantConfirms: 1,
			wantReviews:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tr, _, _ := newTestTracker(2, "1.0")

			reviewed, err := tr.RequestReview(ctx, tt.surface, copyText)
			if err != nil || reviewed {
				t.Fatalf("first engagement: reviewed=%v err=%v", reviewed, err)
			}
			if tt.surface.confirms != 0 {
				t.Fatal("surface shown before checkpoint")
			}

			reviewed, err = tr.RequestReview(ctx, tt.surface, copyText)
			if tt.wantErr != (err != nil) {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if reviewed != tt.wantReviewed {
				t.Errorf("reviewed = %v, want %v", reviewed, tt.wantReviewed)
			}
			if tt.surface.confirms != tt.wantConfirms {
				t.Errorf("confirms = %d, want %d", tt.surface.confirms, tt.wantConfirms)
			}
			if tt.surface.reviews != tt.wantReviews {
				t.Errorf("reviews = %d, want %d", tt.surface.reviews, tt.wantReviews)
			}
			marked, err := tr.HasPromptedForCurrentVersion(ctx)
			if err != nil {
				t.Fatalf("HasPromptedForCurrentVersion: %v", err)
			}
			if marked != tt.wantMarked {
				t.Errorf("marked = %v, want %v", marked, tt.wantMarked)
			}
			if tt.surface.confirms > 0 && tt.surface.lastCopy != copyText {
				t.Errorf("surface got copy %+v", tt.surface.lastCopy)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	tr, _, rel := newTestTracker(3, "1.0")

	s, err := tr.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if s.State != StateFresh || s.Count != 0 || s.CheckpointCount != 3 {
		t.Errorf("fresh status: %+v", s)
	}

	if _, err := tr.OnAppLaunch(ctx, "1.0"); err != nil {
		t.Fatalf("OnAppLaunch: %v", err)
	}
	mustShouldPrompt(t, tr)
	s, _ = tr.Status(ctx)
	if s.State != StateCounting || s.Count != 1 || s.AppVersionForStorage != "1.0" {
		t.Errorf("counting status: %+v", s)
	}

	if err := tr.MarkPrompted(ctx); err != nil {
		t.Fatalf("MarkPrompted: %v", err)
	}
	s, _ = tr.Status(ctx)
	if s.State != StatePrompted || s.LastPromptedVersion != "1.0" {
		t.Errorf("prompted status: %+v", s)
	}
	if s.Count != 1 {
		t.Errorf("Status recorded an engagement: count %d", s.Count)
	}

	rel.version = "2.0"
	if _, err := tr.OnAppLaunch(ctx, "2.0"); err != nil {
		t.Fatalf("OnAppLaunch: %v", err)
	}
	s, _ = tr.Status(ctx)
	if s.State != StateCounting || s.Count != 0 {
		t.Errorf("after upgrade: %+v", s)
	}
}

func TestStateMarshalText(t *testing.T) {
	b, err := StatePrompted.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(b) != "prompted" {
		t.Errorf("got %q", b)
	}
}
