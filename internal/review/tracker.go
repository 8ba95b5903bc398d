// Package review decides when a host application should ask the user to
// rate it, and remembers which release was last prompted.
//
// Every call to ShouldPrompt counts as an engagement. The tracker becomes
// eligible exactly when the engagement counter equals the checkpoint and
// the current release has not been prompted yet. A host that skips the
// checkpoint value waits for the next release to reset the counter.
//
// A checkpoint of zero or less disables prompting permanently: the counter
// starts at one and only grows, so it never matches.
package review

import (
	"context"
	"fmt"

	"github.com/maloquacious/solicitreview/internal/logger"
	"github.com/maloquacious/solicitreview/internal/store"
	"github.com/maloquacious/solicitreview/internal/version"
)

// Persisted keys.
const (
	KeyEngagementCounter    = "engagement_counter"
	KeyLastVersionPrompted  = "last_version_prompted"
	KeyAppVersionForStorage = "app_version_for_storage"
)

// Tracker holds no state of its own beyond its collaborators and assumes
// sequential use by its host.
type Tracker struct {
	checkpointCount int
	kv              store.KV
	versions        version.Provider
	log             logger.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger logs decisions to l.
func WithLogger(l logger.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// New returns a Tracker that becomes eligible at checkpointCount engagements.
func New(checkpointCount int, kv store.KV, versions version.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		checkpointCount: checkpointCount,
		kv:              kv,
		versions:        versions,
		log:             logger.Discard,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CurrentVersion returns the release identifier decisions are made against.
func (t *Tracker) CurrentVersion() string {
	return t.versions.CurrentVersion()
}

// CheckpointCount returns the engagement count at which prompting is allowed.
func (t *Tracker) CheckpointCount() int {
	return t.checkpointCount
}

// Disabled reports whether the checkpoint can never be reached.
func (t *Tracker) Disabled() bool {
	return t.checkpointCount <= 0
}

// RecordEngagement increments the persisted counter and returns the new value.
func (t *Tracker) RecordEngagement(ctx context.Context) (int, error) {
	count, err := t.kv.GetInt(ctx, KeyEngagementCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to read engagement counter: %w", err)
	}
	count++
	if err := t.kv.SetInt(ctx, KeyEngagementCounter, count); err != nil {
		return 0, fmt.Errorf("failed to write engagement counter: %w", err)
	}
	return count, nil
}

// ShouldPrompt records an engagement and reports whether the host should
// show the review prompt now.
func (t *Tracker) ShouldPrompt(ctx context.Context) (bool, error) {
	count, err := t.RecordEngagement(ctx)
	if err != nil {
		return false, err
	}
	currentVersion := t.versions.CurrentVersion()
	lastVersionPrompted, err := t.kv.GetString(ctx, KeyLastVersionPrompted)
	if err != nil {
		return false, fmt.Errorf("failed to read last prompted version: %w", err)
	}

	t.log.Debug("count:%d currentVersion:%s lastVersionPromptedForReview:%s", count, currentVersion, lastVersionPrompted)

	return count == t.checkpointCount && currentVersion != lastVersionPrompted, nil
}

// HasPromptedForCurrentVersion reports whether the current release was
// already prompted. It does not count as an engagement.
func (t *Tracker) HasPromptedForCurrentVersion(ctx context.Context) (bool, error) {
	last, err := t.kv.GetString(ctx, KeyLastVersionPrompted)
	if err != nil {
		return false, fmt.Errorf("failed to read last prompted version: %w", err)
	}
	return last == t.versions.CurrentVersion(), nil
}

// MarkPrompted records the current release as prompted. Call it only after
// the native review surface was actually invoked.
func (t *Tracker) MarkPrompted(ctx context.Context) error {
	currentVersion := t.versions.CurrentVersion()
	if err := t.kv.SetString(ctx, KeyLastVersionPrompted, currentVersion); err != nil {
		return fmt.Errorf("failed to write last prompted version: %w", err)
	}
	t.log.Info("marked version %q as prompted for review", currentVersion)
	return nil
}

// OnAppLaunch resets the counter when currentVersion differs from the
// version seen at the previous launch. It reports whether a reset happened.
func (t *Tracker) OnAppLaunch(ctx context.Context, currentVersion string) (bool, error) {
	stored, err := t.kv.GetString(ctx, KeyAppVersionForStorage)
	if err != nil {
		return false, fmt.Errorf("failed to read stored app version: %w", err)
	}
	if stored == currentVersion {
		t.log.Debug("appVersionForStorage %q is up to date", stored)
		return false, nil
	}

	t.log.Info("reset engagementCounter to 0")
	if err := t.kv.SetInt(ctx, KeyEngagementCounter, 0); err != nil {
		return false, fmt.Errorf("failed to reset engagement counter: %w", err)
	}
	t.log.Info("reset appVersionForStorage from %q to %q", stored, currentVersion)
	if err := t.kv.SetString(ctx, KeyAppVersionForStorage, currentVersion); err != nil {
		return false, fmt.Errorf("failed to write stored app version: %w", err)
	}
	return true, nil
}

// Launch runs OnAppLaunch with the version the tracker compares against.
func (t *Tracker) Launch(ctx context.Context) (bool, error) {
	return t.OnAppLaunch(ctx, t.CurrentVersion())
}

// Reset zeroes the engagement counter for manual testing of the prompt flow.
// The last prompted version is kept.
func (t *Tracker) Reset(ctx context.Context) error {
	if err := t.kv.SetInt(ctx, KeyEngagementCounter, 0); err != nil {
		return fmt.Errorf("failed to reset engagement counter: %w", err)
	}
	t.log.Info("reset engagementCounter to 0")
	return nil
}
