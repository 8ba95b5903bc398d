package review

import (
	"context"
	"fmt"
)

// State is the tracker's position in its lifecycle for the current release.
type State int

const (
	StateFresh State = iota
	StateCounting
	StatePrompted
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateCounting:
		return "counting"
	case StatePrompted:
		return "prompted"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is a read-only snapshot of the persisted tracker state.
type Status struct {
	State                State  `json:"state"`
	Count                int    `json:"count"`
	CheckpointCount      int    `json:"checkpointCount"`
	CurrentVersion       string `json:"currentVersion"`
	LastPromptedVersion  string `json:"lastPromptedVersion"`
	AppVersionForStorage string `json:"appVersionForStorage"`
}

// Status reads the snapshot without recording an engagement.
func (t *Tracker) Status(ctx context.Context) (Status, error) {
	count, err := t.kv.GetInt(ctx, KeyEngagementCounter)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read engagement counter: %w", err)
	}
	last, err := t.kv.GetString(ctx, KeyLastVersionPrompted)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read last prompted version: %w", err)
	}
	stored, err := t.kv.GetString(ctx, KeyAppVersionForStorage)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read stored app version: %w", err)
	}

	s := Status{
		Count:                count,
		CheckpointCount:      t.checkpointCount,
		CurrentVersion:       t.versions.CurrentVersion(),
		LastPromptedVersion:  last,
		AppVersionForStorage: stored,
	}
	switch {
	case last == s.CurrentVersion:
		s.State = StatePrompted
	case stored == "" && count == 0:
		s.State = StateFresh
	default:
		s.State = StateCounting
	}
	return s, nil
}
