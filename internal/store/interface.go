package store

import "context"

// StoreState represents the initialization state of the datastore.
type StoreState int

const (
	StateMissing         StoreState = iota // File doesn't exist
	StateUninitialized                     // File exists but no schema
	StateVersionMismatch                   // Schema exists but wrong version
	StateReady                             // Initialized and correct version
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateVersionMismatch:
		return "version_mismatch"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// KV is the key-value contract the eligibility tracker persists through.
// Missing keys read as 0 or "". Implementations must be safe for concurrent
// use and must make a write visible to every later read.
type KV interface {
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int) error
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key string, value string) error
}

// Store defines the durable datastore contract.
type Store interface {
	KV

	// Open opens the datastore connection
	Open() error

	// Close closes the datastore connection
	Close() error

	// InitSchema creates the schema and records version in schema_migrations
	InitSchema(version string) error

	// CheckState returns the current state of the datastore
	CheckState() (StoreState, error)

	// GetSchemaVersion returns the current schema version from the database
	GetSchemaVersion() (string, error)
}
