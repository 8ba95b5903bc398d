package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckExists(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		setup     func(string) error
		wantExist bool
		wantError bool
	}{
		{
			name: "database exists",
			setup: func(dir string) error {
				f, err := os.Create(filepath.Join(dir, DefaultDBFile))
				if err != nil {
					return err
				}
				return f.Close()
			},
			wantExist: true,
		},
		{
			name:      "database does not exist",
			setup:     func(dir string) error { return nil },
			wantExist: false,
		},
		{
			name: "database path is directory",
			setup: func(dir string) error {
				return os.Mkdir(filepath.Join(dir, DefaultDBFile), 0755)
			},
			wantExist: false,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDir := filepath.Join(tmpDir, tt.name)
			if err := os.Mkdir(testDir, 0755); err != nil {
				t.Fatalf("failed to create test dir: %v", err)
			}

			if err := tt.setup(testDir); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			exists, err := CheckExists(testDir)

			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if exists != tt.wantExist {
				t.Errorf("got exists=%v, want %v", exists, tt.wantExist)
			}
		})
	}
}

func TestGetDBPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", filepath.Join(".", DefaultDBFile)},
		{"/var/lib/app", filepath.Join("/var/lib/app", DefaultDBFile)},
	}
	for _, tt := range tests {
		if got := GetDBPath(tt.in); got != tt.want {
			t.Errorf("GetDBPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoreStateString(t *testing.T) {
	if got := StateReady.String(); got != "ready" {
		t.Errorf("got %q, want %q", got, "ready")
	}
	if got := StoreState(99).String(); got != "unknown" {
		t.Errorf("got %q, want %q", got, "unknown")
	}
}
