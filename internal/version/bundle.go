package version

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maloquacious/solicitreview/internal/logger"
)

// Bundle is the packaging metadata shipped alongside an application.
//
//	name: goobergine
//	display_name: Goobergine
//	release_version: 1.4.0
//	build_version: "212"
type Bundle struct {
	Name           string `yaml:"name"`
	DisplayName    string `yaml:"display_name"`
	ReleaseVersion string `yaml:"release_version"`
	BuildVersion   string `yaml:"build_version"`
}

// AppName returns the user-facing name, falling back to Name.
func (b *Bundle) AppName() string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	return b.Name
}

func (b *Bundle) CurrentVersion() string {
	return b.ReleaseVersion
}

// ParseBundle decodes bundle metadata. A bundle without any app name is
// rejected since prompts cannot be titled without one.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}
	b.Name = strings.TrimSpace(b.Name)
	b.DisplayName = strings.TrimSpace(b.DisplayName)
	b.ReleaseVersion = strings.TrimSpace(b.ReleaseVersion)
	b.BuildVersion = strings.TrimSpace(b.BuildVersion)
	if b.AppName() == "" {
		return nil, fmt.Errorf("bundle has no name or display_name")
	}
	return &b, nil
}

// LoadBundle reads and parses the bundle file at path.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return ParseBundle(data)
}

// File reads the release version from a bundle file on every call, so an
// in-place upgrade is observed without restarting the host.
type File struct {
	Path string
	Log  logger.Logger
}

func (f File) CurrentVersion() string {
	b, err := LoadBundle(f.Path)
	if err != nil {
		if f.Log != nil {
			f.Log.Warn("current version unavailable: %v", err)
		}
		return ""
	}
	return b.ReleaseVersion
}
