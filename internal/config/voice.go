package config

import "path/filepath"

// VoiceConfig configures voice manifest validation.
type VoiceConfig struct {
	// ManifestPattern selects manifest files inside the sounds dir.
	ManifestPattern string `yaml:"manifest_pattern"`

	// LogicalRoot is the path prefix used by the game ("data/").
	LogicalRoot string `yaml:"logical_root"`

	// PhysicalRoot replaces LogicalRoot when checking files on disk.
	// Empty means the mod directory; relative roots resolve against the project.
	PhysicalRoot string `yaml:"physical_root,omitempty"`

	// MaxPathLength is the longest logical path the engine accepts, in characters.
	MaxPathLength int `yaml:"max_path_length"`
}

// VoicePhysicalRoot returns the on-disk directory standing in for the logical root.
func (c *Config) VoicePhysicalRoot() string {
	switch {
	case c.Voice.PhysicalRoot == "":
		return c.ModDir()
	case filepath.IsAbs(c.Voice.PhysicalRoot):
		return c.Voice.PhysicalRoot
	}
	return filepath.Join(c.Project, c.Voice.PhysicalRoot)
}
