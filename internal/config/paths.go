package config

import "path/filepath"

// PathsConfig locates generator inputs and outputs. All entries except ModDir are
// relative to the mod directory.
type PathsConfig struct {
	ModDir             string `yaml:"mod_dir"`
	UnitFile           string `yaml:"unit_file"`
	UnitGirlOutput     string `yaml:"unit_girl_output"`
	EntitiesFile       string `yaml:"entities_file"`
	EntitiesGirlOutput string `yaml:"entities_girl_output"`
	DeployOutput       string `yaml:"deploy_output"`
	DeployGirlOutput   string `yaml:"deploy_girl_output"`
	SoundsDir          string `yaml:"sounds_dir"`
	VoiceDir           string `yaml:"voice_dir"`
}

// ModDir returns the mod directory inside the project.
func (c *Config) ModDir() string {
	return filepath.Join(c.Project, c.Paths.ModDir)
}

// modPath resolves a mod-relative path.
func (c *Config) modPath(rel string) string {
	return filepath.Join(c.ModDir(), filepath.FromSlash(rel))
}

// UnitFilePath returns the base unit definition file.
func (c *Config) UnitFilePath() string {
	return c.modPath(c.Paths.UnitFile)
}

// UnitGirlOutputPath returns where the derived GIRL unit is written.
func (c *Config) UnitGirlOutputPath() string {
	return c.modPath(c.Paths.UnitGirlOutput)
}

// EntitiesFilePath returns the base entity definition file.
func (c *Config) EntitiesFilePath() string {
	return c.modPath(c.Paths.EntitiesFile)
}

// EntitiesGirlOutputPath returns where the derived GIRL entities are written.
func (c *Config) EntitiesGirlOutputPath() string {
	return c.modPath(c.Paths.EntitiesGirlOutput)
}

// DeployOutputPath returns the base deploy screen output.
func (c *Config) DeployOutputPath() string {
	return c.modPath(c.Paths.DeployOutput)
}

// DeployGirlOutputPath returns the tabbed GIRL deploy screen output.
func (c *Config) DeployGirlOutputPath() string {
	return c.modPath(c.Paths.DeployGirlOutput)
}

// SoundsDirPath returns the directory holding voice line manifests.
func (c *Config) SoundsDirPath() string {
	return c.modPath(c.Paths.SoundsDir)
}

// VoiceDirPath returns the root of per-character voice folders.
func (c *Config) VoiceDirPath() string {
	return c.modPath(c.Paths.VoiceDir)
}
