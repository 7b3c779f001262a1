package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gflmod/internal/config"
	"gflmod/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	projectDir string
	checkOnly  bool

	// Resolved per run in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gflmod",
	Short: "Content pipeline for the GFL Door Kickers 2 mod",
	Long: `gflmod generates and validates the mod's content files.

It builds the deploy screens from the unit roster, derives the GIRL faction
from the base definitions, checks voice line manifests against the sound IDs
the game requires, and runs the radio effect over new voice recordings.

Paths are resolved against the project root; see "gflmod config init".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		logger, err = logging.Build(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logging.Initialize(logger, cfg.Logging)
		logging.Get(logging.CategoryBoot).Debug("project=%s mod=%s", cfg.Project, cfg.ModDir())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logging.Sync()
		}
	},
}

// loadConfig reads the config file (defaults when absent) and applies flag overrides.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		root := projectDir
		if root == "" {
			root = "."
		}
		path = filepath.Join(root, config.DefaultConfigFile)
	}

	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if projectDir != "" {
		c.Project = projectDir
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <project>/gflmod.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "Project root (default: current directory)")

	// Voice subcommands
	voiceCmd.AddCommand(voiceValidateCmd)
	voiceCmd.AddCommand(voiceProcessCmd)

	// Config subcommands
	configCmd.AddCommand(configInitCmd)

	// Add commands to root
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(girlsCmd)
	rootCmd.AddCommand(voiceCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
