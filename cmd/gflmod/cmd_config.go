package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gflmod/internal/config"

	"github.com/spf13/cobra"
)

var forceConfig bool

// configCmd manages gflmod.yaml
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gflmod configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceConfig, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = filepath.Join(cfg.Project, config.DefaultConfigFile)
	}
	if _, err := os.Stat(path); err == nil && !forceConfig {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	c := config.DefaultConfig()
	if err := c.Save(path); err != nil {
		return err
	}
	success(cmd.OutOrStdout(), "Wrote %s", path)
	return nil
}
