package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/panakit/pkg/config"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and initialize panakit configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigInitCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(*cobra.Command, []string) error {
			return runConfigInit(force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	return cmd
}

func runConfigShow(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := cfg.ToYAML()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func runConfigInit(force bool) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if err := cfg.SaveConfig(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	fmt.Println("Set channels.stable.dart_root and channels.preview.dart_root before analyzing.")
	return nil
}
