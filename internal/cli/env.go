package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/panakit/internal/logger"
	"github.com/glorpus-work/panakit/pkg/dirsize"
)

// NewEnvCmd creates the env command with subcommands.
func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect and clean pooled tool environments",
		Long:  "Inspect the on-disk footprint of pooled tool environments and sweep leftovers",
	}

	cmd.AddCommand(
		newEnvInfoCmd(),
		newEnvCleanCmd(),
	)

	return cmd
}

func newEnvInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show tool environment directories and their sizes",
		RunE:  runEnvInfo,
	}
}

func newEnvCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all tool environment directories",
		Long: `Remove every environment cache directory under the configured temp root.
Safe to run between invocations; a fresh environment is created on the next
analysis. Do not run while an analysis is in flight.`,
		RunE: runEnvClean,
	}
}

func runEnvInfo(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tempRoot := cfg.Settings.TempRoot
	entries, err := os.ReadDir(tempRoot)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("Temp root %s does not exist; no environments on disk\n", tempRoot)
			return nil
		}
		return err
	}

	scanner := dirsize.NewScanner()
	fmt.Printf("Temp root: %s\n", tempRoot)
	var total int64
	var count int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(tempRoot, entry.Name())
		size := scanner.Scan(dir)
		total += size
		count++
		fmt.Printf("  %-24s %s\n", entry.Name(), dirsize.FormatBytes(size))
	}
	fmt.Printf("%d environment(s), %s total (limit %s per environment)\n",
		count, dirsize.FormatBytes(total), dirsize.FormatBytes(cfg.Settings.MaxCacheBytes))
	return nil
}

func runEnvClean(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tempRoot := cfg.Settings.TempRoot
	entries, err := os.ReadDir(tempRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var removed int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(tempRoot, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			logger.Warnf("Failed to remove %s: %v", dir, err)
			continue
		}
		removed++
	}
	fmt.Printf("Removed %d environment director%s under %s\n", removed, pluralY(removed), tempRoot)
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
