package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/panakit/pkg/hooks"
)

// NewHooksCmd creates the hooks command with subcommands.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Inspect lifecycle hook scripts",
		Long: `Lifecycle hooks are tengo scripts in the configured hooks directory,
named after the point they run at (pre-analysis.tengo, post-analysis.tengo).`,
	}

	cmd.AddCommand(newHooksListCmd())

	return cmd
}

func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed hook scripts",
		RunE:  runHooksList,
	}
}

func runHooksList(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	found, err := hooks.List(cfg.Settings.HooksDir)
	if err != nil {
		return err
	}

	fmt.Printf("Hooks directory: %s\n", cfg.Settings.HooksDir)
	if len(found) == 0 {
		fmt.Println("No hook scripts installed")
		return nil
	}
	for _, hookType := range found {
		fmt.Printf("  %s%s\n", hookType, hooks.ScriptExtension)
	}
	return nil
}
