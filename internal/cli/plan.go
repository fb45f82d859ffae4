package cli

import (
	"github.com/spf13/cobra"

	"github.com/depstage-labs/depstage/internal/linker"
)

var planRoot string

var planCmd = &cobra.Command{
	Use:   "plan [dir]",
	Short: "Show what stage would do without touching the filesystem",
	Long: `Plan walks the same dependency graph stage would and prints one annotated
tree per linking pass: links to be created with their relative targets,
deduplicated repeats, nested packages left to their parents, and pruned
cycles. Nothing on disk changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := targetDirFromArgs(args)
		l, _, err := buildLinker(target, planRoot, 0)
		if err != nil {
			return err
		}

		plan, err := l.BuildPlan(cmd.Context())
		if err != nil {
			return err
		}
		linker.PrintPlan(cmd.OutOrStdout(), plan)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&planRoot, "root", "", "Workspace root (default: discover upward)")
	rootCmd.AddCommand(planCmd)
}
