package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	stageRoot string
	stageJobs int
)

var stageCmd = &cobra.Command{
	Use:   "stage [dir]",
	Short: "Stage a package's dependencies as relative symlinks",
	Long: `Stage resolves the dependency graph of the package in [dir] (default: the
current directory) and links every hoisted dependency under its modules
directory. Workspace members the package depends on get the same treatment,
so the whole deployable closure ends up reachable through relative links.

Staging is idempotent: re-running it converges on the same layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := targetDirFromArgs(args)
		l, ws, err := buildLinker(target, stageRoot, stageJobs)
		if err != nil {
			return err
		}

		if err := l.Setup(cmd.Context()); err != nil {
			return fmt.Errorf("staging %s: %w", ws.TargetDir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Staged %s\n", ws.TargetDir)
		return nil
	},
}

func init() {
	stageCmd.Flags().StringVar(&stageRoot, "root", "", "Workspace root (default: discover upward)")
	stageCmd.Flags().IntVar(&stageJobs, "jobs", 0, "Concurrent link operations per pass (0 = unbounded)")
	rootCmd.AddCommand(stageCmd)
}
