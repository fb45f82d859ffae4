package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	unstageRoot string
	unstageJobs int
)

var unstageCmd = &cobra.Command{
	Use:   "unstage [dir]",
	Short: "Remove the symlinks a previous stage created",
	Long: `Unstage removes every symlink under the package's modules directory (and
those of workspace members it depends on), then prunes directories the
removal left empty. Real files and installed packages are never touched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := targetDirFromArgs(args)
		l, ws, err := buildLinker(target, unstageRoot, unstageJobs)
		if err != nil {
			return err
		}

		if err := l.Teardown(cmd.Context()); err != nil {
			return fmt.Errorf("unstaging %s: %w", ws.TargetDir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unstaged %s\n", ws.TargetDir)
		return nil
	},
}

func init() {
	unstageCmd.Flags().StringVar(&unstageRoot, "root", "", "Workspace root (default: discover upward)")
	unstageCmd.Flags().IntVar(&unstageJobs, "jobs", 0, "Concurrent unlink operations (0 = unbounded)")
	rootCmd.AddCommand(unstageCmd)
}
