package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/depstage-labs/depstage/internal/config"
)

var statusRoot string

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Inspect the staged link farm and report broken links",
	Long: `Status lists every entry in the target's modules directory (and those of
workspace members it depends on): healthy links, broken links whose target
has gone away, and foreign entries staging does not manage. The exit code
is non-zero when broken links exist.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := targetDirFromArgs(args)
		l, ws, err := buildLinker(target, statusRoot, 0)
		if err != nil {
			return err
		}

		members, err := ws.SelectMembers()
		if err != nil {
			return err
		}
		dirs := append([]string{ws.TargetDir}, members...)
		modulesDir := config.Get(config.KeyModulesDir)

		out := cmd.OutOrStdout()
		broken := 0
		for _, dir := range dirs {
			modules := filepath.Join(dir, modulesDir)
			infos, err := l.Inventory(modules)
			if err != nil {
				return fmt.Errorf("inspecting %s: %w", modules, err)
			}

			fmt.Fprintf(out, "%s\n", modules)
			if len(infos) == 0 {
				fmt.Fprintln(out, "  (nothing staged)")
				continue
			}
			for _, info := range infos {
				switch {
				case info.Foreign:
					fmt.Fprintf(out, "  [INFO] %s (not managed)\n", info.Name)
				case info.Broken:
					broken++
					fmt.Fprintf(out, "  [FAIL] %s -> %s (target missing)\n", info.Name, info.Target)
				default:
					fmt.Fprintf(out, "  [ OK ] %s -> %s\n", info.Name, info.Target)
				}
			}
		}

		if broken > 0 {
			return fmt.Errorf("%d broken link(s)", broken)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusRoot, "root", "", "Workspace root (default: discover upward)")
	rootCmd.AddCommand(statusCmd)
}
