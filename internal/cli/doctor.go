package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/depstage-labs/depstage/internal/config"
	"github.com/depstage-labs/depstage/internal/manifest"
	"github.com/depstage-labs/depstage/internal/platform"
	"github.com/depstage-labs/depstage/internal/workspace"
)

var doctorRoot string

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Health check for the workspace and staging environment",
	Long: `Doctor verifies everything staging relies on: that a workspace root is
discoverable, that the root, target, and member manifests validate against
the package schema, that declared version specs parse as semver constraints,
that the shared modules directory exists, and that the filesystem can hold
symlinks at all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := targetDirFromArgs(args)
		manifestName := config.Get(config.KeyManifest)
		modulesDir := config.Get(config.KeyModulesDir)
		out := cmd.OutOrStdout()

		root := doctorRoot
		if root == "" {
			root = config.Get(config.KeyRoot)
		}

		ws, err := workspace.Load(root, target, manifestName)
		if err != nil {
			fmt.Fprintf(out, "[FAIL] Workspace: %v\n", err)
			return fmt.Errorf("doctor found fatal problems")
		}
		fmt.Fprintf(out, "[ OK ] Workspace root: %s\n", ws.Root)
		fmt.Fprintf(out, "[ OK ] Target package: %s\n", ws.TargetDir)

		failed := false

		// Manifests: root, target, and every declared member.
		dirs := map[string]string{
			"root":   ws.Root,
			"target": ws.TargetDir,
		}
		if rootManifest, err := ws.RootManifest(); err == nil {
			for _, member := range rootManifest.Workspaces {
				dirs["member "+member] = filepath.Join(ws.Root, filepath.FromSlash(member))
			}
		}
		labels := make([]string, 0, len(dirs))
		for label := range dirs {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			path := filepath.Join(dirs[label], manifestName)
			result, err := manifest.ValidateFile(path)
			switch {
			case err != nil:
				failed = true
				fmt.Fprintf(out, "[FAIL] Manifest (%s): %v\n", label, err)
			case !result.Valid:
				failed = true
				fmt.Fprintf(out, "[FAIL] Manifest (%s): %s\n", label, manifest.SummarizeIssues(result))
				for _, issue := range result.Issues {
					fmt.Fprintf(out, "       %s: %s\n", issue.Path, issue.Message)
				}
			default:
				fmt.Fprintf(out, "[ OK ] Manifest (%s) is valid\n", label)
			}
		}

		// Version specs: warn-only, staging ignores them beyond the key set.
		if tm, err := ws.TargetManifest(); err == nil {
			bad := 0
			for _, name := range tm.DependencyNames() {
				spec := tm.Dependencies[name]
				if spec == "*" || spec == "latest" || spec == "" {
					continue
				}
				if _, err := semver.NewConstraint(spec); err != nil {
					bad++
					fmt.Fprintf(out, "[WARN] Dependency %s: spec %q is not a semver constraint\n", name, spec)
				}
			}
			if bad == 0 {
				fmt.Fprintln(out, "[ OK ] Dependency version specs parse")
			}
		}

		// Shared install the resolver will search.
		sharedModules := filepath.Join(ws.Root, modulesDir)
		if info, err := os.Stat(sharedModules); err != nil || !info.IsDir() {
			fmt.Fprintf(out, "[WARN] No shared %s at the workspace root — has the installer run?\n", modulesDir)
		} else {
			fmt.Fprintf(out, "[ OK ] Shared %s present\n", modulesDir)
		}

		// Symlink support where links will actually be created.
		if platform.SymlinkSupported(ws.TargetDir) {
			fmt.Fprintln(out, "[ OK ] Filesystem supports symlinks")
		} else {
			failed = true
			fmt.Fprintln(out, "[FAIL] Cannot create symlinks here (Windows without developer mode?)")
		}

		if failed {
			return fmt.Errorf("doctor found fatal problems")
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorRoot, "root", "", "Workspace root (default: discover upward)")
	rootCmd.AddCommand(doctorCmd)
}
