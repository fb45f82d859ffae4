package cli

import (
	"fmt"

	"github.com/depstage-labs/depstage/internal/config"
	"github.com/depstage-labs/depstage/internal/linker"
	"github.com/depstage-labs/depstage/internal/workspace"
)

// targetDirFromArgs returns the target package directory: the single
// positional argument if given, the current directory otherwise.
func targetDirFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// buildLinker assembles the workspace context and linker from config plus
// the per-command flag overrides.
func buildLinker(target, rootFlag string, jobsFlag int) (*linker.Linker, *workspace.Context, error) {
	root := rootFlag
	if root == "" {
		root = config.Get(config.KeyRoot)
	}
	jobs := jobsFlag
	if jobs == 0 {
		jobs = config.GetInt(config.KeyJobs)
	}
	manifestName := config.Get(config.KeyManifest)
	modulesDir := config.Get(config.KeyModulesDir)

	ws, err := workspace.Load(root, target, manifestName)
	if err != nil {
		return nil, nil, fmt.Errorf("loading workspace: %w", err)
	}

	l := linker.New(ws, linker.Options{
		ModulesDir:   modulesDir,
		ManifestName: manifestName,
		Jobs:         jobs,
	})
	return l, ws, nil
}
