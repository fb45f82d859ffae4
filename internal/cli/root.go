package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/depstage-labs/depstage/internal/branding"
	"github.com/depstage-labs/depstage/internal/config"
	"github.com/depstage-labs/depstage/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbosity int
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` materializes a workspace package's declared dependency graph as a
farm of relative symlinks, so one member of a monorepo can be packaged or
deployed self-contained without copying files. Unstaging removes exactly
what staging created.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logging.Setup(verbosity, config.Get(config.KeyLogFile))
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (repeatable)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
