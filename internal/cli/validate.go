package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depstage-labs/depstage/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate one manifest file against the package schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Valid {
			fmt.Fprintf(out, "[ OK ] %s is valid\n", path)
			return nil
		}

		fmt.Fprintf(out, "[FAIL] %s: %s\n", path, manifest.SummarizeIssues(result))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
		}
		return fmt.Errorf("validation failed")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
