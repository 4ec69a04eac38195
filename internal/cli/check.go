package cli

import (
	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the changelog matches the git history",
	Long: `Compare the changelog on disk with a fresh render of the git history.

Returns exit code 0 if they match, or exit code 1 if the file is missing or
out of date. Intended for CI.`,
	Example: `  chlog check`,
	Args:    validArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, currentGlobals())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, g globalOptions) error {
	s, err := openSession(cmd, g)
	if err != nil {
		return err
	}

	doc, err := s.generate(commandContext(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	expected, err := render(doc, FormatMarkdown)
	if err != nil {
		return err
	}

	path := s.outputPath()
	fs, name, err := output.Target(path)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "resolving "+path)
	}
	same, err := output.Unchanged(fs, name, expected)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+path)
	}

	if !same {
		output.PrintFailure(cmd.OutOrStdout(), path+" is out of date")
		return NewExitError(ExitFailure, clierrors.ChangelogOutOfDate(path))
	}

	output.PrintSuccess(cmd.OutOrStdout(), path+" is up to date")
	return nil
}
