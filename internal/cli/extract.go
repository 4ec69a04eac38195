package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
)

var extractCmd = &cobra.Command{
	Use:   "extract <version>",
	Short: "Extract release notes for a specific version",
	Long: `Extract release notes for a specific version in markdown format.

This command outputs the sections of one release, without headings, in a
format suitable for GitHub release notes. The output is written to stdout.`,
	Example: `  chlog extract v1.2.0      # Notes for v1.2.0
  chlog extract 1.2.0       # Same (v prefix optional)
  chlog extract unreleased  # Notes for unreleased changes`,
	Args: validArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, currentGlobals(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, g globalOptions, version string) error {
	s, err := openSession(cmd, g)
	if err != nil {
		return err
	}

	doc, err := s.generate(commandContext(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	r, err := doc.Release(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if errors.As(err, &notFound) {
			return clierrors.VersionNotFound(version, doc.ListVersions())
		}
		return fmt.Errorf("getting release: %w", err)
	}

	return changelog.RenderReleaseNotes(r, cmd.OutOrStdout())
}
