package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
)

var (
	showLastFlag    int
	showPlainFlag   bool
	showCompactFlag bool
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Preview changelog releases in the terminal",
	Long: `Preview the changelog generated from the current history without
writing any file.

By default, shows the 3 most recent releases. Use a version argument to see a
single release, or --last to control how many are shown.`,
	Example: `  chlog show              # Show the 3 most recent releases
  chlog show v1.2.0       # Show release v1.2.0
  chlog show 1.2.0        # Same (v prefix optional)
  chlog show unreleased   # Show unreleased changes
  chlog show --last 0     # Show every release
  chlog show --plain      # Plain output (no colors/icons)
  chlog show --compact    # One line per entry`,
	Args: validArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, currentGlobals(), args, showOptions{
			Last:    showLastFlag,
			Plain:   showPlainFlag,
			Compact: showCompactFlag,
		})
	},
}

func init() {
	showCmd.Flags().IntVar(&showLastFlag, "last", 3, "Number of releases to show (0 for all)")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	showCmd.Flags().BoolVar(&showCompactFlag, "compact", false, "One summary line per entry")
	rootCmd.AddCommand(showCmd)
}

type showOptions struct {
	Last    int
	Plain   bool
	Compact bool
}

func runShow(cmd *cobra.Command, g globalOptions, args []string, opts showOptions) error {
	s, err := openSession(cmd, g)
	if err != nil {
		return err
	}

	doc, err := s.generate(commandContext(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	format := changelog.FormatOptions{Plain: opts.Plain}
	write := changelog.FormatTerminal
	if opts.Compact {
		write = changelog.FormatCompact
	}

	if len(args) == 1 {
		return showRelease(cmd, doc, args[0], format, write)
	}
	return showLastReleases(cmd, doc, opts.Last, format, write)
}

// documentWriter renders a document for the terminal.
type documentWriter func(*changelog.Document, io.Writer, changelog.FormatOptions) error

func showRelease(cmd *cobra.Command, doc *changelog.Document, version string, format changelog.FormatOptions, write documentWriter) error {
	r, err := doc.Release(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if errors.As(err, &notFound) {
			return clierrors.VersionNotFound(version, doc.ListVersions())
		}
		return fmt.Errorf("getting release: %w", err)
	}
	return write(&changelog.Document{Releases: []changelog.Release{*r}}, cmd.OutOrStdout(), format)
}

func showLastReleases(cmd *cobra.Command, doc *changelog.Document, n int, format changelog.FormatOptions, write documentWriter) error {
	total := len(doc.Releases)
	if total == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	shown := doc
	if n > 0 && n < total {
		shown = &changelog.Document{Releases: doc.Releases[:n]}
	}

	if err := write(shown, cmd.OutOrStdout(), format); err != nil {
		return fmt.Errorf("formatting releases: %w", err)
	}

	if len(shown.Releases) < total {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d releases shown. Use --last 0 to see all)\n",
			len(shown.Releases), total)
	}
	return nil
}
