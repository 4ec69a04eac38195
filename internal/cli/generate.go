package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
)

var (
	generateOutput string
	generateStdout bool
	generateFormat string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Write the changelog from git history (gen)",
	Long: `Read the full commit history, classify conventional commits and write
the changelog.

The file is replaced atomically: if generation or writing fails, the existing
changelog is left untouched.`,
	Example: `  # Write CHANGELOG.md in the repository root
  chlog generate

  # Print to stdout instead
  chlog generate --stdout

  # Dump the document as YAML
  chlog generate --format yaml --output changelog.yaml`,
	Args: validArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, currentGlobals(), generateOptions{
			Output: generateOutput,
			Stdout: generateStdout,
			Format: generateFormat,
		})
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default: the configured output, CHANGELOG.md)")
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print to stdout instead of writing a file")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", FormatMarkdown, "output format: markdown or yaml")
	rootCmd.AddCommand(generateCmd)
}

type generateOptions struct {
	Output string
	Stdout bool
	Format string
}

func runGenerate(cmd *cobra.Command, g globalOptions, opts generateOptions) error {
	if opts.Stdout && opts.Output != "" {
		return clierrors.InvalidFlagCombination("--stdout and --output", "Choose a single destination")
	}
	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}

	s, err := openSession(cmd, g)
	if err != nil {
		return err
	}

	doc, err := s.generate(commandContext(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	data, err := render(doc, opts.Format)
	if err != nil {
		return err
	}

	if opts.Stdout {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}

	path := opts.Output
	if path == "" {
		path = s.outputPath()
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s (%d releases, %d entries)", path, len(doc.Releases), doc.EntryCount()))
	return nil
}
