// Package cli implements the chlog command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
)

var (
	cfgFile   string
	repoPath  string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "chlog",
	Short: "Generate CHANGELOG.md from conventional commits",
	Long: `chlog reads the git history of a repository, classifies conventional
commit subjects into Added, Changed and Fixed sections, groups them into
releases bounded by version tags and writes a Markdown changelog.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHLOG_*)
  2. Project config (.chlog.yml or .chlog.json in the repository root)
  3. User config (~/.config/chlog/config.yml)
  4. Built-in defaults`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureDebugLogging(cmd.ErrOrStderr(), debugFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .chlog.yml in the repository root)")
	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "C", "", "run as if chlog was started in this directory")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "print debug logs to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

// Execute runs the command tree, prints any error and returns the process
// exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		PrintError(rootCmd.ErrOrStderr(), err)
	}
	return ExitCodeFor(err)
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	ConfigFile string
	RepoPath   string

	// userConfig overrides the user config location; tests point it at an
	// empty directory.
	userConfig string
}

func currentGlobals() globalOptions {
	return globalOptions{ConfigFile: cfgFile, RepoPath: repoPath}
}

// validArgs turns cobra's positional argument errors into argument errors.
func validArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
		}
		return nil
	}
}

// configureDebugLogging routes the package debug hooks to a slog text handler
// on w, or silences them.
func configureDebugLogging(w io.Writer, enabled bool) {
	if !enabled {
		changelog.SetDebugLogger(nil)
		git.SetDebugLogger(nil)
		return
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	changelog.SetDebugLogger(debugf(logger.With("component", "changelog")))
	git.SetDebugLogger(debugf(logger.With("component", "git")))
}

func debugf(logger *slog.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}
}

// commandContext returns cmd's context, or a background context when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
