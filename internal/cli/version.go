package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/chlog/internal/build"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/chlog"

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for chlog",
	Example: `  # Show version info
  chlog version

  # Plain output (for scripts)
  chlog version --plain`,
	Args: validArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), versionPlain)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

type versionField struct {
	label string
	value string
}

func versionFields() []versionField {
	return []versionField{
		{"Version", versionLabel()},
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
		{"Source", SourceURL},
	}
}

// versionLabel marks builds made without release ldflags.
func versionLabel() string {
	if build.IsDevBuild() {
		return build.Version + " (development build)"
	}
	return build.Version
}

// printVersion prints the build information, one field per line.
func printVersion(w io.Writer, plain bool) {
	if plain {
		fmt.Fprintf(w, "chlog %s\n", build.Version)
		fmt.Fprintf(w, "commit: %s\n", build.Commit)
		fmt.Fprintf(w, "built: %s\n", build.BuildDate)
		fmt.Fprintf(w, "go: %s\n", runtime.Version())
		fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s\n\n", cyan("chlog"))
	for _, f := range versionFields() {
		fmt.Fprintf(w, "  %s  %s\n", yellow(fmt.Sprintf("%-8s", f.label)), white(f.value))
	}
}
