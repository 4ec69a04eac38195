package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/git"
	"github.com/ariel-frischer/chlog/internal/output"
	"github.com/ariel-frischer/chlog/internal/progress"
)

// Output formats accepted by --format.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
)

var validFormats = []string{FormatMarkdown, FormatYAML}

// session is the repository and configuration a command works on.
type session struct {
	root string
	cfg  *config.Configuration
	repo *git.Repository
}

// openRepository opens the repository selected by --repo and returns it with
// its worktree root.
func openRepository(g globalOptions) (*git.Repository, string, error) {
	path := g.RepoPath
	if path == "" {
		path = "."
	}

	repo, err := git.Open(path, "")
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			return nil, "", clierrors.NotRepository(path, err)
		}
		return nil, "", clierrors.HistoryUnavailable(err)
	}

	root := repo.Root()
	if root == "" {
		root = path
	}
	return repo, root, nil
}

// openSession opens the repository and loads its configuration.
func openSession(cmd *cobra.Command, g globalOptions) (*session, error) {
	repo, root, err := openRepository(g)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir:     root,
		ConfigPath:     g.ConfigFile,
		UserConfigPath: g.userConfig,
		WarningWriter:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}

	return &session{root: root, cfg: cfg, repo: repo.WithRemote(cfg.Remote)}, nil
}

// generate reads the history and builds the document. A spinner animates on
// status when it is a terminal, and one result line is printed either way.
func (s *session) generate(ctx context.Context, status io.Writer) (*changelog.Document, error) {
	pattern, err := s.cfg.TagRegexp()
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}

	spin := newSpinner(status)
	spin.Start("Reading history")
	doc, err := changelog.Generate(ctx, s.repo, changelog.Options{
		RemoteURL:          s.cfg.RemoteURL,
		TagPattern:         pattern,
		InitialReleaseNote: s.cfg.InitialReleaseNote,
	})
	if err != nil {
		spin.Fail("Reading history failed")
		return nil, historyError(err, s.repo.Remote())
	}
	spin.Success(fmt.Sprintf("Read history: %d releases, %d entries", len(doc.Releases), doc.EntryCount()))
	return doc, nil
}

// outputPath is the configured changelog location.
func (s *session) outputPath() string {
	return s.cfg.OutputPath(s.root)
}

func newSpinner(w io.Writer) *progress.Spinner {
	var caps progress.TerminalCapabilities
	if f, ok := w.(*os.File); ok {
		caps = progress.DetectTerminalCapabilities(f)
	}
	return progress.NewSpinner(w, caps)
}

// historyError converts a generation failure into a CLI error.
func historyError(err error, remote string) error {
	switch {
	case errors.Is(err, git.ErrRemoteNotFound):
		return clierrors.RemoteNotFound(remote, err)
	case errors.Is(err, changelog.ErrSourceUnavailable):
		return clierrors.HistoryUnavailable(err)
	default:
		return err
	}
}

// render serializes doc in the requested format.
func render(doc *changelog.Document, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatMarkdown, "md":
		err = changelog.RenderMarkdown(doc, &buf)
	case FormatYAML, "yml":
		err = changelog.RenderYAML(doc, &buf)
	default:
		return nil, clierrors.InvalidFormat(format, validFormats)
	}
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering changelog")
	}
	return buf.Bytes(), nil
}

// writeAtomic replaces path with data atomically.
func writeAtomic(path string, data []byte) error {
	fs, name, err := output.Target(path)
	if err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := output.WriteFileAtomic(fs, name, data, output.DefaultPerm); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	return nil
}
