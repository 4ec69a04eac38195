package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/chlog/internal/testutil"
)

// diskRepo adds command options to a testutil.GitRepo.
type diskRepo struct {
	*testutil.GitRepo
}

func newDiskRepo(t *testing.T) *diskRepo {
	t.Helper()
	return &diskRepo{GitRepo: testutil.NewGitRepo(t)}
}

// globals points the commands at r and away from the real user config.
func (r *diskRepo) globals(t *testing.T) globalOptions {
	t.Helper()
	return globalOptions{RepoPath: r.Dir, userConfig: filepath.Join(t.TempDir(), "config.yml")}
}

// releasedRepo has one release and one unreleased feature.
func releasedRepo(t *testing.T) *diskRepo {
	t.Helper()

	r := newDiskRepo(t)
	r.AddRemote(t, "origin", "git@github.com:acme/widget.git")
	r.Commit(t, "feat: add parser")
	r.Tag(t, "v1.0.0", r.Commit(t, "fix: fix crash"))
	r.Commit(t, "feat: add export")
	return r
}

const releasedChangelog = "# Changelog\n" +
	"\n## Unreleased\n" +
	"\n### Added\n* Add export\n" +
	"\n## [v1.0.0](https://github.com/acme/widget/releases/tag/v1.0.0) - 2024-05-01\n" +
	"\n### Added\n* Add parser\n" +
	"\n### Fixed\n* Fix crash\n"

// testCmd returns a command whose output is captured.
func testCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}
