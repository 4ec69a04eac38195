package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGenerate_WritesChangelog(t *testing.T) {
	t.Parallel()

	r := releasedRepo(t)
	cmd, stdout, stderr := testCmd()

	require.NoError(t, runGenerate(cmd, r.globals(t), generateOptions{}))

	assert.Equal(t, releasedChangelog, r.ReadFile(t, "CHANGELOG.md"))
	assert.Contains(t, stdout.String(), "Wrote ")
	assert.Contains(t, stdout.String(), "(2 releases, 3 entries)")
	assert.Contains(t, stderr.String(), "[OK] Read history: 2 releases, 3 entries\n")
}

func TestRunGenerate_IsIdempotent(t *testing.T) {
	t.Parallel()

	r := releasedRepo(t)
	g := r.globals(t)

	cmd, _, _ := testCmd()
	require.NoError(t, runGenerate(cmd, g, generateOptions{}))
	first := r.ReadFile(t, "CHANGELOG.md")

	cmd, _, _ = testCmd()
	require.NoError(t, runGenerate(cmd, g, generateOptions{}))
	assert.Equal(t, first, r.ReadFile(t, "CHANGELOG.md"))
}

func TestRunGenerate_Destinations(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts       func(dir string) generateOptions
		wantStdout string
		wantFile   string
	}{
		"stdout markdown": {
			opts:       func(string) generateOptions { return generateOptions{Stdout: true} },
			wantStdout: releasedChangelog,
		},
		"stdout yaml": {
			opts:       func(string) generateOptions { return generateOptions{Stdout: true, Format: "yaml"} },
			wantStdout: "releases:\n",
		},
		"explicit output": {
			opts: func(dir string) generateOptions {
				return generateOptions{Output: filepath.Join(dir, "HISTORY.md")}
			},
			wantFile: "HISTORY.md",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := releasedRepo(t)
			cmd, stdout, _ := testCmd()

			require.NoError(t, runGenerate(cmd, r.globals(t), tt.opts(r.Dir)))

			if tt.wantStdout != "" {
				assert.Contains(t, stdout.String(), tt.wantStdout)
				assert.NoFileExists(t, filepath.Join(r.Dir, "CHANGELOG.md"))
			}
			if tt.wantFile != "" {
				assert.Equal(t, releasedChangelog, r.ReadFile(t, tt.wantFile))
			}
		})
	}
}

func TestRunGenerate_ConfigFile(t *testing.T) {
	t.Parallel()

	r := newDiskRepo(t)
	r.Commit(t, "feat: add parser")
	r.WriteFile(t, ".chlog.yml", "output: docs.md\nremote_url: \"https://example.com/acme/widget\\n\"\n")
	r.Tag(t, "1.0", r.Commit(t, "fix: fix crash"))

	cmd, _, _ := testCmd()
	require.NoError(t, runGenerate(cmd, r.globals(t), generateOptions{}))

	out := r.ReadFile(t, "docs.md")
	assert.Contains(t, out, "## [1.0](https://example.com/acme/widget/releases/tag/1.0) - 2024-05-01\n")
	assert.NotContains(t, out, "widget\n/")
}

func TestRunGenerate_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup      func(t *testing.T) globalOptions
		opts       generateOptions
		wantCode   int
		wantMsg    string
		wantStatus string
	}{
		"stdout with output": {
			setup:    func(t *testing.T) globalOptions { return releasedRepo(t).globals(t) },
			opts:     generateOptions{Stdout: true, Output: "x.md"},
			wantCode: ExitInvalidArguments,
			wantMsg:  "invalid flag combination",
		},
		"unknown format": {
			setup:    func(t *testing.T) globalOptions { return releasedRepo(t).globals(t) },
			opts:     generateOptions{Format: "html"},
			wantCode: ExitInvalidArguments,
			wantMsg:  "invalid format: html",
		},
		"not a repository": {
			setup: func(t *testing.T) globalOptions {
				return globalOptions{RepoPath: t.TempDir(), userConfig: filepath.Join(t.TempDir(), "c.yml")}
			},
			wantCode: ExitHistoryUnavailable,
			wantMsg:  "not a git repository",
		},
		"missing remote": {
			setup: func(t *testing.T) globalOptions {
				r := newDiskRepo(t)
				r.Commit(t, "feat: add parser")
				return r.globals(t)
			},
			wantCode:   ExitHistoryUnavailable,
			wantMsg:    `cannot read remote "origin"`,
			wantStatus: "[FAIL] Reading history failed\n",
		},
		"invalid config": {
			setup: func(t *testing.T) globalOptions {
				r := releasedRepo(t)
				r.WriteFile(t, ".chlog.yml", "tag_pattern: \"v(\"\n")
				return r.globals(t)
			},
			wantCode: ExitFailure,
			wantMsg:  "invalid configuration",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := tt.setup(t)
			cmd, _, stderr := testCmd()

			err := runGenerate(cmd, g, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCodeFor(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, stderr.String(), tt.wantStatus)
			if g.RepoPath != "" {
				assert.NoFileExists(t, filepath.Join(g.RepoPath, "CHANGELOG.md"))
			}
		})
	}
}
