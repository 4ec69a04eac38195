package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existing []byte
		data     []byte
	}{
		"new file":       {data: []byte("# Changelog\n")},
		"replaces file":  {existing: []byte("old contents that are longer\n"), data: []byte("# Changelog\n")},
		"empty document": {existing: []byte("x"), data: []byte{}},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fs := memfs.New()
			if tt.existing != nil {
				require.NoError(t, util.WriteFile(fs, "CHANGELOG.md", tt.existing, 0o644))
			}

			require.NoError(t, WriteFileAtomic(fs, "CHANGELOG.md", tt.data, DefaultPerm))

			got, err := util.ReadFile(fs, "CHANGELOG.md")
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
			assertNoTempFiles(t, fs, ".")
		})
	}
}

func TestWriteFileAtomic_Subdirectory(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("docs", 0o755))
	require.NoError(t, WriteFileAtomic(fs, "docs/CHANGELOG.md", []byte("x\n"), DefaultPerm))

	got, err := util.ReadFile(fs, "docs/CHANGELOG.md")
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(got))
	assertNoTempFiles(t, fs, "docs")
}

// failingRenameFS fails every rename, simulating a write that cannot complete.
type failingRenameFS struct {
	billy.Filesystem
}

func (f failingRenameFS) Rename(from, to string) error {
	return errors.New("disk full")
}

func TestWriteFileAtomic_FailureLeavesOriginal(t *testing.T) {
	t.Parallel()

	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "CHANGELOG.md", []byte("original\n"), 0o644))

	err := WriteFileAtomic(failingRenameFS{mem}, "CHANGELOG.md", []byte("new\n"), DefaultPerm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	got, err := util.ReadFile(mem, "CHANGELOG.md")
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(got))
	assertNoTempFiles(t, mem, ".")
}

func TestWriteFileAtomic_OnDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	fs, name, err := Target(path)
	require.NoError(t, err)
	assert.Equal(t, "CHANGELOG.md", name)

	require.NoError(t, WriteFileAtomic(fs, name, []byte("# Changelog\n"), DefaultPerm))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPerm, info.Mode().Perm())
}

func TestWriteFileAtomic_OnDiskMode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existing os.FileMode // zero means no file yet
		want     os.FileMode
	}{
		"new file gets default": {want: DefaultPerm},
		"regenerate keeps 0644": {existing: 0o644, want: 0o644},
		"regenerate keeps 0640": {existing: 0o640, want: 0o640},
		"regenerate keeps 0600": {existing: 0o600, want: 0o600},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "CHANGELOG.md")
			if tt.existing != 0 {
				require.NoError(t, os.WriteFile(path, []byte("old\n"), tt.existing))
				require.NoError(t, os.Chmod(path, tt.existing))
			}

			fs, file, err := Target(path)
			require.NoError(t, err)
			require.NoError(t, WriteFileAtomic(fs, file, []byte("# Changelog\n"), DefaultPerm))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Mode().Perm())

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "# Changelog\n", string(got))
			assertNoTempFiles(t, fs, ".")
		})
	}
}

func TestTarget_SupportsChmod(t *testing.T) {
	t.Parallel()

	fs, _, err := Target(filepath.Join(t.TempDir(), "CHANGELOG.md"))
	require.NoError(t, err)
	_, ok := fs.(billy.Change)
	assert.True(t, ok)
}

func TestReadFileAndUnchanged(t *testing.T) {
	t.Parallel()

	fs := memfs.New()

	data, ok, err := ReadFile(fs, "missing.md")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	same, err := Unchanged(fs, "missing.md", []byte("x"))
	require.NoError(t, err)
	assert.False(t, same)

	require.NoError(t, util.WriteFile(fs, "CHANGELOG.md", []byte("x"), 0o644))
	same, err = Unchanged(fs, "CHANGELOG.md", []byte("x"))
	require.NoError(t, err)
	assert.True(t, same)

	same, err = Unchanged(fs, "CHANGELOG.md", []byte("y"))
	require.NoError(t, err)
	assert.False(t, same)
}

func assertNoTempFiles(t *testing.T, fs billy.Filesystem, dir string) {
	t.Helper()

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".chlog-", "temporary file left behind")
	}
}
