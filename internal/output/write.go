// Package output writes generated documents to disk all-or-nothing and prints
// the status lines that report it.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// DefaultPerm is the mode of newly written changelog files.
const DefaultPerm os.FileMode = 0o644

// WriteFileAtomic writes data to a temporary file next to name and renames it
// into place. An existing file keeps its mode; a new one gets perm. On failure
// the temporary file is removed and name is left as it was.
func WriteFileAtomic(fs billy.Filesystem, name string, data []byte, perm os.FileMode) (err error) {
	dir := path.Dir(filepath.ToSlash(name))
	if info, statErr := fs.Stat(name); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := util.TempFile(fs, dir, ".chlog-")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if ch, ok := fs.(billy.Change); ok {
		if err = ch.Chmod(tmpName, perm); err != nil {
			return fmt.Errorf("setting mode on %s: %w", tmpName, err)
		}
	}

	if err = fs.Rename(tmpName, name); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// ReadFile returns the contents of name, or nil and false when it does not exist.
func ReadFile(fs billy.Filesystem, name string) ([]byte, bool, error) {
	data, err := util.ReadFile(fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, true, nil
}

// Unchanged reports whether name already holds exactly data.
func Unchanged(fs billy.Filesystem, name string, data []byte) (bool, error) {
	current, ok, err := ReadFile(fs, name)
	if err != nil || !ok {
		return false, err
	}
	return bytes.Equal(current, data), nil
}

// Target splits an output path into a filesystem rooted at its directory and
// the file name inside it. The filesystem supports billy.Change.
func Target(outputPath string) (billy.Filesystem, string, error) {
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, "", fmt.Errorf("resolving %s: %w", outputPath, err)
	}
	dir := filepath.Dir(abs)
	return diskFS{Filesystem: osfs.New(dir), dir: dir}, filepath.Base(abs), nil
}

// diskFS adds Chmod to an osfs rooted at dir; the chroot osfs returns does
// not implement billy.Change.
type diskFS struct {
	billy.Filesystem
	dir string
}

var _ billy.Change = diskFS{}

func (d diskFS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(d.abs(name), mode)
}

func (d diskFS) Lchown(name string, uid, gid int) error {
	return os.Lchown(d.abs(name), uid, gid)
}

func (d diskFS) Chown(name string, uid, gid int) error {
	return os.Chown(d.abs(name), uid, gid)
}

func (d diskFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(d.abs(name), atime, mtime)
}

// abs resolves name inside dir. Names are produced by this package, never by users.
func (d diskFS) abs(name string) string {
	return filepath.Join(d.dir, filepath.FromSlash(name))
}
