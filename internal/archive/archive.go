package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"phirapack/internal/packerr"
	"phirapack/internal/textutil"
)

// Suffix ends every archive file name.
const Suffix = "_ResourcePack.zip"

// Name returns the archive file name for a pack.
func Name(packName string) string {
	return textutil.Underscore(packName) + Suffix
}

// Create zips every regular file below stagingDir into destDir and returns the
// absolute archive path. Members are named relative to stagingDir, sorted, and
// Deflate compressed. An existing archive with the same name is replaced.
func Create(stagingDir, destDir, packName string) (archivePath string, err error) {
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "resolve destination", destDir, err)
	}
	archivePath = filepath.Join(absDest, Name(packName))

	members, err := collectMembers(stagingDir)
	if err != nil {
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "scan staging", stagingDir, err)
	}

	// The lock file is never removed: unlinking it would let a later writer
	// lock a fresh inode while an earlier one still holds the old file.
	lock := flock.New(LockPath(archivePath))
	if err := lock.Lock(); err != nil {
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "lock", archivePath, err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(absDest, "."+filepath.Base(archivePath)+".*.partial")
	if err != nil {
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "create", archivePath, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := writeMembers(tmp, stagingDir, members); err != nil {
		_ = tmp.Close()
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "write", archivePath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "close", archivePath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "chmod", archivePath, err)
	}
	if err := os.Rename(tmpPath, archivePath); err != nil {
		return "", packerr.Wrap(packerr.ErrArchive, "archive", "rename", archivePath, err)
	}
	return archivePath, nil
}

// collectMembers returns slash separated relative paths of regular files.
func collectMembers(root string) ([]string, error) {
	var members []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		members = append(members, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(members)
	return members, nil
}

func writeMembers(w io.Writer, root string, members []string) (err error) {
	zw := zip.NewWriter(w)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, member := range members {
		if err := addMember(zw, filepath.Join(root, filepath.FromSlash(member)), member); err != nil {
			return err
		}
	}
	return nil
}

func addMember(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("header for %s: %w", name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("compress %s: %w", name, err)
	}
	return nil
}

// LockPath returns the hidden lock file guarding writes to archivePath.
func LockPath(archivePath string) string {
	return filepath.Join(filepath.Dir(archivePath), "."+filepath.Base(archivePath)+".lock")
}

// IsArchiveName reports whether name looks like a pack archive.
func IsArchiveName(name string) bool {
	return strings.HasSuffix(name, Suffix)
}
