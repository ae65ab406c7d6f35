package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSameFile is returned when the copy source and destination are the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// CopyResult describes a completed copy.
type CopyResult struct {
	// Path is the final destination path.
	Path string

	// Bytes is the number of bytes written.
	Bytes int64

	// SHA256 is the hex digest of the copied content.
	SHA256 string
}

// HashFile computes the SHA-256 hash of a file's contents.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// ResolveDestination returns the file path a copy of src to dst would write.
// When dst is an existing directory the source base name is appended.
func ResolveDestination(src, dst string) string {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		return filepath.Join(dst, filepath.Base(src))
	}
	return dst
}

// CopyFile copies src to dst byte for byte, preserving permission bits and
// modification time. An existing dst is replaced.
//
// Content is staged in a temporary file next to the destination and renamed
// into place, so dst is never left partially written.
func CopyFile(src, dst string) (CopyResult, error) {
	in, err := os.Open(src)
	if err != nil {
		return CopyResult{}, fmt.Errorf("failed to open source %q; %w", src, err)
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return CopyResult{}, fmt.Errorf("failed to stat source %q; %w", src, err)
	}
	if !srcInfo.Mode().IsRegular() {
		return CopyResult{}, fmt.Errorf("source %q is not a regular file", src)
	}

	dst = ResolveDestination(src, dst)
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return CopyResult{}, fmt.Errorf("cannot copy %q to %q; %w", src, dst, ErrSameFile)
	}

	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return CopyResult{}, fmt.Errorf("failed to create temporary file in %q; %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	hash := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, hash), in)
	if err != nil {
		return CopyResult{}, fmt.Errorf("failed to copy %q to %q; %w", src, dst, err)
	}
	if err := tmp.Close(); err != nil {
		return CopyResult{}, fmt.Errorf("failed to flush %q; %w", tmpPath, err)
	}

	if err := os.Chmod(tmpPath, srcInfo.Mode().Perm()); err != nil {
		return CopyResult{}, fmt.Errorf("failed to set permissions on %q; %w", dst, err)
	}
	mtime := srcInfo.ModTime()
	if err := os.Chtimes(tmpPath, mtime, mtime); err != nil {
		return CopyResult{}, fmt.Errorf("failed to set times on %q; %w", dst, err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return CopyResult{}, fmt.Errorf("failed to move copy into place at %q; %w", dst, err)
	}
	committed = true

	return CopyResult{
		Path:   dst,
		Bytes:  n,
		SHA256: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}
