package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

func CopyFile(src string, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if src == "" || dest == "" {
		return errors.New("copy file: missing src/dest")
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// WriteFileAtomic writes b to a uniquely named temp file next to path and
// renames it into place, so readers see either the old or the new contents.
func WriteFileAtomic(path string, b []byte, perm os.FileMode) error {
	return atomicWriteFile(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp", path, b, perm)
}

// WriteAtomic is WriteFileAtomic for callers that stream their output. If
// write fails the destination is left untouched.
func WriteAtomic(path string, perm os.FileMode, write func(w io.Writer) error) error {
	return writeAtomic(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp", path, perm, write)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	return writeAtomic(dir, tmpPattern, path, perm, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

func writeAtomic(dir, tmpPattern, path string, perm os.FileMode, write func(w io.Writer) error) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
