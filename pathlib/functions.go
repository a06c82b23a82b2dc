package pathlib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func Abs(path string) (string, error) {
	fullpath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(fullpath), nil
}

func Exists(pathname string) bool {
	_, err := os.Stat(pathname)
	return !os.IsNotExist(err)
}

func IsFile(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && stat.Mode().IsRegular()
}

func IsDir(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && stat.IsDir()
}

// Size returns the byte size of a regular file and a flag telling whether
// the file was there at all.
func Size(pathname string) (int64, bool) {
	stat, err := os.Stat(pathname)
	if err != nil {
		return 0, false
	}
	return stat.Size(), true
}

func TempDir() string {
	return os.TempDir()
}

func Create(filename string) (*os.File, error) {
	err := EnsureDirectoryExists(filepath.Dir(filename))
	if err != nil {
		return nil, err
	}
	return os.Create(filename)
}

func WriteFile(filename string, blob []byte, mode os.FileMode) error {
	err := EnsureDirectoryExists(filepath.Dir(filename))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, blob, mode)
}

func AppendFile(filename string, blob []byte) error {
	err := EnsureDirectoryExists(filepath.Dir(filename))
	if err != nil {
		return err
	}
	handle, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer handle.Close()
	_, err = handle.Write(blob)
	if err != nil {
		return err
	}
	return handle.Sync()
}

func EnsureDirectoryExists(directory string) error {
	if IsDir(directory) {
		return nil
	}
	return os.MkdirAll(directory, 0o750)
}

// EnsureDirectory makes sure the directory exists and returns its
// absolute form.
func EnsureDirectory(directory string) (string, error) {
	fullpath, err := Abs(directory)
	if err != nil {
		return "", err
	}
	err = EnsureDirectoryExists(fullpath)
	if err != nil {
		return "", err
	}
	return fullpath, nil
}

// IsWritableDirectory probes writability the honest way, with an actual
// temporary file, since permission bits lie on some filesystems.
func IsWritableDirectory(directory string) bool {
	if !IsDir(directory) {
		return false
	}
	probe, err := os.CreateTemp(directory, "probe*.tmp")
	if err != nil {
		return false
	}
	defer os.Remove(probe.Name())
	probe.Close()
	return true
}

func CopyFile(source, target string, overwrite bool) error {
	if !overwrite && Exists(target) {
		return fmt.Errorf("file %q already exists, and no overwrite requested", target)
	}
	reader, err := os.Open(source)
	if err != nil {
		return err
	}
	defer reader.Close()
	stat, err := reader.Stat()
	if err != nil {
		return err
	}
	err = EnsureDirectoryExists(filepath.Dir(target))
	if err != nil {
		return err
	}
	writer, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, stat.Mode())
	if err != nil {
		return err
	}
	defer writer.Close()
	_, err = io.Copy(writer, reader)
	if err != nil {
		return err
	}
	return writer.Sync()
}
