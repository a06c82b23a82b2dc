package pathlib_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/pathlib"
)

func TestBasicPredicates(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	home := t.TempDir()
	filename := filepath.Join(home, "deep", "nested", "probe.txt")

	wont_be.True(pathlib.Exists(filename))
	must_be.Nil(pathlib.WriteFile(filename, []byte("hello"), 0o644))
	must_be.True(pathlib.Exists(filename))
	must_be.True(pathlib.IsFile(filename))
	wont_be.True(pathlib.IsDir(filename))
	must_be.True(pathlib.IsDir(filepath.Dir(filename)))

	size, ok := pathlib.Size(filename)
	must_be.True(ok)
	must_be.Equal(int64(5), size)
}

func TestAppendFileGrowsContent(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	filename := filepath.Join(t.TempDir(), "grow.log")
	must_be.Nil(pathlib.AppendFile(filename, []byte("one\n")))
	must_be.Nil(pathlib.AppendFile(filename, []byte("two\n")))

	blob, err := os.ReadFile(filename)
	must_be.Nil(err)
	must_be.Equal("one\ntwo\n", string(blob))
}

func TestCopyFileHonorsOverwriteFlag(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	home := t.TempDir()
	source := filepath.Join(home, "source.txt")
	target := filepath.Join(home, "target.txt")
	must_be.Nil(pathlib.WriteFile(source, []byte("payload"), 0o644))

	must_be.Nil(pathlib.CopyFile(source, target, false))
	wont_be.Nil(pathlib.CopyFile(source, target, false))
	must_be.Nil(pathlib.CopyFile(source, target, true))

	blob, err := os.ReadFile(target)
	must_be.Nil(err)
	must_be.Equal("payload", string(blob))
}

func TestWritableDirectoryProbe(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	must_be.True(pathlib.IsWritableDirectory(t.TempDir()))
	wont_be.True(pathlib.IsWritableDirectory(filepath.Join(t.TempDir(), "missing")))
}
