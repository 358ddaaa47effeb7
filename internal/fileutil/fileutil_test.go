package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elise-bgn/DownloadsCleaner/internal/testutil"
)

func TestMoveFile(t *testing.T) {
	f := testutil.NewFixture(t)
	src := f.CreateFile("report.pdf", []byte("contents"))
	dst := f.Path("archive/report.pdf")

	if err := EnsureDir(f.Path("archive")); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile failed: %v", err)
	}

	f.AssertFileNotExists(src)
	f.AssertFileExists(dst)
	f.AssertContent(dst, []byte("contents"))
}

func TestMoveFileMissingSource(t *testing.T) {
	f := testutil.NewFixture(t)

	err := MoveFile(f.Path("nope.txt"), f.Path("still-nope.txt"))
	if err == nil {
		t.Fatal("expected error moving a missing file")
	}
}

func TestCopyFilePreservesModeAndTime(t *testing.T) {
	f := testutil.NewFixture(t)
	src := f.CreateFileWithMode("script.sh", []byte("#!/bin/sh\n"), 0755)

	oldTime := time.Now().Add(-testutil.Months(2)).Truncate(time.Second)
	if err := os.Chtimes(src, oldTime, oldTime); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	dst := f.Path("copy.sh")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat copy: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("copy mode = %o, want 0755", info.Mode().Perm())
	}
	if !info.ModTime().Equal(oldTime) {
		t.Errorf("copy mod time = %v, want %v", info.ModTime(), oldTime)
	}
	f.AssertContent(dst, []byte("#!/bin/sh\n"))
	f.AssertFileExists(src)
}

func TestCopyFileRefusesExistingDestination(t *testing.T) {
	f := testutil.NewFixture(t)
	src := f.CreateFile("a.txt", []byte("a"))
	dst := f.CreateFile("b.txt", []byte("b"))

	if err := CopyFile(src, dst); err == nil {
		t.Fatal("expected error copying onto an existing file")
	}
	f.AssertContent(dst, []byte("b"))
}

func TestCopyFileRefusesDirectory(t *testing.T) {
	f := testutil.NewFixture(t)
	dir := f.CreateDir("folder")

	if err := CopyFile(dir, f.Path("elsewhere")); err == nil {
		t.Fatal("expected error copying a directory")
	}
}

func TestEnsureDirIsIdempotent(t *testing.T) {
	f := testutil.NewFixture(t)
	dir := filepath.Join(f.RootDir, "Downloaded Images")

	for i := 0; i < 3; i++ {
		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir attempt %d failed: %v", i+1, err)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat created dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}
