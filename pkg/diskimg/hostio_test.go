// file: pkg/diskimg/hostio_test.go

package diskimg

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func createTestFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "host.bin")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCopyIn(t *testing.T) {
	v := newTestVolume(t, 1024, 64, OccupancyBitmap)
	testData := []byte("10 PRINT \"HELLO\"\n20 GOTO 10\n")
	hostPath := createTestFile(t, testData)

	t.Run("basic import", func(t *testing.T) {
		if err := v.CopyIn(hostPath, "hello.bas"); err != nil {
			t.Fatalf("CopyIn failed: %v", err)
		}

		data, err := v.ReadFile("hello.bas")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(data, testData) {
			t.Errorf("content mismatch: got %q, want %q", data, testData)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := v.CopyIn(hostPath, "hello.bas")
		if !errors.Is(err, ErrDuplicateName) {
			t.Errorf("got %v, want ErrDuplicateName", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		err := v.CopyIn(filepath.Join(t.TempDir(), "missing"), "x")
		if !errors.Is(err, ErrSourceUnreadable) {
			t.Errorf("got %v, want ErrSourceUnreadable", err)
		}
		if v.FileCount() != 1 {
			t.Errorf("FileCount() = %d after failed import, want 1", v.FileCount())
		}
	})

	t.Run("directory source", func(t *testing.T) {
		err := v.CopyIn(t.TempDir(), "x")
		if !errors.Is(err, ErrSourceUnreadable) {
			t.Errorf("got %v, want ErrSourceUnreadable", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		if err := v.CopyIn(createTestFile(t, nil), "empty"); err != nil {
			t.Fatalf("CopyIn of empty file failed: %v", err)
		}
		entry, err := v.Stat("empty")
		if err != nil {
			t.Fatal(err)
		}
		if entry.Size != 0 {
			t.Errorf("size = %d, want 0", entry.Size)
		}
	})

	t.Run("too large", func(t *testing.T) {
		err := v.CopyIn(createTestFile(t, make([]byte, 2048)), "big")
		if !errors.Is(err, ErrInsufficientSpace) {
			t.Errorf("got %v, want ErrInsufficientSpace", err)
		}
	})
}

func TestCopyOut(t *testing.T) {
	v := newTestVolume(t, 256, 16, OccupancyBitmap)
	content := []byte{0x00, 0xF3, 0xAF, 0x32, 0x00}
	if err := v.AddFile("data.bin", content); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	t.Run("export", func(t *testing.T) {
		out := filepath.Join(dir, "out.bin")
		if err := v.CopyOut("data.bin", out); err != nil {
			t.Fatalf("CopyOut failed: %v", err)
		}
		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("exported %v, want %v", got, content)
		}
	})

	t.Run("truncates existing file", func(t *testing.T) {
		out := filepath.Join(dir, "existing.bin")
		if err := os.WriteFile(out, bytes.Repeat([]byte{'z'}, 100), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := v.CopyOut("data.bin", out); err != nil {
			t.Fatalf("CopyOut failed: %v", err)
		}
		info, err := os.Stat(out)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("size = %d, want %d", info.Size(), len(content))
		}
	})

	t.Run("missing source", func(t *testing.T) {
		out := filepath.Join(dir, "never.bin")
		err := v.CopyOut("nope", out)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Error("destination created for missing source")
		}
	})

	t.Run("unwritable destination", func(t *testing.T) {
		err := v.CopyOut("data.bin", filepath.Join(dir, "no", "such", "dir"))
		if !errors.Is(err, ErrDestUnwritable) {
			t.Errorf("got %v, want ErrDestUnwritable", err)
		}
	})
}
