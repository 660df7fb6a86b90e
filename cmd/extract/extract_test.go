// file: cmd/extract/extract_test.go

package extract

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ha1tch/vd/pkg/disk"
	"github.com/ha1tch/vd/pkg/diskimg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (string, *ExtractOptions) {
	t.Helper()
	opts := DefaultExtractOptions()
	opts.Config.LogWriter = io.Discard
	opts.Out = io.Discard

	diskPath := filepath.Join(t.TempDir(), "test.vd")
	d, err := disk.Create(diskPath, 256, 16, false, opts.Config)
	require.NoError(t, err)
	require.NoError(t, d.Update(func(v *diskimg.Volume) error {
		if err := v.AddFile("one.txt", []byte("first")); err != nil {
			return err
		}
		return v.AddFile("two.bin", []byte{0, 1, 2})
	}))
	return diskPath, opts
}

func TestExtract(t *testing.T) {
	diskPath, opts := setup(t)
	var out bytes.Buffer
	opts.Out = &out
	before, err := os.ReadFile(diskPath)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "copy.txt")
	require.NoError(t, Extract(diskPath, "one.txt", dest, opts))
	assert.Equal(t, "File copied successfully!\n", out.String())

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	// Extracting does not rewrite the container
	after, err := os.ReadFile(diskPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExtractErrors(t *testing.T) {
	diskPath, opts := setup(t)
	dir := t.TempDir()

	err := Extract(diskPath, "missing", filepath.Join(dir, "x"), opts)
	assert.ErrorIs(t, err, diskimg.ErrNotFound)

	err = Extract(diskPath, "one.txt", filepath.Join(dir, "no", "such", "x"), opts)
	assert.ErrorIs(t, err, diskimg.ErrDestUnwritable)

	existing := filepath.Join(dir, "existing")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o644))
	opts.Overwrite = false
	err = Extract(diskPath, "one.txt", existing, opts)
	assert.Error(t, err)
	got, _ := os.ReadFile(existing)
	assert.Equal(t, []byte("keep"), got)
}

func TestExtractAll(t *testing.T) {
	diskPath, opts := setup(t)
	opts.OutputDir = filepath.Join(t.TempDir(), "out")

	require.NoError(t, ExtractAll(diskPath, opts))

	got, err := os.ReadFile(filepath.Join(opts.OutputDir, "one.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	got, err = os.ReadFile(filepath.Join(opts.OutputDir, "two.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, got)
}

func newDisk(t *testing.T, opts *ExtractOptions, files map[string]string, order ...string) string {
	t.Helper()
	diskPath := filepath.Join(t.TempDir(), "nested.vd")
	d, err := disk.Create(diskPath, 256, 16, false, opts.Config)
	require.NoError(t, err)
	require.NoError(t, d.Update(func(v *diskimg.Volume) error {
		for _, name := range order {
			if err := v.AddFile(name, []byte(files[name])); err != nil {
				return err
			}
		}
		return nil
	}))
	return diskPath
}

func TestExtractAllKeepsDirectories(t *testing.T) {
	_, opts := setup(t)
	var out bytes.Buffer
	opts.Out = &out
	opts.OutputDir = filepath.Join(t.TempDir(), "out")

	files := map[string]string{"a/x": "first", "b/x": "second"}
	diskPath := newDisk(t, opts, files, "a/x", "b/x")

	require.NoError(t, ExtractAll(diskPath, opts))
	assert.Equal(t, "Extracted 2 files\n", out.String())

	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(opts.OutputDir, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}
}

func TestExtractAllCollision(t *testing.T) {
	_, opts := setup(t)
	var out bytes.Buffer
	opts.Out = &out
	opts.OutputDir = filepath.Join(t.TempDir(), "out")

	files := map[string]string{"a/x": "first", "/a/x": "second"}
	diskPath := newDisk(t, opts, files, "a/x", "/a/x")

	err := ExtractAll(diskPath, opts)
	assert.ErrorIs(t, err, ErrPathCollision)
	assert.Empty(t, out.String())

	got, err := os.ReadFile(filepath.Join(opts.OutputDir, "a", "x"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"plain.txt", "plain.txt"},
		{"a/x", filepath.Join("a", "x")},
		{"/a/x", filepath.Join("a", "x")},
		{"../../etc/passwd", filepath.Join("etc", "passwd")},
		{"a/../../x", "x"},
		{"/", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativePath(tt.name))
		})
	}
}
