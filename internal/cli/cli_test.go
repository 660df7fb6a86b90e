// file: internal/cli/cli_test.go

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ha1tch/vd/pkg/diskimg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(strings.NewReader(stdin), &out, &errOut)
	code := app.Execute(append([]string{"--no-color"}, args...))
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestWorkflow(t *testing.T) {
	dir := t.TempDir()
	diskName := filepath.Join(dir, "test")
	diskPath := diskName + ".vd"
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, bytes.Repeat([]byte("a"), 20), 0o644))

	r := run(t, "", "create", diskName, "1024", "16")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "Disk created!\n", r.stdout)

	r = run(t, "", "todisk", diskPath, src, "a.txt")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "File copied successfully!\n", r.stdout)

	r = run(t, "", "ls", diskPath)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "Directory contents:\n a.txt (20 B) [on disk (32 B)]\n", r.stdout)

	r = run(t, "", "blocks", diskPath)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, " Block 0: occupied (16 B) / (16 B)\n")
	assert.Contains(t, r.stdout, " Block 1: occupied (4 B) / (16 B)\n")
	assert.Contains(t, r.stdout, "Used disk space: 32 B / 1024 B\n")

	out := filepath.Join(dir, "out.txt")
	r = run(t, "", "fromdisk", diskPath, "a.txt", out)
	require.Equal(t, 0, r.code, r.stderr)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte("a"), 20), got)

	r = run(t, "", "check", diskPath)
	assert.Equal(t, 0, r.code, r.stderr)

	r = run(t, "", "rm", diskPath, "a.txt")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "File removed successfully!\n", r.stdout)

	r = run(t, "", "info", "--json", diskPath)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"free_space": 1024`)

	r = run(t, "no\n", "delete", diskPath)
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "Aborting...")
	assert.FileExists(t, diskPath)

	r = run(t, "YES\n", "delete", diskPath)
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "Virtual disk has been deleted!")
	assert.NoFileExists(t, diskPath)
}

func TestErrorMessagesAndCodes(t *testing.T) {
	dir := t.TempDir()
	diskName := filepath.Join(dir, "small")
	diskPath := diskName + ".vd"
	require.Equal(t, 0, run(t, "", "create", diskName, "48", "16").code)

	src := filepath.Join(dir, "s.txt")
	require.NoError(t, os.WriteFile(src, []byte("0123456789"), 0o644))
	big := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(big, make([]byte, 100), 0o644))
	require.Equal(t, 0, run(t, "", "todisk", diskPath, src, "s").code)

	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"wrong disk", []string{"ls", filepath.Join(dir, "nope.vd")}, diskimg.CodeGeneric, "Wrong disk name!"},
		{"rm missing", []string{"rm", diskPath, "x"}, diskimg.CodeFileNotFoundOnDisk,
			"ERROR: File with that name (x) not found on virtual disk!"},
		{"fromdisk missing", []string{"fromdisk", diskPath, "x", filepath.Join(dir, "x")}, diskimg.CodeFileNotFoundOnDisk,
			"ERROR: File with that name doesn't exist on virtual disk!"},
		{"fromdisk unwritable", []string{"fromdisk", diskPath, "s", filepath.Join(dir, "no", "x")}, diskimg.CodeCantAccessFile,
			"ERROR: Can't access output file (" + filepath.Join(dir, "no", "x") + ")!"},
		{"todisk missing source", []string{"todisk", diskPath, filepath.Join(dir, "none"), "n"}, diskimg.CodeCantAccessFile,
			"ERROR: File with name " + filepath.Join(dir, "none") + " doesn't exist!"},
		{"todisk duplicate", []string{"todisk", diskPath, src, "s"}, diskimg.CodeFileWithNameExists,
			"ERROR: Source file with that name (s) already exists!"},
		{"todisk too large", []string{"todisk", diskPath, big, "big"}, diskimg.CodeNotEnoughFreeMemory,
			"ERROR: Not enough free memory on disk to copy this file!"},
		{"create not numbers", []string{"create", filepath.Join(dir, "n"), "ten", "2"}, diskimg.CodeGeneric,
			"Size and Block size have to be numbers!"},
		{"create not divisible", []string{"create", filepath.Join(dir, "n"), "100", "16"}, diskimg.CodeGeneric,
			"Size has to be divisable by block size!"},
		{"create over limit", []string{"--max-size", "64", "create", filepath.Join(dir, "n"), "128", "16"}, diskimg.CodeMemoryAllocError,
			"Error allocating memory!"},
		{"delete non-disk", []string{"delete", "--yes", src}, diskimg.CodeGeneric, "Can't delete non-disk file!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			assert.Equal(t, tt.code, r.code)
			assert.Equal(t, tt.msg+"\n", r.stderr)
		})
	}
}

func TestNoContiguousBlockCode(t *testing.T) {
	dir := t.TempDir()
	diskName := filepath.Join(dir, "frag")
	diskPath := diskName + ".vd"
	require.Equal(t, 0, run(t, "", "create", diskName, "48", "16").code)

	block := filepath.Join(dir, "block")
	require.NoError(t, os.WriteFile(block, make([]byte, 16), 0o644))
	for _, name := range []string{"x", "y", "z"} {
		require.Equal(t, 0, run(t, "", "todisk", diskPath, block, name).code)
	}
	require.Equal(t, 0, run(t, "", "rm", diskPath, "x").code)
	require.Equal(t, 0, run(t, "", "rm", diskPath, "z").code)

	big := filepath.Join(dir, "big")
	require.NoError(t, os.WriteFile(big, make([]byte, 20), 0o644))
	r := run(t, "", "todisk", diskPath, big, "big")
	assert.Equal(t, diskimg.CodeFreeBlockNotFound, r.code)
	assert.Equal(t, "ERROR: No free blocks of memory found on disk!\n", r.stderr)
}

func TestByteOrderFlag(t *testing.T) {
	dir := t.TempDir()
	diskName := filepath.Join(dir, "be")
	r := run(t, "", "--byte-order", "big", "create", diskName, "64", "16")
	require.Equal(t, 0, r.code, r.stderr)

	data, err := os.ReadFile(diskName + ".vd")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 64, 0, 0, 0, 16}, data[:8])

	r = run(t, "", "--byte-order", "big", "ls", diskName+".vd")
	assert.Equal(t, 0, r.code, r.stderr)

	r = run(t, "", "--byte-order", "middle", "ls", diskName+".vd")
	assert.NotEqual(t, 0, r.code)
}

func TestByteOrderValue(t *testing.T) {
	var v byteOrderValue
	assert.Equal(t, "native", v.String())
	assert.Equal(t, "order", v.Type())

	require.NoError(t, v.Set("Little"))
	assert.Equal(t, "little", v.String())
	assert.NotNil(t, v.order)

	require.NoError(t, v.Set("native"))
	assert.Nil(t, v.order)

	assert.ErrorIs(t, v.Set("sideways"), diskimg.ErrInvalidConfiguration)
}

func TestLegacyOccupancyFlag(t *testing.T) {
	dir := t.TempDir()
	diskName := filepath.Join(dir, "legacy")
	diskPath := diskName + ".vd"
	require.Equal(t, 0, run(t, "", "create", diskName, "32", "16").code)

	src := filepath.Join(dir, "zero")
	require.NoError(t, os.WriteFile(src, []byte{0, 1, 2, 3}, 0o644))
	require.Equal(t, 0, run(t, "", "todisk", diskPath, src, "zero").code)

	r := run(t, "", "blocks", diskPath)
	assert.Contains(t, r.stdout, " Block 0: occupied")

	r = run(t, "", "--legacy-occupancy", "blocks", diskPath)
	assert.Contains(t, r.stdout, " Block 0: free")

	r = run(t, "", "--legacy-occupancy", "check", diskPath)
	assert.Equal(t, diskimg.CodeGeneric, r.code)
}

func TestQuiet(t *testing.T) {
	diskName := filepath.Join(t.TempDir(), "q")
	r := run(t, "", "--quiet", "create", diskName, "64", "16")
	assert.Equal(t, 0, r.code)
	assert.Empty(t, r.stdout)
}

func TestUsageErrors(t *testing.T) {
	r := run(t, "", "create", "only-one-arg")
	assert.Equal(t, diskimg.CodeGeneric, r.code)
	assert.NotEmpty(t, r.stderr)

	r = run(t, "", "frobnicate")
	assert.Equal(t, diskimg.CodeGeneric, r.code)
}
