// file: cmd/create/create.go

package create

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/vd/pkg/disk"
)

// Suffix is appended to the disk name to form the container file name
const Suffix = ".vd"

// CreateOptions configures the disk creation
type CreateOptions struct {
	Config disk.Config // Occupancy, byte order and logging
	Force  bool        // Overwrite existing file
	Quiet  bool        // Suppress non-error output
	Out    io.Writer   // Destination of normal output
}

// DefaultCreateOptions returns default options for Create
func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		Config: disk.DefaultConfig(),
		Force:  false,
		Quiet:  false,
		Out:    os.Stdout,
	}
}

// ContainerPath returns the file name a disk called name is stored in
func ContainerPath(name string) string {
	if strings.HasSuffix(name, Suffix) {
		return name
	}
	return name + Suffix
}

// Create creates an empty virtual disk of size bytes split into blocks of
// blockSize bytes and returns the container path
func Create(name string, size, blockSize int, opts *CreateOptions) (string, error) {
	if opts == nil {
		opts = DefaultCreateOptions()
	}

	outPath := filepath.Clean(ContainerPath(name))

	// Ensure directory exists
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if _, err := disk.Create(outPath, size, blockSize, opts.Force, opts.Config); err != nil {
		return "", err
	}

	if !opts.Quiet && opts.Out != nil {
		fmt.Fprintln(opts.Out, "Disk created!")
	}

	return outPath, nil
}
