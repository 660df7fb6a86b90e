// file: cmd/extract/extract.go

package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/vd/pkg/disk"
)

// ErrPathCollision is returned by ExtractAll when two stored names map to the
// same host file
var ErrPathCollision = errors.New("extracted files would overwrite each other")

// ExtractOptions configures the file extraction operation
type ExtractOptions struct {
	Config    disk.Config
	OutputDir string    // Directory to extract files to
	Overwrite bool      // Allow overwriting existing files
	Quiet     bool      // Suppress non-error output
	Out       io.Writer // Destination of normal output
}

// DefaultExtractOptions returns default options for Extract
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{
		Config:    disk.DefaultConfig(),
		OutputDir: "",
		Overwrite: true,
		Quiet:     false,
		Out:       os.Stdout,
	}
}

// Extract copies a file from the virtual disk to the host filesystem. An
// empty destPath uses the file's name on the disk.
func Extract(diskPath string, filename string, destPath string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	if err := extractOne(d, filename, destPath, opts); err != nil {
		return err
	}

	if !opts.Quiet && opts.Out != nil {
		fmt.Fprintln(opts.Out, "File copied successfully!")
	}

	return nil
}

// ExtractAll extracts every file of the virtual disk into opts.OutputDir.
// Directories in stored names are recreated below the output directory.
func ExtractAll(diskPath string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	written := make(map[string]string)
	count := 0
	for _, entry := range d.Volume().Files() {
		rel := RelativePath(entry.Name)
		if prev, ok := written[rel]; ok {
			return fmt.Errorf("%w: %q and %q both extract to %s", ErrPathCollision, prev, entry.Name, rel)
		}
		written[rel] = entry.Name

		if dir := filepath.Dir(rel); dir != "." {
			if err := os.MkdirAll(filepath.Join(opts.OutputDir, dir), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := extractOne(d, entry.Name, rel, opts); err != nil {
			return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
		count++
	}

	if !opts.Quiet && opts.Out != nil {
		fmt.Fprintf(opts.Out, "Extracted %d files\n", count)
	}

	return nil
}

// RelativePath maps a stored name to a relative host path. Leading
// separators and ".." elements are dropped so the result stays below the
// output directory.
func RelativePath(name string) string {
	rel := strings.TrimPrefix(filepath.Clean("/"+filepath.FromSlash(name)), string(filepath.Separator))
	if rel == "" {
		return "_"
	}
	return rel
}

func extractOne(d *disk.Disk, filename, destPath string, opts *ExtractOptions) error {
	outPath := destPath
	if outPath == "" {
		// Names on the disk may contain separators
		outPath = filepath.Base(filepath.Clean("/" + filename))
	}
	if opts.OutputDir != "" && !filepath.IsAbs(outPath) {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outPath = filepath.Join(opts.OutputDir, outPath)
	}

	if !opts.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("output file already exists: %s (use overwrite to replace)", outPath)
		}
	}

	return d.ExtractFile(filename, outPath)
}
