// file: cmd/remove/remove.go

package remove

import (
	"fmt"
	"io"
	"os"

	"github.com/ha1tch/vd/pkg/disk"
)

// RemoveOptions configures the Remove operation
type RemoveOptions struct {
	Config disk.Config
	Quiet  bool      // Suppress non-error output
	Out    io.Writer // Destination of normal output
}

// DefaultRemoveOptions returns default options for Remove
func DefaultRemoveOptions() *RemoveOptions {
	return &RemoveOptions{
		Config: disk.DefaultConfig(),
		Quiet:  false,
		Out:    os.Stdout,
	}
}

// Remove deletes a file from the virtual disk and saves the container
func Remove(diskPath string, filename string, opts *RemoveOptions) error {
	if opts == nil {
		opts = DefaultRemoveOptions()
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	if err := d.RemoveFile(filename); err != nil {
		return err
	}

	if !opts.Quiet && opts.Out != nil {
		fmt.Fprintln(opts.Out, "File removed successfully!")
	}

	return nil
}
