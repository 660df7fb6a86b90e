// file: cmd/add/add.go

package add

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ha1tch/vd/pkg/disk"
)

// AddOptions configures the Add operation
type AddOptions struct {
	Config disk.Config
	Quiet  bool      // Suppress non-error output
	Out    io.Writer // Destination of normal output
}

// DefaultAddOptions returns default options for Add
func DefaultAddOptions() *AddOptions {
	return &AddOptions{
		Config: disk.DefaultConfig(),
		Quiet:  false,
		Out:    os.Stdout,
	}
}

// Add copies a host file onto the virtual disk under destName and saves the
// container. An empty destName uses the base name of filePath.
func Add(diskPath string, filePath string, destName string, opts *AddOptions) error {
	if opts == nil {
		opts = DefaultAddOptions()
	}

	if destName == "" {
		destName = filepath.Base(filePath)
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	if err := d.AddFile(filePath, destName); err != nil {
		return err
	}

	if !opts.Quiet && opts.Out != nil {
		fmt.Fprintln(opts.Out, "File copied successfully!")
	}

	return nil
}
