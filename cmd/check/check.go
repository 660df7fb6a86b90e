// file: cmd/check/check.go

package check

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ha1tch/vd/pkg/disk"
)

// ErrInconsistent is returned when the check finds problems
var ErrInconsistent = errors.New("disk check found problems")

// CheckOptions configures the consistency check
type CheckOptions struct {
	Config disk.Config
	Quiet  bool      // Only print problems
	Out    io.Writer // Destination of the report
}

// DefaultCheckOptions returns default options for Check
func DefaultCheckOptions() *CheckOptions {
	return &CheckOptions{
		Config: disk.DefaultConfig(),
		Quiet:  false,
		Out:    os.Stdout,
	}
}

// Check verifies the directory and block occupancy of a virtual disk
func Check(diskPath string, opts *CheckOptions) error {
	if opts == nil {
		opts = DefaultCheckOptions()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	problems := d.Volume().Check()
	for _, p := range problems {
		fmt.Fprintf(out, "- %s\n", p)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %d issue(s) in %s", ErrInconsistent, len(problems), diskPath)
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "%s: no problems found (%d files)\n", diskPath, d.Volume().FileCount())
	}
	return nil
}
