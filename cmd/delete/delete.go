// file: cmd/delete/delete.go

package delete

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrNotDisk is returned for files without the container suffix
	ErrNotDisk = errors.New("can't delete non-disk file")
	// ErrDeleteFailed is returned when the container cannot be removed
	ErrDeleteFailed = errors.New("unable to delete the disk")
)

// Confirmation is the exact answer that confirms deletion
const Confirmation = "YES"

// DeleteOptions configures the deletion operation
type DeleteOptions struct {
	Force bool      // Skip confirmation
	Quiet bool      // Suppress non-error output
	In    io.Reader // Source of the confirmation answer
	Out   io.Writer // Destination of prompts and normal output
}

// DefaultDeleteOptions returns default options for Delete
func DefaultDeleteOptions() *DeleteOptions {
	return &DeleteOptions{
		Force: false,
		Quiet: false,
		In:    os.Stdin,
		Out:   os.Stdout,
	}
}

// Delete removes a virtual disk container. It reports whether the disk was
// deleted; declining the confirmation is not an error.
func Delete(diskPath string, opts *DeleteOptions) (bool, error) {
	if opts == nil {
		opts = DefaultDeleteOptions()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	if !strings.HasSuffix(diskPath, ".vd") {
		return false, fmt.Errorf("%w: %s", ErrNotDisk, diskPath)
	}

	// Confirm deletion unless forced
	if !opts.Force {
		fmt.Fprintln(out, "Are you sure? You won't be able to revert deletion!")
		fmt.Fprintf(out, "Type '%s' to confirm: ", Confirmation)
		if !confirmed(opts.In) {
			fmt.Fprintln(out, "Aborting...")
			return false, nil
		}
	}

	if err := os.Remove(diskPath); err != nil {
		return false, fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	if !opts.Quiet {
		fmt.Fprintln(out, "Virtual disk has been deleted!")
	}

	return true, nil
}

// confirmed reads one word and compares it to Confirmation
func confirmed(in io.Reader) bool {
	if in == nil {
		return false
	}
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() {
		return false
	}
	return scanner.Text() == Confirmation
}
