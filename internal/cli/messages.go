// file: internal/cli/messages.go

package cli

import (
	"fmt"
	"strconv"

	"github.com/ha1tch/vd/internal/message"
	"github.com/ha1tch/vd/pkg/diskimg"
)

// ExitCode returns the process exit status for err
func ExitCode(err error) int {
	return diskimg.ErrorCode(err)
}

// parseSize reads a size argument of the create command
func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", message.ErrNotNumber, s)
	}
	return n, nil
}
