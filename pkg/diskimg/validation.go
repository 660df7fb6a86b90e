// file: pkg/diskimg/validation.go

package diskimg

import (
	"fmt"
	"strings"
)

// ValidationError describes one inconsistency found by Volume.Check
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error - %s: %s", e.Field, e.Message)
}

// ValidateGeometry checks that a total size and block size describe a volume
// the container format can hold
func ValidateGeometry(totalSize, blockSize int) error {
	switch {
	case blockSize <= 0:
		return fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidConfiguration, blockSize)
	case totalSize <= 0:
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfiguration, totalSize)
	case totalSize > MaxVolumeSize:
		return fmt.Errorf("%w: size %d exceeds maximum %d", ErrInvalidConfiguration, totalSize, MaxVolumeSize)
	case totalSize%blockSize != 0:
		return fmt.Errorf("%w (size %d, block size %d)", ErrNotDivisible, totalSize, blockSize)
	}
	return nil
}

// ValidateName checks that a name fits the on-disk name field. The field
// keeps a terminating NUL, so names are at most MaxFilenameLength-1 bytes.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty filename", ErrInvalidName)
	case len(name) >= MaxFilenameLength:
		return fmt.Errorf("%w: filename too long (max %d bytes)", ErrInvalidName, MaxFilenameLength-1)
	case strings.IndexByte(name, 0) >= 0:
		return fmt.Errorf("%w: filename contains NUL byte", ErrInvalidName)
	}
	return nil
}
