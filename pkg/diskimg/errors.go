// file: pkg/diskimg/errors.go

package diskimg

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName        = errors.New("file with that name already exists")
	ErrNotFound             = errors.New("file not found on virtual disk")
	ErrInsufficientSpace    = errors.New("not enough free space on disk")
	ErrNoContiguousBlock    = errors.New("no contiguous run of free blocks large enough")
	ErrAllocation           = errors.New("cannot allocate memory")
	ErrSourceUnreadable     = errors.New("cannot read source file")
	ErrDestUnwritable       = errors.New("cannot write destination file")
	ErrCorruptOrTruncated   = errors.New("container is corrupt or truncated")
	ErrInvalidConfiguration = errors.New("invalid disk configuration")
	ErrInvalidName          = errors.New("invalid filename")

	// ErrNotDivisible is the ErrInvalidConfiguration case of a size that is
	// not a whole number of blocks
	ErrNotDivisible = fmt.Errorf("%w: size not divisible by block size", ErrInvalidConfiguration)
)

// Numeric error codes of the vd tool. The CLI exits with them.
const (
	CodeOK                  = 0
	CodeFileNotFoundOnDisk  = 1001
	CodeCantAccessFile      = 1002
	CodeMemoryAllocError    = 1003
	CodeNotEnoughFreeMemory = 1004
	CodeFileWithNameExists  = 1005
	CodeFreeBlockNotFound   = 1006
	CodeGeneric             = 1
)

// ErrorCode maps an error returned by this package to its numeric code.
func ErrorCode(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrNotFound):
		return CodeFileNotFoundOnDisk
	case errors.Is(err, ErrSourceUnreadable), errors.Is(err, ErrDestUnwritable):
		return CodeCantAccessFile
	case errors.Is(err, ErrAllocation):
		return CodeMemoryAllocError
	case errors.Is(err, ErrInsufficientSpace):
		return CodeNotEnoughFreeMemory
	case errors.Is(err, ErrDuplicateName):
		return CodeFileWithNameExists
	case errors.Is(err, ErrNoContiguousBlock):
		return CodeFreeBlockNotFound
	default:
		return CodeGeneric
	}
}
