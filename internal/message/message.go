// file: internal/message/message.go

// Package message turns errors of the vd commands into the lines shown to
// the user.
package message

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ha1tch/vd/cmd/delete"
	"github.com/ha1tch/vd/pkg/disk"
	"github.com/ha1tch/vd/pkg/diskimg"
)

// ErrNotNumber is returned when create gets a size that is not an integer
var ErrNotNumber = errors.New("size and block size have to be numbers")

// Text maps an error returned by a command to the line shown to the user
func Text(command string, args []string, err error) string {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch {
	case errors.Is(err, ErrNotNumber):
		return "Size and Block size have to be numbers!"
	case errors.Is(err, diskimg.ErrNotDivisible):
		return "Size has to be divisable by block size!"
	case errors.Is(err, diskimg.ErrInvalidConfiguration):
		return fmt.Sprintf("ERROR: %v!", err)
	case errors.Is(err, disk.ErrExists):
		return fmt.Sprintf("Disk %s already exists! Use --force to overwrite it.", arg(0))
	case errors.Is(err, disk.ErrOpen):
		return "Wrong disk name!"
	case errors.Is(err, diskimg.ErrCorruptOrTruncated):
		return fmt.Sprintf("ERROR: Disk %s is corrupt or truncated!", arg(0))
	case errors.Is(err, diskimg.ErrAllocation):
		if command == "create" {
			return "Error allocating memory!"
		}
		return "ERROR: Can't allocate memory for data!"
	case errors.Is(err, delete.ErrNotDisk):
		return "Can't delete non-disk file!"
	case errors.Is(err, delete.ErrDeleteFailed):
		return "Unable to delete the disk! Maybe disk with that name doesn't exist?"
	case errors.Is(err, diskimg.ErrNotFound):
		if command == "rm" {
			return fmt.Sprintf("ERROR: File with that name (%s) not found on virtual disk!", arg(1))
		}
		return "ERROR: File with that name doesn't exist on virtual disk!"
	case errors.Is(err, diskimg.ErrSourceUnreadable):
		return fmt.Sprintf("ERROR: File with name %s doesn't exist!", arg(1))
	case errors.Is(err, diskimg.ErrInsufficientSpace):
		return "ERROR: Not enough free memory on disk to copy this file!"
	case errors.Is(err, diskimg.ErrDuplicateName):
		dest := arg(2)
		if dest == "" {
			dest = filepath.Base(arg(1))
		}
		return fmt.Sprintf("ERROR: Source file with that name (%s) already exists!", dest)
	case errors.Is(err, diskimg.ErrNoContiguousBlock):
		return "ERROR: No free blocks of memory found on disk!"
	case errors.Is(err, diskimg.ErrInvalidName):
		return fmt.Sprintf("ERROR: %v!", err)
	case errors.Is(err, diskimg.ErrDestUnwritable):
		if command == "fromdisk" {
			dest := arg(2)
			if dest == "" {
				dest = filepath.Base(arg(1))
			}
			return fmt.Sprintf("ERROR: Can't access output file (%s)!", dest)
		}
		return fmt.Sprintf("ERROR: Can't write disk %s!", arg(0))
	default:
		return fmt.Sprintf("ERROR: %v", err)
	}
}
