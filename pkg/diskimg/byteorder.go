// file: pkg/diskimg/byteorder.go

package diskimg

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/sys/cpu"
)

// NativeByteOrder returns the integer encoding of the host CPU. Containers
// written by earlier vd releases use it.
func NativeByteOrder() binary.ByteOrder {
	if cpu.IsBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ParseByteOrder maps "native", "little" or "big" to a byte order
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return NativeByteOrder(), nil
	case "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("%w: unknown byte order %q", ErrInvalidConfiguration, s)
	}
}
