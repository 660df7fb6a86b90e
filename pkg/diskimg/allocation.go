// file: pkg/diskimg/allocation.go

package diskimg

import (
	"fmt"

	"github.com/ha1tch/vd/internal"
)

// Occupancy selects how an allocator decides whether a block is in use
type Occupancy int

const (
	// OccupancyBitmap tracks used blocks in a bitmap kept beside the data (default)
	OccupancyBitmap Occupancy = iota
	// OccupancySentinel treats a block as free when its first byte is zero
	OccupancySentinel
)

func (o Occupancy) String() string {
	switch o {
	case OccupancyBitmap:
		return "bitmap"
	case OccupancySentinel:
		return "sentinel"
	default:
		return fmt.Sprintf("Occupancy(%d)", int(o))
	}
}

// Allocator tracks free space over a volume's data buffer and places new files
type Allocator interface {
	// IsBlockFree reports whether the block at index can take new data.
	IsBlockFree(index int) bool
	// AvailableSpace sums the block size over every free block.
	AvailableSpace() int
	// FindPlacement returns the first block of the lowest run of contiguous
	// free blocks holding at least size bytes. ok is false when no run fits.
	FindPlacement(size int) (start int, ok bool)
	// MarkUsed marks size bytes starting at block start as occupied.
	MarkUsed(start, size int)
	// MarkFree releases size bytes starting at block start.
	MarkFree(start, size int)
}

// newAllocator builds the allocator for the given occupancy mode
func newAllocator(mode Occupancy, data []byte, blockSize int) (Allocator, error) {
	switch mode {
	case OccupancyBitmap:
		return NewBitmapAllocator(data, blockSize), nil
	case OccupancySentinel:
		return NewSentinelAllocator(data, blockSize), nil
	default:
		return nil, fmt.Errorf("%w: unknown occupancy mode %d", ErrInvalidConfiguration, int(mode))
	}
}

// BitmapAllocator keeps one flag per block. Occupancy never depends on the
// bytes stored in a block.
type BitmapAllocator struct {
	data      []byte
	blockSize int
	used      []bool
}

// NewBitmapAllocator creates a bitmap allocator with every block free
func NewBitmapAllocator(data []byte, blockSize int) *BitmapAllocator {
	return &BitmapAllocator{
		data:      data,
		blockSize: blockSize,
		used:      make([]bool, len(data)/blockSize),
	}
}

// IsBlockFree checks the block's flag. Blocks out of range are never free.
func (ba *BitmapAllocator) IsBlockFree(index int) bool {
	if index < 0 || index >= len(ba.used) {
		return false
	}
	return !ba.used[index]
}

// AvailableSpace returns the number of free bytes
func (ba *BitmapAllocator) AvailableSpace() int {
	return availableSpace(ba, len(ba.used), ba.blockSize)
}

// FindPlacement looks for a contiguous run of free blocks
func (ba *BitmapAllocator) FindPlacement(size int) (int, bool) {
	return findPlacement(ba, len(ba.used), ba.blockSize, size)
}

// MarkUsed flags every block the range touches
func (ba *BitmapAllocator) MarkUsed(start, size int) {
	ba.setRange(start, size, true)
}

// MarkFree clears the flags of every block the range touches and zero-fills
// the released bytes.
func (ba *BitmapAllocator) MarkFree(start, size int) {
	lo, hi := clampRange(len(ba.data), internal.BlockOffset(start, ba.blockSize), size)
	fill(ba.data[lo:hi], 0)
	ba.setRange(start, size, false)
}

func (ba *BitmapAllocator) setRange(start, size int, used bool) {
	first, last, ok := internal.BlockSpan(start, size, ba.blockSize)
	if !ok {
		return
	}
	if first < 0 {
		first = 0
	}
	if last >= len(ba.used) {
		last = len(ba.used) - 1
	}
	for i := first; i <= last; i++ {
		ba.used[i] = used
	}
}

// SentinelAllocator is the legacy occupancy model: a block is free
// iff its first byte is zero. A stored file whose content begins with a zero
// byte at a block boundary therefore reads as free space.
type SentinelAllocator struct {
	data      []byte
	blockSize int
}

// NewSentinelAllocator creates an allocator reading occupancy from data
func NewSentinelAllocator(data []byte, blockSize int) *SentinelAllocator {
	return &SentinelAllocator{data: data, blockSize: blockSize}
}

// IsBlockFree checks the first byte of the block
func (sa *SentinelAllocator) IsBlockFree(index int) bool {
	off := internal.BlockOffset(index, sa.blockSize)
	if index < 0 || off >= len(sa.data) {
		return false
	}
	return sa.data[off] == 0
}

// AvailableSpace returns the number of free bytes
func (sa *SentinelAllocator) AvailableSpace() int {
	return availableSpace(sa, len(sa.data)/sa.blockSize, sa.blockSize)
}

// FindPlacement looks for a contiguous run of free blocks
func (sa *SentinelAllocator) FindPlacement(size int) (int, bool) {
	return findPlacement(sa, len(sa.data)/sa.blockSize, sa.blockSize, size)
}

// MarkUsed writes 1 over every byte of the range
func (sa *SentinelAllocator) MarkUsed(start, size int) {
	lo, hi := clampRange(len(sa.data), internal.BlockOffset(start, sa.blockSize), size)
	fill(sa.data[lo:hi], 1)
}

// MarkFree writes 0 over every byte of the range
func (sa *SentinelAllocator) MarkFree(start, size int) {
	lo, hi := clampRange(len(sa.data), internal.BlockOffset(start, sa.blockSize), size)
	fill(sa.data[lo:hi], 0)
}

func availableSpace(a Allocator, blockCount, blockSize int) int {
	available := 0
	for i := 0; i < blockCount; i++ {
		if a.IsBlockFree(i) {
			available += blockSize
		}
	}
	return available
}

// findPlacement is first-fit over runs of free blocks in ascending order
func findPlacement(a Allocator, blockCount, blockSize, size int) (int, bool) {
	start := -1
	free := 0

	for i := 0; i < blockCount; i++ {
		if !a.IsBlockFree(i) {
			start = -1
			free = 0
			continue
		}
		if start == -1 {
			start = i
		}
		free += blockSize
		if free >= size {
			return start, true
		}
	}

	return 0, false
}

// clampRange limits [off, off+size) to a buffer of length n
func clampRange(n, off, size int) (int, int) {
	lo, hi := clamp(off, 0, n), clamp(off+size, 0, n)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
