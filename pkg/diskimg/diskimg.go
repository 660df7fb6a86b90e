// file: pkg/diskimg/diskimg.go

package diskimg

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ha1tch/vd/internal"
)

const (
	// MaxVolumeSize is the largest size the container header can record
	MaxVolumeSize = math.MaxInt32
	// HeaderSize is the encoded size of total_size, block_size and file_count
	HeaderSize = 12
)

// Options configures how a volume is built or decoded
type Options struct {
	Occupancy Occupancy        // Allocator used to track free blocks
	ByteOrder binary.ByteOrder // Integer encoding of the container, nil means native
	MaxSize   int              // Largest data buffer to allocate, 0 means MaxVolumeSize
}

// DefaultOptions returns the default volume options
func DefaultOptions() *Options {
	return &Options{
		Occupancy: OccupancyBitmap,
		ByteOrder: nil,
		MaxSize:   0,
	}
}

func (o *Options) byteOrder() binary.ByteOrder {
	if o.ByteOrder == nil {
		return NativeByteOrder()
	}
	return o.ByteOrder
}

func (o *Options) maxSize() int {
	if o.MaxSize <= 0 || o.MaxSize > MaxVolumeSize {
		return MaxVolumeSize
	}
	return o.MaxSize
}

// Volume is an in-memory virtual disk: a flat data buffer split into
// fixed-size blocks plus a flat directory. A Volume is not safe for
// concurrent use.
type Volume struct {
	totalSize int
	blockSize int
	data      []byte
	directory Directory
	alloc     Allocator
	occupancy Occupancy
	byteOrder binary.ByteOrder
}

// NewVolume creates an empty volume with every block free
func NewVolume(totalSize, blockSize int, opts *Options) (*Volume, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := ValidateGeometry(totalSize, blockSize); err != nil {
		return nil, err
	}

	return newVolume(totalSize, blockSize, opts)
}

// newVolume allocates the buffer and allocator without checking divisibility.
// Decoding goes through here because it trusts the stream.
func newVolume(totalSize, blockSize int, opts *Options) (*Volume, error) {
	if totalSize > opts.maxSize() {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, totalSize, opts.maxSize())
	}

	data, err := allocBuffer(totalSize)
	if err != nil {
		return nil, err
	}

	alloc, err := newAllocator(opts.Occupancy, data, blockSize)
	if err != nil {
		return nil, err
	}

	return &Volume{
		totalSize: totalSize,
		blockSize: blockSize,
		data:      data,
		alloc:     alloc,
		occupancy: opts.Occupancy,
		byteOrder: opts.byteOrder(),
	}, nil
}

// allocBuffer turns a refused allocation into ErrAllocation
func allocBuffer(n int) (buf []byte, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative buffer size %d", ErrAllocation, n)
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: %d bytes: %v", ErrAllocation, n, r)
		}
	}()
	return make([]byte, n), nil
}

// TotalSize returns the capacity of the volume in bytes
func (v *Volume) TotalSize() int {
	return v.totalSize
}

// BlockSize returns the allocation granularity in bytes
func (v *Volume) BlockSize() int {
	return v.blockSize
}

// BlockCount returns the number of blocks in the volume
func (v *Volume) BlockCount() int {
	return v.totalSize / v.blockSize
}

// FileCount returns the number of directory records
func (v *Volume) FileCount() int {
	return v.directory.Len()
}

// Occupancy returns the allocator mode of the volume
func (v *Volume) Occupancy() Occupancy {
	return v.occupancy
}

// ByteOrder returns the integer encoding used when the volume is saved
func (v *Volume) ByteOrder() binary.ByteOrder {
	return v.byteOrder
}

// AvailableSpace returns the number of bytes in free blocks
func (v *Volume) AvailableSpace() int {
	return v.alloc.AvailableSpace()
}

// Files returns a copy of the directory in insertion order
func (v *Volume) Files() []DirectoryEntry {
	return v.directory.Entries()
}

// Stat returns the directory record for name
func (v *Volume) Stat(name string) (DirectoryEntry, error) {
	idx, ok := v.directory.Find(name)
	if !ok {
		return DirectoryEntry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return v.directory.Entry(idx), nil
}

// AddFile stores content under name. Every check runs before the volume is
// touched, so a failed call leaves it exactly as it was.
func (v *Volume) AddFile(name string, content []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	size := len(content)
	if available := v.alloc.AvailableSpace(); size > available {
		return fmt.Errorf("%w: %s needs %d bytes, %d available", ErrInsufficientSpace, name, size, available)
	}

	if _, ok := v.directory.Find(name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	start, ok := v.alloc.FindPlacement(size)
	if !ok {
		return fmt.Errorf("%w: %s needs %d bytes", ErrNoContiguousBlock, name, size)
	}

	if err := v.directory.Insert(DirectoryEntry{Name: name, Size: size, StartBlock: start}); err != nil {
		return err
	}
	v.alloc.MarkUsed(start, size)
	copy(v.data[internal.BlockOffset(start, v.blockSize):], content)

	return nil
}

// RemoveFile deletes name and releases exactly the bytes it recorded
func (v *Volume) RemoveFile(name string) error {
	entry, err := v.directory.Remove(name)
	if err != nil {
		return err
	}

	v.alloc.MarkFree(entry.StartBlock, entry.Size)
	return nil
}

// ReadFile returns a copy of the stored content of name
func (v *Volume) ReadFile(name string) ([]byte, error) {
	entry, err := v.Stat(name)
	if err != nil {
		return nil, err
	}

	lo, hi, err := v.extent(entry)
	if err != nil {
		return nil, err
	}

	content := make([]byte, hi-lo)
	copy(content, v.data[lo:hi])
	return content, nil
}

// ReadFileAt reads from the content of name starting at off. It returns
// io.EOF once off reaches the end of the file.
func (v *Volume) ReadFileAt(name string, p []byte, off int64) (int, error) {
	entry, err := v.Stat(name)
	if err != nil {
		return 0, err
	}

	lo, hi, err := v.extent(entry)
	if err != nil {
		return 0, err
	}

	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= int64(hi-lo) {
		return 0, io.EOF
	}

	n := copy(p, v.data[lo+int(off):hi])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// extent returns the byte range backing a record
func (v *Volume) extent(entry DirectoryEntry) (int, int, error) {
	lo := internal.BlockOffset(entry.StartBlock, v.blockSize)
	hi := lo + entry.Size
	if entry.StartBlock < 0 || entry.Size < 0 || hi > v.totalSize {
		return 0, 0, fmt.Errorf("%w: %s occupies bytes [%d, %d) outside volume of %d bytes",
			ErrCorruptOrTruncated, entry.Name, lo, hi, v.totalSize)
	}
	return lo, hi, nil
}

// ListEntry is one line of a directory listing
type ListEntry struct {
	Name       string
	Size       int // Logical size in bytes
	OnDiskSize int // Size rounded up to blocks, always one block past Size/BlockSize
}

// DirectoryIterator walks the directory lazily. It reads the live table, so
// it reflects changes made between calls.
type DirectoryIterator struct {
	volume *Volume
	pos    int
}

// List returns an iterator over the directory
func (v *Volume) List() *DirectoryIterator {
	return &DirectoryIterator{volume: v}
}

// Next returns the next listing entry. ok is false once the directory is exhausted.
func (it *DirectoryIterator) Next() (ListEntry, bool) {
	if it.pos >= it.volume.directory.Len() {
		return ListEntry{}, false
	}

	entry := it.volume.directory.Entry(it.pos)
	it.pos++

	return ListEntry{
		Name:       entry.Name,
		Size:       entry.Size,
		OnDiskSize: internal.RoundedSize(entry.Size, it.volume.blockSize),
	}, true
}

// Reset rewinds the iterator to the first record
func (it *DirectoryIterator) Reset() {
	it.pos = 0
}

// BlockState describes one block of the volume
type BlockState struct {
	Index        int
	Free         bool
	NonZeroBytes int
}

// BlockMap is a snapshot of block occupancy
type BlockMap struct {
	BlockSize     int
	TotalSize     int
	Blocks        []BlockState
	OccupiedBytes int // Occupied blocks times block size
}

// BlockMap reports the state of every block
func (v *Volume) BlockMap() BlockMap {
	bm := BlockMap{
		BlockSize: v.blockSize,
		TotalSize: v.totalSize,
		Blocks:    make([]BlockState, v.BlockCount()),
	}

	for i := range bm.Blocks {
		off := internal.BlockOffset(i, v.blockSize)
		nonZero := 0
		for _, b := range v.data[off : off+v.blockSize] {
			if b != 0 {
				nonZero++
			}
		}

		free := v.alloc.IsBlockFree(i)
		if !free {
			bm.OccupiedBytes += v.blockSize
		}

		bm.Blocks[i] = BlockState{
			Index:        i,
			Free:         free,
			NonZeroBytes: nonZero,
		}
	}

	return bm
}
