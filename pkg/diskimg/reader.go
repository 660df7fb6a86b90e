// file: pkg/diskimg/reader.go

package diskimg

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// header is the fixed prefix of a container
type header struct {
	TotalSize int32
	BlockSize int32
	FileCount int32
}

// record is one encoded directory entry
type record struct {
	Name       [MaxFilenameLength]byte
	Size       int32
	StartBlock int32
}

// LoadFromFile loads a volume from a container file
func LoadFromFile(filename string, opts *Options) (*Volume, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	limit := int64(-1)
	if fi, err := file.Stat(); err == nil && fi.Mode().IsRegular() {
		limit = fi.Size()
	}

	return load(bufio.NewReader(file), opts, limit)
}

// Load decodes a container. The stream is trusted: records are taken as
// written, and in bitmap mode the occupancy is rebuilt from them.
func Load(r io.Reader, opts *Options) (*Volume, error) {
	return load(r, opts, -1)
}

// load decodes a container of at most limit bytes. A negative limit means
// the length is unknown.
func load(r io.Reader, opts *Options, limit int64) (*Volume, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	order := opts.byteOrder()

	var hdr header
	if err := binary.Read(r, order, &hdr); err != nil {
		return nil, readError("header", err)
	}

	if hdr.TotalSize < 0 || hdr.BlockSize <= 0 || hdr.FileCount < 0 {
		return nil, fmt.Errorf("%w: bad header (size %d, block size %d, files %d)",
			ErrCorruptOrTruncated, hdr.TotalSize, hdr.BlockSize, hdr.FileCount)
	}

	if limit >= 0 {
		want := int64(HeaderSize) + int64(hdr.FileCount)*DirectoryEntrySize + int64(hdr.TotalSize)
		if want > limit {
			return nil, fmt.Errorf("%w: header describes %d bytes, container holds %d",
				ErrCorruptOrTruncated, want, limit)
		}
	}

	// Records are read one by one so a corrupt count fails on the short
	// stream instead of on a huge allocation.
	var entries []DirectoryEntry
	for i := 0; i < int(hdr.FileCount); i++ {
		var rec record
		if err := binary.Read(r, order, &rec); err != nil {
			return nil, readError(fmt.Sprintf("directory record %d", i), err)
		}
		entries = append(entries, DirectoryEntry{
			Name:       decodeName(rec.Name[:]),
			Size:       int(rec.Size),
			StartBlock: int(rec.StartBlock),
		})
	}

	v, err := newVolume(int(hdr.TotalSize), int(hdr.BlockSize), &Options{
		Occupancy: opts.Occupancy,
		ByteOrder: order,
		MaxSize:   opts.MaxSize,
	})
	if err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(r, v.data); err != nil {
		return nil, readError("data", err)
	}

	v.directory.entries = entries
	if v.occupancy == OccupancyBitmap {
		for _, e := range entries {
			v.alloc.MarkUsed(e.StartBlock, e.Size)
		}
	}

	return v, nil
}

// decodeName stops at the first NUL
func decodeName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: stream ends inside %s", ErrCorruptOrTruncated, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
