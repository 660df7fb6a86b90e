// file: pkg/diskimg/writer.go

package diskimg

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveToFile writes the volume to filename. The container is written to a
// temporary file in the same directory and renamed over the target, so a
// failed save never leaves a half-written container behind.
func (v *Volume) SaveToFile(filename string) error {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestUnwritable, filename, err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrDestUnwritable, filename, err)
	}

	bw := bufio.NewWriter(tmp)
	if err := v.Save(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(containerMode(filename)); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrDestUnwritable, filename, err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrDestUnwritable, filename, err)
	}

	return nil
}

// containerMode keeps the permissions of an existing container
func containerMode(filename string) os.FileMode {
	if fi, err := os.Stat(filename); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return 0o644
}

// Save encodes the volume: header, directory records, then the data buffer
func (v *Volume) Save(w io.Writer) error {
	order := v.byteOrder

	hdr := header{
		TotalSize: int32(v.totalSize),
		BlockSize: int32(v.blockSize),
		FileCount: int32(v.directory.Len()),
	}
	if err := binary.Write(w, order, &hdr); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range v.directory.entries {
		rec := record{
			Size:       int32(e.Size),
			StartBlock: int32(e.StartBlock),
		}
		copy(rec.Name[:], e.Name)
		if err := binary.Write(w, order, &rec); err != nil {
			return fmt.Errorf("failed to write directory record %s: %w", e.Name, err)
		}
	}

	if _, err := w.Write(v.data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return nil
}

// EncodedSize returns the number of bytes Save writes
func (v *Volume) EncodedSize() int {
	return HeaderSize + v.directory.Len()*DirectoryEntrySize + v.totalSize
}
