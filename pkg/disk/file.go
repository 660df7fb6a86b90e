// file: pkg/disk/file.go

package disk

import (
	"io"

	"github.com/ha1tch/vd/pkg/diskimg"
)

// DiskFile reads a file stored on the disk and implements io.Reader
type DiskFile struct {
	vol      *diskimg.Volume
	entry    diskimg.DirectoryEntry
	position int64
}

// OpenFile opens a stored file for reading
func (d *Disk) OpenFile(name string) (*DiskFile, error) {
	entry, err := d.vol.Stat(name)
	if err != nil {
		return nil, err
	}

	return &DiskFile{vol: d.vol, entry: entry}, nil
}

// Name returns the name of the file on the disk
func (f *DiskFile) Name() string {
	return f.entry.Name
}

// Size returns the file length in bytes
func (f *DiskFile) Size() int64 {
	return int64(f.entry.Size)
}

// Read implements io.Reader
func (f *DiskFile) Read(p []byte) (int, error) {
	if f.position >= f.Size() {
		return 0, io.EOF
	}

	n, err := f.vol.ReadFileAt(f.entry.Name, p, f.position)
	f.position += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

// Close releases the file. DiskFile holds no host resources.
func (f *DiskFile) Close() error {
	return nil
}
