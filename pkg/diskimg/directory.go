// file: pkg/diskimg/directory.go

package diskimg

import "fmt"

const (
	// MaxFilenameLength is the width of the name field of a directory record
	MaxFilenameLength = 256
	// DirectoryEntrySize is the encoded size of one directory record
	DirectoryEntrySize = MaxFilenameLength + 4 + 4
)

// DirectoryEntry is one file record of the flat directory
type DirectoryEntry struct {
	Name       string // Unique within the volume
	Size       int    // Content length in bytes
	StartBlock int    // First block holding the content
}

// Directory is the ordered file table of a volume. Order is insertion order;
// removal shifts later records down so there are no gaps.
type Directory struct {
	entries []DirectoryEntry
}

// Find looks for a record by exact name
func (dir *Directory) Find(name string) (int, bool) {
	for i := range dir.entries {
		if dir.entries[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Insert appends a record unless its name is already taken
func (dir *Directory) Insert(entry DirectoryEntry) error {
	if _, ok := dir.Find(entry.Name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, entry.Name)
	}
	dir.entries = append(dir.entries, entry)
	return nil
}

// Remove deletes a record and compacts the table
func (dir *Directory) Remove(name string) (DirectoryEntry, error) {
	idx, ok := dir.Find(name)
	if !ok {
		return DirectoryEntry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	entry := dir.entries[idx]
	dir.entries = append(dir.entries[:idx], dir.entries[idx+1:]...)
	return entry, nil
}

// Len returns the number of records
func (dir *Directory) Len() int {
	return len(dir.entries)
}

// Entry returns the record at position i
func (dir *Directory) Entry(i int) DirectoryEntry {
	return dir.entries[i]
}

// Entries returns a copy of all records in order
func (dir *Directory) Entries() []DirectoryEntry {
	out := make([]DirectoryEntry, len(dir.entries))
	copy(out, dir.entries)
	return out
}
