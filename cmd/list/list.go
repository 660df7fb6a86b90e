// file: cmd/list/list.go

package list

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ha1tch/vd/pkg/disk"
	"github.com/ha1tch/vd/pkg/diskimg"
)

// FileEntry represents a file in the directory listing
type FileEntry struct {
	Name       string `json:"name"`
	Size       int    `json:"size"`
	OnDiskSize int    `json:"on_disk_size"`
	StartBlock int    `json:"start_block"`
}

// ListOptions configures the directory listing
type ListOptions struct {
	Config  disk.Config
	JSON    bool      // Output in JSON format
	Sort    string    // Sort order: "" keeps directory order, or name, size
	Reverse bool      // Reverse sort order
	Pattern string    // Filter by filename pattern
	Out     io.Writer // Destination of the listing
}

// DefaultListOptions returns default options for List
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		Config:  disk.DefaultConfig(),
		JSON:    false,
		Sort:    "",
		Reverse: false,
		Pattern: "*",
		Out:     os.Stdout,
	}
}

// List displays the directory of a virtual disk
func List(diskPath string, opts *ListOptions) error {
	if opts == nil {
		opts = DefaultListOptions()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	files, err := Collect(d.Volume(), opts)
	if err != nil {
		return err
	}

	if opts.JSON {
		return outputJSON(opts.Out, files)
	}
	return Write(opts.Out, files)
}

// Collect walks the directory of v and applies the filter and sort options
func Collect(v *diskimg.Volume, opts *ListOptions) ([]FileEntry, error) {
	var files []FileEntry
	it := v.List()
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		matched, err := matchesPattern(e.Name, opts.Pattern)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}

		entry, err := v.Stat(e.Name)
		if err != nil {
			return nil, err
		}
		files = append(files, FileEntry{
			Name:       e.Name,
			Size:       e.Size,
			OnDiskSize: e.OnDiskSize,
			StartBlock: entry.StartBlock,
		})
	}

	sortFiles(files, opts)
	return files, nil
}

func matchesPattern(name, pattern string) (bool, error) {
	if pattern == "" || pattern == "*" {
		return true, nil
	}
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return false, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return matched, nil
}

func sortFiles(files []FileEntry, opts *ListOptions) {
	var less func(i, j int) bool
	switch strings.ToLower(opts.Sort) {
	case "size":
		less = func(i, j int) bool { return files[i].Size < files[j].Size }
	case "name":
		less = func(i, j int) bool { return files[i].Name < files[j].Name }
	default:
		// Directory order
		if opts.Reverse {
			for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
				files[i], files[j] = files[j], files[i]
			}
		}
		return
	}

	if opts.Reverse {
		sort.SliceStable(files, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(files, less)
}

func outputJSON(w io.Writer, files []FileEntry) error {
	if files == nil {
		files = []FileEntry{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}

// Write prints a listing in text form
func Write(w io.Writer, files []FileEntry) error {
	fmt.Fprintln(w, "Directory contents:")
	for _, file := range files {
		fmt.Fprintf(w, " %s (%d B) [on disk (%d B)]\n", file.Name, file.Size, file.OnDiskSize)
	}
	return nil
}
