// file: cmd/info/info.go

package info

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ha1tch/vd/pkg/disk"
	"github.com/ha1tch/vd/pkg/diskimg"
)

// DiskInfo represents disk information in a structured format
type DiskInfo struct {
	Path       string    `json:"path"`
	Occupancy  string    `json:"occupancy"`
	ByteOrder  string    `json:"byte_order"`
	Files      int       `json:"files"`
	BlockSize  int       `json:"block_size"`
	Blocks     int       `json:"blocks"`
	UsedSpace  int       `json:"used_space"`
	FreeSpace  int       `json:"free_space"`
	TotalSpace int       `json:"total_space"`
	Modified   time.Time `json:"modified_time,omitempty"`
	Validation []string  `json:"validation_issues,omitempty"`
}

// InfoOptions configures the information display
type InfoOptions struct {
	Config   disk.Config
	JSON     bool      // Output in JSON format
	Verbose  bool      // Show additional details
	Validate bool      // Perform disk validation
	Quiet    bool      // Suppress non-error output
	Out      io.Writer // Destination of the report
}

// DefaultInfoOptions returns default options for Info
func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		Config:   disk.DefaultConfig(),
		JSON:     false,
		Verbose:  false,
		Validate: true,
		Quiet:    false,
		Out:      os.Stdout,
	}
}

// Info displays information about a virtual disk
func Info(diskPath string, opts *InfoOptions) error {
	if opts == nil {
		opts = DefaultInfoOptions()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	info := Describe(d.Volume(), opts.Validate)
	info.Path = diskPath

	// Get file modification time
	if stat, err := os.Stat(diskPath); err == nil {
		info.Modified = stat.ModTime()
	}

	if opts.JSON {
		return outputJSON(opts.Out, info)
	}
	if opts.Quiet && len(info.Validation) == 0 {
		return nil
	}
	return Write(opts.Out, info, opts.Verbose)
}

// Describe summarises a volume. Validation issues are collected when validate is set.
func Describe(v *diskimg.Volume, validate bool) *DiskInfo {
	info := &DiskInfo{
		Occupancy:  v.Occupancy().String(),
		ByteOrder:  byteOrderName(v.ByteOrder()),
		Files:      v.FileCount(),
		BlockSize:  v.BlockSize(),
		Blocks:     v.BlockCount(),
		FreeSpace:  v.AvailableSpace(),
		TotalSpace: v.TotalSize(),
	}
	info.UsedSpace = info.TotalSpace - info.FreeSpace

	if validate {
		for _, err := range v.Check() {
			info.Validation = append(info.Validation, err.Error())
		}
	}

	return info
}

func byteOrderName(order binary.ByteOrder) string {
	switch order {
	case binary.LittleEndian:
		return "little"
	case binary.BigEndian:
		return "big"
	default:
		return order.String()
	}
}

// outputJSON writes disk information in JSON format
func outputJSON(w io.Writer, info *DiskInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

// Write prints disk information in human-readable format
func Write(w io.Writer, info *DiskInfo, verbose bool) error {
	if info.Path != "" {
		fmt.Fprintf(w, "Disk Image: %s\n\n", info.Path)
	}
	fmt.Fprintf(w, "Files:      %d\n", info.Files)
	fmt.Fprintf(w, "Used:       %d B\n", info.UsedSpace)
	fmt.Fprintf(w, "Free:       %d B\n", info.FreeSpace)
	fmt.Fprintf(w, "Total:      %d B\n", info.TotalSpace)

	if !info.Modified.IsZero() {
		fmt.Fprintf(w, "Modified:   %s\n", info.Modified.Format(time.RFC1123))
	}

	if verbose {
		fmt.Fprintf(w, "\nDisk Parameters:\n")
		fmt.Fprintf(w, "Block Size: %d bytes\n", info.BlockSize)
		fmt.Fprintf(w, "Blocks:     %d\n", info.Blocks)
		fmt.Fprintf(w, "Occupancy:  %s\n", info.Occupancy)
		fmt.Fprintf(w, "Byte Order: %s\n", info.ByteOrder)
	}

	if len(info.Validation) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range info.Validation {
			fmt.Fprintf(w, "- %s\n", warning)
		}
	}

	return nil
}
