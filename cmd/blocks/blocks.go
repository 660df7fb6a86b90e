// file: cmd/blocks/blocks.go

package blocks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ha1tch/vd/pkg/disk"
	"github.com/ha1tch/vd/pkg/diskimg"
)

// BlocksOptions configures the block map display
type BlocksOptions struct {
	Config disk.Config
	JSON   bool      // Output in JSON format
	Out    io.Writer // Destination of the map
}

// DefaultBlocksOptions returns default options for Blocks
func DefaultBlocksOptions() *BlocksOptions {
	return &BlocksOptions{
		Config: disk.DefaultConfig(),
		JSON:   false,
		Out:    os.Stdout,
	}
}

type blockJSON struct {
	Index        int  `json:"index"`
	Free         bool `json:"free"`
	NonZeroBytes int  `json:"non_zero_bytes"`
}

type mapJSON struct {
	BlockSize     int         `json:"block_size"`
	TotalSize     int         `json:"total_size"`
	OccupiedBytes int         `json:"occupied_bytes"`
	Blocks        []blockJSON `json:"blocks"`
}

// Blocks prints the occupancy of every block of a virtual disk
func Blocks(diskPath string, opts *BlocksOptions) error {
	if opts == nil {
		opts = DefaultBlocksOptions()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	d, err := disk.Open(diskPath, opts.Config)
	if err != nil {
		return err
	}

	bm := d.Volume().BlockMap()
	if opts.JSON {
		return outputJSON(opts.Out, bm)
	}
	return Write(opts.Out, bm)
}

// Write prints a block map in text form
func Write(w io.Writer, bm diskimg.BlockMap) error {
	fmt.Fprintln(w, "Disk block map:")
	for _, b := range bm.Blocks {
		state := "occupied"
		if b.Free {
			state = "free"
		}
		fmt.Fprintf(w, " Block %d: %s (%d B) / (%d B)\n", b.Index, state, b.NonZeroBytes, bm.BlockSize)
	}
	_, err := fmt.Fprintf(w, "Used disk space: %d B / %d B\n", bm.OccupiedBytes, bm.TotalSize)
	return err
}

func outputJSON(w io.Writer, bm diskimg.BlockMap) error {
	out := mapJSON{
		BlockSize:     bm.BlockSize,
		TotalSize:     bm.TotalSize,
		OccupiedBytes: bm.OccupiedBytes,
		Blocks:        make([]blockJSON, len(bm.Blocks)),
	}
	for i, b := range bm.Blocks {
		out.Blocks[i] = blockJSON{Index: b.Index, Free: b.Free, NonZeroBytes: b.NonZeroBytes}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
