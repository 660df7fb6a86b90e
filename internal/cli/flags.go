// file: internal/cli/flags.go

package cli

import (
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/ha1tch/vd/pkg/disk"
	"github.com/ha1tch/vd/pkg/diskimg"
	"github.com/spf13/pflag"
)

// byteOrderValue is a pflag.Value accepting native, little or big
type byteOrderValue struct {
	name  string
	order binary.ByteOrder
}

var _ pflag.Value = (*byteOrderValue)(nil)

func (b *byteOrderValue) String() string {
	if b.name == "" {
		return "native"
	}
	return b.name
}

func (b *byteOrderValue) Set(s string) error {
	order, err := diskimg.ParseByteOrder(s)
	if err != nil {
		return err
	}
	b.name = strings.ToLower(strings.TrimSpace(s))
	if b.name == "native" {
		// Leave the order unset so new volumes follow the host
		order = nil
	}
	b.order = order
	return nil
}

func (b *byteOrderValue) Type() string {
	return "order"
}

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	legacyOccupancy bool
	byteOrder       byteOrderValue
	maxSize         int
	quiet           bool
	verbose         bool
	noColor         bool
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&g.legacyOccupancy, "legacy-occupancy", false, "treat blocks whose first byte is zero as free, as older vd releases did")
	fs.Var(&g.byteOrder, "byte-order", "integer byte order of the container: native, little or big")
	fs.IntVar(&g.maxSize, "max-size", 0, "refuse to allocate volumes larger than this many bytes (0 = no limit)")
	fs.BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "log session failures to stderr")
	fs.BoolVar(&g.noColor, "no-color", false, "disable colored output")
}

// config builds the session configuration from the flags
func (g *globalFlags) config(logOut io.Writer) disk.Config {
	cfg := disk.DefaultConfig()
	if g.legacyOccupancy {
		cfg.Occupancy = diskimg.OccupancySentinel
	}
	cfg.ByteOrder = g.byteOrder.order
	cfg.MaxSize = g.maxSize
	cfg.LogWriter = io.Discard
	if g.verbose {
		cfg.LogWriter = logOut
		if cfg.LogWriter == nil {
			cfg.LogWriter = os.Stderr
		}
	}
	return cfg
}
