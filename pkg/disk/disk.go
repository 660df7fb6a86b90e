// file: pkg/disk/disk.go

package disk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ha1tch/vd/pkg/diskimg"
	"github.com/nnsgmsone/damrey/logger"
)

var (
	// ErrExists is returned by Create when the container file is already there
	ErrExists = errors.New("container already exists")
	// ErrOpen is returned when the container file cannot be opened
	ErrOpen = errors.New("cannot open disk")
)

// Config holds the settings shared by every session
type Config struct {
	Occupancy diskimg.Occupancy // Allocator mode for new and loaded volumes
	ByteOrder binary.ByteOrder  // Container integer encoding, nil means native
	MaxSize   int               // Largest data buffer to allocate, 0 means no extra limit
	LogWriter io.Writer         // Destination of session log lines
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		Occupancy: diskimg.OccupancyBitmap,
		ByteOrder: nil,
		MaxSize:   0,
		LogWriter: os.Stderr,
	}
}

func (cfg Config) options() *diskimg.Options {
	return &diskimg.Options{
		Occupancy: cfg.Occupancy,
		ByteOrder: cfg.ByteOrder,
		MaxSize:   cfg.MaxSize,
	}
}

func (cfg Config) newLog() logger.Log {
	w := cfg.LogWriter
	if w == nil {
		w = io.Discard
	}
	return logger.New(w, "vd")
}

// Disk is a volume loaded from a container file. Every command loads the
// whole container, operates on it in memory and writes it back.
type Disk struct {
	path     string
	vol      *diskimg.Volume
	log      logger.Log
	modified bool
}

// Create builds an empty volume and writes it to path. An existing file is
// only replaced when overwrite is set.
func Create(path string, totalSize, blockSize int, overwrite bool, cfg Config) (*Disk, error) {
	log := cfg.newLog()

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	vol, err := diskimg.NewVolume(totalSize, blockSize, cfg.options())
	if err != nil {
		return nil, err
	}

	d := &Disk{path: path, vol: vol, log: log, modified: true}
	if err := d.Commit(); err != nil {
		return nil, err
	}
	return d, nil
}

// Open loads the container at path
func Open(path string, cfg Config) (*Disk, error) {
	log := cfg.newLog()

	vol, err := diskimg.LoadFromFile(path, cfg.options())
	if err != nil {
		log.Errorf("failed to load %s: %v\n", path, err)
		if errors.Is(err, diskimg.ErrCorruptOrTruncated) || errors.Is(err, diskimg.ErrAllocation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return &Disk{path: path, vol: vol, log: log}, nil
}

// Path returns the container file name
func (d *Disk) Path() string {
	return d.path
}

// Volume returns the in-memory volume
func (d *Disk) Volume() *diskimg.Volume {
	return d.vol
}

// Modified reports whether there are changes not yet written by Commit
func (d *Disk) Modified() bool {
	return d.modified
}

// Update runs fn against the volume and commits if it succeeds. A failed fn
// leaves the container file untouched.
func (d *Disk) Update(fn func(v *diskimg.Volume) error) error {
	if err := fn(d.vol); err != nil {
		return err
	}
	d.modified = true
	return d.Commit()
}

// Commit writes the volume back to its container file
func (d *Disk) Commit() error {
	if !d.modified {
		return nil
	}
	if err := d.vol.SaveToFile(d.path); err != nil {
		d.log.Errorf("failed to save %s: %v\n", d.path, err)
		return err
	}
	d.modified = false
	return nil
}

// AddFile stores a host file on the disk and saves the container
func (d *Disk) AddFile(hostPath, name string) error {
	return d.Update(func(v *diskimg.Volume) error {
		return v.CopyIn(hostPath, name)
	})
}

// RemoveFile deletes a file from the disk and saves the container
func (d *Disk) RemoveFile(name string) error {
	return d.Update(func(v *diskimg.Volume) error {
		return v.RemoveFile(name)
	})
}

// ExtractFile writes a file from the disk to the host. The container is not
// rewritten because nothing in it changes.
func (d *Disk) ExtractFile(name, hostPath string) error {
	return d.vol.CopyOut(name, hostPath)
}
