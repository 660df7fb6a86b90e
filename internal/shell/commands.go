// file: internal/shell/commands.go

package shell

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ha1tch/vd/cmd/blocks"
	"github.com/ha1tch/vd/cmd/info"
	"github.com/ha1tch/vd/cmd/list"
)

// Ls prints the directory, optionally filtered by a glob pattern
func Ls(s *Session, args []string, w io.Writer) error {
	opts := &list.ListOptions{Pattern: "*"}
	if len(args) == 1 {
		opts.Pattern = args[0]
	}

	files, err := list.Collect(s.disk.Volume(), opts)
	if err != nil {
		return err
	}
	return list.Write(w, files)
}

// Blocks prints the block map
func Blocks(s *Session, args []string, w io.Writer) error {
	return blocks.Write(w, s.disk.Volume().BlockMap())
}

// ToDisk copies a host file onto the disk and saves it. The stored name
// defaults to the host file's base name.
func ToDisk(s *Session, args []string, w io.Writer) error {
	dest := filepath.Base(args[0])
	if len(args) == 2 {
		dest = args[1]
	}

	if err := s.disk.AddFile(args[0], dest); err != nil {
		return err
	}
	fmt.Fprintln(w, "File copied successfully!")
	return nil
}

// FromDisk copies a stored file to the host
func FromDisk(s *Session, args []string, w io.Writer) error {
	dest := filepath.Base(args[0])
	if len(args) == 2 {
		dest = args[1]
	}

	if err := s.disk.ExtractFile(args[0], dest); err != nil {
		return err
	}
	fmt.Fprintln(w, "File copied successfully!")
	return nil
}

// Rm removes a stored file and saves the disk
func Rm(s *Session, args []string, w io.Writer) error {
	if err := s.disk.RemoveFile(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(w, "File removed successfully!")
	return nil
}

// Cat streams a stored file to the shell
func Cat(s *Session, args []string, w io.Writer) error {
	f, err := s.disk.OpenFile(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// Info prints geometry and free space
func Info(s *Session, args []string, w io.Writer) error {
	di := info.Describe(s.disk.Volume(), false)
	di.Path = s.disk.Path()
	return info.Write(w, di, true)
}

// Check reports inconsistencies between the directory and block occupancy
func Check(s *Session, args []string, w io.Writer) error {
	problems := s.disk.Volume().Check()
	if len(problems) == 0 {
		fmt.Fprintln(w, "no problems found")
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(w, "- %s\n", p)
	}
	return fmt.Errorf("%d problem(s) found", len(problems))
}
