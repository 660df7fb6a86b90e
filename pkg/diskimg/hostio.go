// file: pkg/diskimg/hostio.go

package diskimg

import (
	"fmt"
	"io"
	"math"
	"os"
)

// CopyIn reads a host file and stores it under destName
func (v *Volume) CopyIn(hostPath string, destName string) error {
	content, err := readHostFile(hostPath)
	if err != nil {
		return err
	}

	return v.AddFile(destName, content)
}

// CopyOut writes the content of srcName to a host file, creating or
// truncating it
func (v *Volume) CopyOut(srcName string, hostPath string) error {
	content, err := v.ReadFile(srcName)
	if err != nil {
		return err
	}

	if err := os.WriteFile(hostPath, content, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDestUnwritable, hostPath, err)
	}

	return nil
}

// readHostFile buffers a whole host file in memory
func readHostFile(hostPath string) ([]byte, error) {
	src, err := os.Open(hostPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, hostPath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, hostPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnreadable, hostPath)
	}

	// Pipes and devices report no size
	if !info.Mode().IsRegular() {
		content, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, hostPath, err)
		}
		return content, nil
	}

	if info.Size() > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrAllocation, hostPath, info.Size())
	}

	content, err := allocBuffer(int(info.Size()))
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(src, content); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, hostPath, err)
	}

	return content, nil
}
