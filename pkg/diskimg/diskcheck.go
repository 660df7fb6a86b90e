// file: pkg/diskimg/diskcheck.go

package diskimg

import (
	"fmt"

	"github.com/ha1tch/vd/internal"
)

// Check performs a consistency check of the volume and returns every problem
// found. A volume built only through AddFile and RemoveFile in bitmap mode
// always checks clean; decoded containers may not.
func (v *Volume) Check() []error {
	var errs []error

	errs = append(errs, v.checkGeometry()...)
	errs = append(errs, v.checkDirectoryEntries()...)
	errs = append(errs, v.checkBlockAllocation()...)

	return errs
}

func (v *Volume) checkGeometry() []error {
	if v.totalSize%v.blockSize != 0 {
		return []error{&ValidationError{
			Field:   "Header.TotalSize",
			Message: fmt.Sprintf("size %d is not divisible by block size %d", v.totalSize, v.blockSize),
		}}
	}
	return nil
}

// checkDirectoryEntries validates names and record bounds
func (v *Volume) checkDirectoryEntries() []error {
	var errs []error
	seen := make(map[string]int, v.directory.Len())

	for i, e := range v.directory.entries {
		field := fmt.Sprintf("Directory[%d]", i)

		if err := ValidateName(e.Name); err != nil {
			errs = append(errs, &ValidationError{Field: field + ".Name", Message: err.Error()})
		}
		if prev, ok := seen[e.Name]; ok {
			errs = append(errs, &ValidationError{
				Field:   field + ".Name",
				Message: fmt.Sprintf("duplicate of Directory[%d] (%q)", prev, e.Name),
			})
		} else {
			seen[e.Name] = i
		}

		if _, _, err := v.extent(e); err != nil {
			errs = append(errs, &ValidationError{Field: field, Message: err.Error()})
		}
	}

	return errs
}

// checkBlockAllocation looks for blocks claimed by more than one record and
// for disagreement between the records and the allocator
func (v *Volume) checkBlockAllocation() []error {
	var errs []error
	owner := make([]int, v.BlockCount())
	for i := range owner {
		owner[i] = -1
	}

	for i, e := range v.directory.entries {
		first, last, ok := internal.BlockSpan(e.StartBlock, e.Size, v.blockSize)
		if !ok {
			continue
		}
		// Out of range parts were already reported with the record
		first, last = clamp(first, 0, len(owner)), clamp(last, -1, len(owner)-1)
		for b := first; b <= last; b++ {
			if owner[b] >= 0 {
				errs = append(errs, &ValidationError{
					Field: fmt.Sprintf("Block[%d]", b),
					Message: fmt.Sprintf("allocated to both %q and %q",
						v.directory.entries[owner[b]].Name, e.Name),
				})
				continue
			}
			owner[b] = i
		}
	}

	for b, o := range owner {
		free := v.alloc.IsBlockFree(b)
		switch {
		case o >= 0 && free:
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("Block[%d]", b),
				Message: fmt.Sprintf("holds %q but reads as free", v.directory.entries[o].Name),
			})
		case o < 0 && !free:
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("Block[%d]", b),
				Message: "marked used but no file owns it",
			})
		}
	}

	return errs
}
