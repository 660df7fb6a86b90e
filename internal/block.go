package internal

// BlockOffset converts a block index into a byte offset within a volume's data buffer.
func BlockOffset(index, blockSize int) int {
	return index * blockSize
}

// BlockSpan returns the first and last block touched by size bytes placed at
// the start of block index. A zero-length range touches no block.
func BlockSpan(index, size, blockSize int) (first, last int, ok bool) {
	if size <= 0 || blockSize <= 0 {
		return 0, 0, false
	}
	return index, index + (size-1)/blockSize, true
}

// BlocksNeeded is the number of blocks a range of size bytes occupies.
func BlocksNeeded(size, blockSize int) int {
	if size <= 0 {
		return 0
	}
	return (size + blockSize - 1) / blockSize
}

// RoundedSize is the on-disk size reported in directory listings. It always
// adds one block, even when size is already block aligned.
func RoundedSize(size, blockSize int) int {
	return (size/blockSize + 1) * blockSize
}
