package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockSpan(t *testing.T) {
	tests := []struct {
		name        string
		index, size int
		first, last int
		ok          bool
	}{
		{"empty", 3, 0, 0, 0, false},
		{"single byte", 2, 1, 2, 2, true},
		{"exact block", 0, 16, 0, 0, true},
		{"one over", 0, 17, 0, 1, true},
		{"three blocks", 4, 48, 4, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, ok := BlockSpan(tt.index, tt.size, 16)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.first, first)
				require.Equal(t, tt.last, last)
			}
		})
	}
}

func TestRoundedSize(t *testing.T) {
	require.Equal(t, 32, RoundedSize(20, 16))
	require.Equal(t, 32, RoundedSize(16, 16))
	require.Equal(t, 16, RoundedSize(0, 16))
	require.Equal(t, 2, BlocksNeeded(17, 16))
	require.Equal(t, 0, BlocksNeeded(0, 16))
	require.Equal(t, 48, BlockOffset(3, 16))
}
