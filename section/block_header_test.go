package section

import (
	"testing"

	"github.com/arloliu/frontblock/endian"
	"github.com/arloliu/frontblock/errs"
	"github.com/stretchr/testify/require"
)

func TestNewBlockHeader(t *testing.T) {
	t.Run("Valid capacity", func(t *testing.T) {
		h, err := NewBlockHeader(64)
		require.NoError(t, err)
		require.Equal(t, uint32(64), h.Capacity)
		require.Equal(t, uint16(0), h.PrefixSize)
		require.Equal(t, uint8(0), h.Length)
	})

	t.Run("Capacity at boundaries", func(t *testing.T) {
		_, err := NewBlockHeader(MinCapacity)
		require.NoError(t, err)
		_, err = NewBlockHeader(MaxCapacity)
		require.NoError(t, err)
	})

	t.Run("Capacity out of range", func(t *testing.T) {
		for _, capacity := range []int{-1, 0, MinCapacity - 1, MaxCapacity + 1} {
			h, err := NewBlockHeader(capacity)
			require.ErrorIs(t, err, errs.ErrInvalidCapacity)
			require.Nil(t, h)
		}
	})
}

func TestBlockHeader_IndexBounds(t *testing.T) {
	h := BlockHeader{Capacity: 128, PrefixSize: 3, Length: 2}

	require.Equal(t, 3, h.IndexOffset())
	require.Equal(t, 3+3*IndexEntrySize, h.IndexEnd())
}

func TestBlockHeader_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			original := BlockHeader{Capacity: 0x01020304, PrefixSize: 0x0506, Length: 0x07}

			data := original.Bytes(engine)
			require.Len(t, data, BlockHeaderSize)

			parsed, err := ParseBlockHeader(data, engine)
			require.NoError(t, err)
			require.Equal(t, original, parsed)
		})
	}
}

func TestBlockHeader_ByteLayout(t *testing.T) {
	h := BlockHeader{Capacity: 0x01020304, PrefixSize: 0x0506, Length: 0x07}

	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01, 0x06, 0x05, 0x07}, h.Bytes(endian.GetLittleEndianEngine()))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, h.Bytes(endian.GetBigEndianEngine()))
}

func TestBlockHeader_InvalidSize(t *testing.T) {
	h := BlockHeader{}
	require.ErrorIs(t, h.WriteToSlice(make([]byte, BlockHeaderSize-1), endian.GetNativeEngine()), errs.ErrInvalidHeaderSize)

	_, err := ParseBlockHeader([]byte{1, 2, 3}, endian.GetNativeEngine())
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}
