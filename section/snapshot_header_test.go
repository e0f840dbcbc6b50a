package section

import (
	"testing"

	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFlag(t *testing.T) {
	flag := NewSnapshotFlag()

	require.NoError(t, flag.Validate())
	require.True(t, flag.IsLittleEndian())
	require.Equal(t, uint16(MagicSnapshotV1), flag.GetMagicNumber())
	require.Equal(t, format.CompressionNone, flag.GetCompression())

	flag.WithBigEndian()
	require.True(t, flag.IsBigEndian())
	require.Equal(t, uint16(MagicSnapshotV1), flag.GetMagicNumber())

	flag.WithLittleEndian()
	require.False(t, flag.IsBigEndian())

	flag.SetCompression(format.CompressionLZ4)
	require.Equal(t, format.CompressionLZ4, flag.GetCompression())
	require.NoError(t, flag.Validate())
}

func TestSnapshotFlag_Validate(t *testing.T) {
	t.Run("Invalid magic", func(t *testing.T) {
		flag := SnapshotFlag{Options: 0xEB10, Compression: uint8(format.CompressionNone)}
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidMagicNumber)
	})

	t.Run("Reserved bits set", func(t *testing.T) {
		flag := NewSnapshotFlag()
		flag.Options |= 0x0004
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidHeaderFlags)

		flag = NewSnapshotFlag()
		flag.Reserved = 1
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidHeaderFlags)
	})

	t.Run("Unknown compression", func(t *testing.T) {
		flag := NewSnapshotFlag()
		flag.Compression = 0x09
		require.ErrorIs(t, flag.Validate(), errs.ErrInvalidCompressionType)
	})
}

func TestSnapshotHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		original := SnapshotHeader{
			Flag:        NewSnapshotFlag(),
			Block:       BlockHeader{Capacity: 4096, PrefixSize: 12, Length: 200},
			RawSize:     3000,
			PayloadSize: 1200,
			Checksum:    0xDEADBEEFCAFEBABE,
		}
		original.Flag.SetCompression(format.CompressionZstd)
		if big {
			original.Flag.WithBigEndian()
		}

		data := original.Bytes()
		require.Len(t, data, SnapshotHeaderSize)

		var parsed SnapshotHeader
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, original, parsed)
	}
}

func TestSnapshotHeader_ParseErrors(t *testing.T) {
	var h SnapshotHeader
	require.ErrorIs(t, h.Parse(make([]byte, SnapshotHeaderSize-1)), errs.ErrInvalidSnapshotSize)
	require.ErrorIs(t, h.Parse(make([]byte, SnapshotHeaderSize)), errs.ErrInvalidMagicNumber)
}
