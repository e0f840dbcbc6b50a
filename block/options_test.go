package block

import (
	"bytes"
	"testing"

	"github.com/arloliu/frontblock/endian"
	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
	"github.com/arloliu/frontblock/internal/options"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func reverseCompare(a, b []byte) int {
	return bytes.Compare(b, a)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, endian.GetNativeEngine(), cfg.Engine())
	require.Equal(t, format.SearchLinear, cfg.SearchMode())
	require.Nil(t, cfg.logger)
	require.Negative(t, cfg.compare([]byte("a"), []byte("b")))
}

func TestConfig_OptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"Nil comparator", WithComparator(nil), errs.ErrNilComparator},
		{"Unknown search mode", WithSearchMode(format.SearchMode(7)), errs.ErrInvalidSearchMode},
		{"Nil engine", WithEndianEngine(nil), errs.ErrNilEndianEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig()
			require.ErrorIs(t, options.Apply(cfg, tt.opt), tt.want)

			// a rejected option leaves the defaults in place
			require.Equal(t, endian.GetNativeEngine(), cfg.Engine())
			require.Equal(t, format.SearchLinear, cfg.SearchMode())
			require.NotNil(t, cfg.compare)
		})
	}
}

func TestConfig_OptionsRoundTrip(t *testing.T) {
	logger, _ := test.NewNullLogger()

	src := newConfig()
	require.NoError(t, options.Apply(src,
		WithBigEndian(),
		WithComparator(reverseCompare),
		WithSearchMode(format.SearchBinary),
		WithLogger(logger),
	))

	dst := newConfig()
	require.NoError(t, options.Apply(dst, src.Options()...))

	require.Equal(t, endian.GetBigEndianEngine(), dst.Engine())
	require.Equal(t, format.SearchBinary, dst.SearchMode())
	require.Same(t, logger, dst.logger)
	require.Positive(t, dst.compare([]byte("a"), []byte("b")))

	t.Run("Reopen with copied options", func(t *testing.T) {
		b, err := New(make([]byte, 64), src.Options()...)
		require.NoError(t, err)
		insertAll(t, b, "a", "c", "b")
		require.Equal(t, []string{"c", "b", "a"}, keysOf(b))

		header := *b.Header()
		reopened, err := Open(&header, bytes.Clone(b.Data()), b.Config().Options()...)
		require.NoError(t, err)
		require.NoError(t, reopened.Validate())
		pos, err := reopened.Find([]byte("b"))
		require.NoError(t, err)
		require.Equal(t, 1, pos)
	})
}

func TestConfig_ByteOrderOptions(t *testing.T) {
	cfg := newConfig()

	require.NoError(t, options.Apply(cfg, WithLittleEndian()))
	require.Equal(t, endian.GetLittleEndianEngine(), cfg.Engine())

	require.NoError(t, options.Apply(cfg, WithBigEndian()))
	require.Equal(t, endian.GetBigEndianEngine(), cfg.Engine())

	require.NoError(t, options.Apply(cfg, WithNativeEndian()))
	require.Equal(t, endian.GetNativeEngine(), cfg.Engine())
}
