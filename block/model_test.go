package block

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
	"github.com/arloliu/frontblock/section"
	"github.com/stretchr/testify/require"
)

func randomKey(rng *rand.Rand) []byte {
	const alphabet = "abc"

	key := []byte("user:")
	for range 1 + rng.IntN(6) {
		key = append(key, alphabet[rng.IntN(len(alphabet))])
	}

	return key
}

// sortedModel returns the model keys in block order.
func sortedModel(model map[string]struct{}) []string {
	keys := make([]string, 0, len(model))
	for k := range model {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func requireMatchesModel(t *testing.T, b *Block, model map[string]struct{}) {
	t.Helper()

	require.NoError(t, b.Validate())

	want := sortedModel(model)
	require.Equal(t, len(want), b.Length())
	if len(want) == 0 {
		return
	}
	require.Equal(t, want, keysOf(b))

	total := 0
	for i, k := range want {
		pos, err := b.Find([]byte(k))
		require.NoError(t, err)
		require.Equal(t, i, pos)
		total += len(k)
	}
	require.Equal(t, total, b.UncompressedSize())
	require.LessOrEqual(t, b.UsedSize(), b.Capacity())
}

func TestBlock_RandomOperations(t *testing.T) {
	for _, mode := range searchModes {
		t.Run(mode.String(), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(42, uint64(mode)))
			b := newTestBlock(t, 512, WithSearchMode(mode))
			model := map[string]struct{}{}

			for range 3000 {
				key := randomKey(rng)
				hasPrefix := bytes.HasPrefix(key, b.Prefix())

				switch op := rng.IntN(10); {
				case op < 6:
					_, exists := model[string(key)]
					required := b.UsedSize() + len(key) - b.PrefixSize() + section.IndexEntrySize

					pos, err := b.Insert(key)
					switch {
					case !hasPrefix:
						require.ErrorIs(t, err, errs.ErrNeedsReencode)
					case exists:
						require.ErrorIs(t, err, errs.ErrAlreadyExists)
					case required > b.Capacity() || b.Length() >= section.MaxLength:
						require.ErrorIs(t, err, errs.ErrBlockFull)
					default:
						require.NoError(t, err)
						model[string(key)] = struct{}{}
						require.Equal(t, slices.Index(sortedModel(model), string(key)), pos)
					}

				case op < 9:
					if len(model) > 0 && rng.IntN(2) == 0 {
						keys := sortedModel(model)
						key = []byte(keys[rng.IntN(len(keys))])
						hasPrefix = true
					}
					_, exists := model[string(key)]

					pos, err := b.Delete(key)
					switch {
					case !hasPrefix:
						require.ErrorIs(t, err, errs.ErrNeedsReencode)
					case !exists:
						require.ErrorIs(t, err, errs.ErrNotFound)
					default:
						require.NoError(t, err)
						require.Equal(t, slices.Index(sortedModel(model), string(key)), pos)
						delete(model, string(key))
					}

				default:
					used := b.UsedSize()
					prefixSize := b.PrefixSize()
					if b.Length() >= 8 && rng.IntN(4) == 0 {
						grow := b.GrowPrefix()
						require.Equal(t, prefixSize+grow, b.PrefixSize())
						require.Equal(t, used, b.UsedSize())
					} else {
						compact := b.Stats().CompactSize
						b.Vacuumize()
						require.Equal(t, compact, b.UsedSize())
					}
				}

				requireMatchesModel(t, b, model)
			}
		})
	}
}

func TestSearchModes_Equivalent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	linear := newTestBlock(t, 1024, WithSearchMode(format.SearchLinear))
	binary := newTestBlock(t, 1024, WithSearchMode(format.SearchBinary))

	for range 2000 {
		key := randomKey(rng)

		var posL, posB int
		var errL, errB error
		switch rng.IntN(4) {
		case 0, 1:
			posL, errL = linear.Insert(key)
			posB, errB = binary.Insert(key)
		case 2:
			posL, errL = linear.Delete(key)
			posB, errB = binary.Delete(key)
		default:
			posL, errL = linear.FindLowerBound(key)
			posB, errB = binary.FindLowerBound(key)
		}

		require.Equal(t, posL, posB)
		require.Equal(t, errL, errB)
		require.Equal(t, *linear.Header(), *binary.Header())
		require.True(t, bytes.Equal(linear.Data(), binary.Data()))
	}
}

func BenchmarkBlock_Insert(b *testing.B) {
	keys := numberedKeys("metric.cpu.%04d", 200)
	data := make([]byte, 8192)

	for b.Loop() {
		blk, _ := New(data)
		for _, k := range keys {
			_, _ = blk.Insert([]byte(k))
		}
	}
}

func BenchmarkBlock_Find(b *testing.B) {
	keys := numberedKeys("metric.cpu.%04d", 200)

	for _, mode := range searchModes {
		b.Run(mode.String(), func(b *testing.B) {
			blk := newTestBlock(b, 8192, WithSearchMode(mode))
			insertAll(b, blk, keys...)
			blk.GrowPrefix()
			blk.Vacuumize()

			key := []byte(keys[150])
			for b.Loop() {
				_, _ = blk.Find(key)
			}
		})
	}
}

func BenchmarkBlock_Uncompress(b *testing.B) {
	blk := newTestBlock(b, 8192)
	insertAll(b, blk, numberedKeys("metric.cpu.%04d", 200)...)
	blk.GrowPrefix()

	dst := make([][]byte, blk.Length())
	out := make([]byte, blk.UncompressedSize())

	for b.Loop() {
		_ = blk.Uncompress(dst, out)
	}
}
