package block

import (
	"bytes"
	"fmt"

	"github.com/arloliu/frontblock/endian"
	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/format"
	"github.com/arloliu/frontblock/internal/options"
	"github.com/sirupsen/logrus"
)

// Comparator orders two suffixes. It returns a negative number when a sorts
// before b, zero when they are equal and a positive number otherwise.
//
// Because every stored string shares the block prefix, ordering suffixes
// orders the full keys. A proper prefix must sort before its extensions.
type Comparator func(a, b []byte) int

// DefaultComparator is plain byte-wise comparison; a shorter string sorts
// before any longer string it is a prefix of.
var DefaultComparator Comparator = bytes.Compare

// Config holds the codec settings of a Block.
type Config struct {
	engine  endian.EndianEngine
	compare Comparator
	search  format.SearchMode
	logger  logrus.FieldLogger
}

func newConfig() *Config {
	return &Config{
		engine:  endian.GetNativeEngine(),
		compare: DefaultComparator,
		search:  format.SearchLinear,
	}
}

// Engine returns the byte order of the index table.
func (c *Config) Engine() endian.EndianEngine {
	return c.engine
}

// SearchMode returns the lookup strategy.
func (c *Config) SearchMode() format.SearchMode {
	return c.search
}

// Option is a functional option for configuring a Block.
type Option = options.Option[*Config]

// Options returns options that reproduce this configuration, for opening
// a copy of a block with the same settings.
func (c *Config) Options() []Option {
	return []Option{
		WithEndianEngine(c.engine),
		WithComparator(c.compare),
		WithSearchMode(c.search),
		WithLogger(c.logger),
	}
}

// WithComparator replaces the suffix ordering. The same comparator must be
// used every time a given buffer is opened.
func WithComparator(compare Comparator) Option {
	return options.New(func(c *Config) error {
		if compare == nil {
			return errs.ErrNilComparator
		}
		c.compare = compare

		return nil
	})
}

// WithSearchMode selects linear or binary lookup. Both return identical results.
func WithSearchMode(mode format.SearchMode) Option {
	return options.New(func(c *Config) error {
		switch mode {
		case format.SearchLinear, format.SearchBinary:
			c.search = mode
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidSearchMode, mode)
		}
	})
}

// WithEndianEngine sets the byte order of the index table.
func WithEndianEngine(engine endian.EndianEngine) Option {
	return options.New(func(c *Config) error {
		if engine == nil {
			return errs.ErrNilEndianEngine
		}
		c.engine = engine

		return nil
	})
}

// WithNativeEndian uses the host byte order. This is the default.
func WithNativeEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetNativeEngine()
	})
}

// WithLittleEndian pins the index table to little-endian.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian pins the index table to big-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLogger enables debug logging of space management events.
// A nil logger disables logging.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
	})
}
