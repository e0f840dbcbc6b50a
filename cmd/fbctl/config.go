package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arloliu/frontblock/block"
	"github.com/arloliu/frontblock/format"
	"github.com/arloliu/frontblock/snapshot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "FBCTL"

// configuration keys
const (
	KeyBlockCapacity       = "block.capacity"
	KeyBlockEndian         = "block.endian"
	KeyBlockSearch         = "block.search"
	KeyBlockGrow           = "block.grow"
	KeySnapshotCompression = "snapshot.compression"
	KeySnapshotCompact     = "snapshot.compact"
	KeyLogLevel            = "log.level"
)

// default values
const (
	DefaultCapacity    = 4096
	DefaultEndian      = "native"
	DefaultSearch      = "linear"
	DefaultGrow        = true
	DefaultCompression = "none"
	DefaultCompact     = true
	DefaultLogLevel    = "info"
)

// AppConfig is the full fbctl configuration.
type AppConfig struct {
	Block    BlockConfig    `mapstructure:"block"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Log      LogConfig      `mapstructure:"log"`
}

// BlockConfig controls how blocks are built and searched.
type BlockConfig struct {
	Capacity int    `mapstructure:"capacity"` // data buffer size in bytes
	Endian   string `mapstructure:"endian"`   // native, little or big
	Search   string `mapstructure:"search"`   // linear or binary
	Grow     bool   `mapstructure:"grow"`     // grow the prefix after building
}

// SnapshotConfig controls snapshot encoding.
type SnapshotConfig struct {
	Compression string `mapstructure:"compression"` // none, zstd, s2 or lz4
	Compact     bool   `mapstructure:"compact"`     // drop gap bytes from the image
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn or error
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBlockCapacity, DefaultCapacity)
	v.SetDefault(KeyBlockEndian, DefaultEndian)
	v.SetDefault(KeyBlockSearch, DefaultSearch)
	v.SetDefault(KeyBlockGrow, DefaultGrow)
	v.SetDefault(KeySnapshotCompression, DefaultCompression)
	v.SetDefault(KeySnapshotCompact, DefaultCompact)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// loadConfig resolves the configuration from defaults, an optional config
// file, FBCTL_* environment variables and bound flags, in increasing order
// of precedence.
func loadConfig(v *viper.Viper, configPath string) (*AppConfig, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Options translates the block settings into block options.
func (c BlockConfig) Options(logger logrus.FieldLogger) ([]block.Option, error) {
	opts := []block.Option{block.WithLogger(logger)}

	switch c.Endian {
	case "native", "":
		opts = append(opts, block.WithNativeEndian())
	case "little":
		opts = append(opts, block.WithLittleEndian())
	case "big":
		opts = append(opts, block.WithBigEndian())
	default:
		return nil, fmt.Errorf("invalid %s %q", KeyBlockEndian, c.Endian)
	}

	switch c.Search {
	case "linear", "":
		opts = append(opts, block.WithSearchMode(format.SearchLinear))
	case "binary":
		opts = append(opts, block.WithSearchMode(format.SearchBinary))
	default:
		return nil, fmt.Errorf("invalid %s %q", KeyBlockSearch, c.Search)
	}

	return opts, nil
}

// Options translates the snapshot settings into encode options.
func (c SnapshotConfig) Options() ([]snapshot.EncodeOption, error) {
	compression, ok := format.ParseCompressionType(strings.ToLower(c.Compression))
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", KeySnapshotCompression, c.Compression)
	}

	return []snapshot.EncodeOption{
		snapshot.WithCompression(compression),
		snapshot.WithCompact(c.Compact),
	}, nil
}

func newLogger(cfg LogConfig, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        time.DateTime,
		DisableLevelTruncation: true,
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.Warnf("unknown log level %q, using info", cfg.Level)
	}
	logger.SetLevel(level)

	return logger
}
