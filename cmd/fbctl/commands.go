package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/arloliu/frontblock"
	"github.com/arloliu/frontblock/block"
	"github.com/arloliu/frontblock/errs"
	"github.com/arloliu/frontblock/snapshot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) newBuildCmd() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a block snapshot from newline-separated keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys, err := readKeys(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}

			opts, err := a.cfg.Block.Options(a.logger)
			if err != nil {
				return err
			}
			encOpts, err := a.cfg.Snapshot.Options()
			if err != nil {
				return err
			}

			b, stored, err := frontblock.FromKeys(a.cfg.Block.Capacity, keys, opts...)
			if err != nil {
				return fmt.Errorf("stored %d of %d keys: %w", stored, len(keys), err)
			}
			if a.cfg.Block.Grow {
				b.GrowPrefix()
			}

			img, err := frontblock.Marshal(b, encOpts...)
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), output, img); err != nil {
				return err
			}

			stats := b.Stats()
			a.logger.WithFields(logrus.Fields{
				"keys":        stored,
				"prefix_size": stats.PrefixSize,
				"used":        stats.UsedSize,
				"capacity":    stats.Capacity,
				"image_size":  len(img),
			}).Info("built block")

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "Key list file, one key per line (default stdin)")
	flags.StringVarP(&output, "output", "o", "", "Snapshot output file (default stdout)")
	flags.Int("capacity", DefaultCapacity, "Block capacity in bytes")
	flags.String("endian", DefaultEndian, "Index byte order (native, little, big)")
	flags.Bool("grow", DefaultGrow, "Grow the shared prefix after inserting all keys")
	flags.String("compression", DefaultCompression, "Snapshot compression (none, zstd, s2, lz4)")
	flags.Bool("compact", DefaultCompact, "Vacuumize before encoding")

	a.bind(flags, KeyBlockCapacity, "capacity")
	a.bind(flags, KeyBlockEndian, "endian")
	a.bind(flags, KeyBlockGrow, "grow")
	a.bind(flags, KeySnapshotCompression, "compression")
	a.bind(flags, KeySnapshotCompact, "compact")

	return cmd
}

func (a *app) newDumpCmd() *cobra.Command {
	var asHex bool

	cmd := &cobra.Command{
		Use:   "dump <snapshot>",
		Short: "Print every key of a snapshot in sorted order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := a.openSnapshot(cmd, args[0])
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, key := range b.All() {
				if asHex {
					_, _ = fmt.Fprintln(w, hex.EncodeToString(key))
				} else {
					_, _ = fmt.Fprintf(w, "%s\n", key)
				}
			}

			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asHex, "hex", false, "Print keys hex-encoded")

	return cmd
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <snapshot>",
		Short: "Print the header and space accounting of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, img, err := a.openSnapshot(cmd, args[0])
			if err != nil {
				return err
			}

			header, err := snapshot.DecodeHeader(img)
			if err != nil {
				return err
			}

			byteOrder := "little"
			if header.Flag.IsBigEndian() {
				byteOrder = "big"
			}

			stats := b.Stats()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "image size:\t%d\n", len(img))
			_, _ = fmt.Fprintf(w, "compression:\t%s\n", header.Flag.GetCompression())
			_, _ = fmt.Fprintf(w, "byte order:\t%s\n", byteOrder)
			_, _ = fmt.Fprintf(w, "checksum:\t%#016x\n", header.Checksum)
			_, _ = fmt.Fprintf(w, "length:\t%d\n", stats.Length)
			_, _ = fmt.Fprintf(w, "capacity:\t%d\n", stats.Capacity)
			_, _ = fmt.Fprintf(w, "prefix:\t%q\n", b.Prefix())
			_, _ = fmt.Fprintf(w, "used size:\t%d\n", stats.UsedSize)
			_, _ = fmt.Fprintf(w, "free size:\t%d\n", stats.FreeSize)
			_, _ = fmt.Fprintf(w, "reclaimable size:\t%d\n", stats.ReclaimableSize)
			_, _ = fmt.Fprintf(w, "uncompressed size:\t%d\n", stats.UncompressedSize)

			return w.Flush()
		},
	}
}

func (a *app) newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <snapshot> <key>",
		Short: "Look up a key in a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := a.openSnapshot(cmd, args[0])
			if err != nil {
				return err
			}

			key := []byte(args[1])
			pos, err := b.Find(key)
			switch {
			case err == nil:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "found at position %d\n", pos)
			case errors.Is(err, errs.ErrNotFound):
				lower, _ := b.FindLowerBound(key)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "not found, would insert at position %d\n", lower)
			case errors.Is(err, errs.ErrNeedsReencode):
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "not found, key does not share prefix %q\n", b.Prefix())
			default:
				return err
			}

			return nil
		},
	}
	cmd.Flags().String("search", DefaultSearch, "Lookup strategy (linear, binary)")
	a.bind(cmd.Flags(), KeyBlockSearch, "search")

	return cmd
}

// openSnapshot reads and decodes a snapshot file; "-" reads stdin.
func (a *app) openSnapshot(cmd *cobra.Command, path string) (*block.Block, []byte, error) {
	img, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return nil, nil, err
	}

	opts, err := a.cfg.Block.Options(a.logger)
	if err != nil {
		return nil, nil, err
	}

	b, err := frontblock.Unmarshal(img, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	a.logger.WithFields(logrus.Fields{"path": path, "length": b.Length()}).Debug("opened snapshot")

	return b, img, nil
}

// readKeys reads one key per line. Empty lines are skipped.
func readKeys(stdin io.Reader, path string) ([][]byte, error) {
	data, err := readInput(stdin, path)
	if err != nil {
		return nil, err
	}

	var keys [][]byte
	for line := range bytes.Lines(data) {
		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			continue
		}
		keys = append(keys, line)
	}

	return keys, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint: gosec
}
