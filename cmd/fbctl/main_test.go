package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/frontblock/errs"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeKeys(t *testing.T, dir string, keys []string) string {
	t.Helper()

	path := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(keys, "\n")+"\n"), 0o600))

	return path
}

func numberedKeys(format string, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf(format, i)
	}

	return keys
}

func TestBuildAndInspect(t *testing.T) {
	dir := t.TempDir()
	keys := []string{"cluster.node03.cpu", "cluster.node01.cpu", "cluster.node02.cpu", "cluster.node01.mem"}
	input := writeKeys(t, dir, keys)
	output := filepath.Join(dir, "keys.fb")

	_, stderr, err := runCLI(t, nil, "build", "-i", input, "-o", output, "--compression", "zstd", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, stderr, "built block")
	require.Contains(t, stderr, "grew prefix")

	t.Run("Dump", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "dump", output)
		require.NoError(t, err)
		require.Equal(t, "cluster.node01.cpu\ncluster.node01.mem\ncluster.node02.cpu\ncluster.node03.cpu\n", out)
	})

	t.Run("Dump hex", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "dump", "--hex", output)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "636c7573746572"))
	})

	t.Run("Stats", func(t *testing.T) {
		out, _, err := runCLI(t, nil, "stats", output)
		require.NoError(t, err)
		require.Regexp(t, `compression:\s+Zstd\n`, out)
		require.Regexp(t, `length:\s+4\n`, out)
		require.Regexp(t, `capacity:\s+4096\n`, out)
		require.Regexp(t, `prefix:\s+"cluster.node0"\n`, out)
		require.Regexp(t, `reclaimable size:\s+0\n`, out)
	})

	t.Run("Find", func(t *testing.T) {
		for _, search := range []string{"linear", "binary"} {
			out, _, err := runCLI(t, nil, "find", "--search", search, output, "cluster.node02.cpu")
			require.NoError(t, err)
			require.Equal(t, "found at position 2\n", out)

			out, _, err = runCLI(t, nil, "find", "--search", search, output, "cluster.node01.disk")
			require.NoError(t, err)
			require.Equal(t, "not found, would insert at position 1\n", out)
		}

		out, _, err := runCLI(t, nil, "find", output, "host01")
		require.NoError(t, err)
		require.Contains(t, out, "does not share prefix")
	})
}

func TestBuild_Stdio(t *testing.T) {
	img, _, err := runCLI(t, []byte("b\n\na\r\nc\n"), "build", "--compression", "lz4", "--endian", "big")
	require.NoError(t, err)

	out, _, err := runCLI(t, []byte(img), "dump", "-")
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\n", out)

	out, _, err = runCLI(t, []byte(img), "stats", "-")
	require.NoError(t, err)
	require.Regexp(t, `byte order:\s+big\n`, out)
}

func TestBuild_EnvironmentOverride(t *testing.T) {
	t.Setenv("FBCTL_BLOCK_CAPACITY", "64")

	input := writeKeys(t, t.TempDir(), numberedKeys("prefix-%03d", 100))
	_, _, err := runCLI(t, nil, "build", "-i", input, "-o", filepath.Join(t.TempDir(), "out.fb"))
	require.ErrorIs(t, err, errs.ErrBlockFull)
	require.Contains(t, err.Error(), "of 100 keys")
}

func TestBuild_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "fbctl.yaml")
	require.NoError(t, os.WriteFile(config, []byte("block:\n  capacity: 512\nsnapshot:\n  compression: s2\n"), 0o600))

	input := writeKeys(t, dir, numberedKeys("prefix-%03d", 40))
	output := filepath.Join(dir, "out.fb")

	_, _, err := runCLI(t, nil, "build", "--config", config, "-i", input, "-o", output)
	require.NoError(t, err)

	out, _, err := runCLI(t, nil, "stats", output)
	require.NoError(t, err)
	require.Regexp(t, `compression:\s+S2\n`, out)
	require.Regexp(t, `capacity:\s+512\n`, out)
	require.Regexp(t, `length:\s+40\n`, out)

	// flags take precedence over the config file
	_, _, err = runCLI(t, nil, "build", "--config", config, "--compression", "none", "-i", input, "-o", output)
	require.NoError(t, err)

	out, _, err = runCLI(t, nil, "stats", output)
	require.NoError(t, err)
	require.Regexp(t, `compression:\s+None\n`, out)
}

func TestCLI_Errors(t *testing.T) {
	input := writeKeys(t, t.TempDir(), []string{"a"})

	_, _, err := runCLI(t, nil, "build", "-i", input, "--compression", "brotli")
	require.ErrorContains(t, err, "snapshot.compression")

	_, _, err = runCLI(t, nil, "build", "-i", input, "--endian", "middle")
	require.ErrorContains(t, err, "block.endian")

	_, _, err = runCLI(t, nil, "build", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "-i", input)
	require.ErrorContains(t, err, "failed to read config file")

	_, _, err = runCLI(t, []byte("not a snapshot"), "dump", "-")
	require.ErrorIs(t, err, errs.ErrInvalidSnapshotSize)

	_, _, err = runCLI(t, nil, "dump")
	require.Error(t, err)
}
