package main

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCLI("2")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage: kmeans")

	code, _, _ = runCLI("-nope", "2", "testdata/groups.txt")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("two", "testdata/groups.txt")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("-sampling", "sorted", "2", "testdata/groups.txt")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("-max-iter", "-1", "2", "testdata/groups.txt")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("-workers", "-1", "2", "testdata/groups.txt")
	assert.Equal(t, exitUsage, code)

	code, _, stderr = runCLI("-config", "testdata/negative.toml", "2", "testdata/groups.txt")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := runCLI("2", "testdata/missing.txt")
	assert.Equal(t, exitOpen, code)
	assert.Contains(t, stderr, "Error opening file: testdata/missing.txt")
}

func TestRunInvalidK(t *testing.T) {
	code, stdout, _ := runCLI("5", "testdata/groups.txt")
	assert.Equal(t, exitCluster, code)
	assert.Contains(t, stdout, "Read 4 values.")
}

func TestRunConverges(t *testing.T) {
	code, stdout, _ := runCLI("-seed", "1", "2", "testdata/groups.txt")
	require.Equal(t, exitOK, code)

	assert.Contains(t, stdout, "Using k: 2\n")
	assert.Contains(t, stdout, "Reading data set from: testdata/groups.txt\n")
	assert.Contains(t, stdout, "Done reading data set. Read 4 values.\n")
	assert.Contains(t, stdout, "Initial state (seed = 1)\nKMeansClustering(k:2, [")
	assert.Contains(t, stdout, "Iteration 1\n")
	assert.Contains(t, stdout, "Elapsed microsec: ")
}

func TestRunEmptyClusterPolicy(t *testing.T) {
	code, _, stderr := runCLI("-seed", "1", "2", "testdata/duplicates.txt")
	assert.Equal(t, exitCluster, code)
	assert.Contains(t, stderr, "divide by zero")

	code, stdout, _ := runCLI("-seed", "1", "-empty", "reseed", "-max-iter", "3", "2", "testdata/duplicates.txt")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Cluster(size:1, mean:[0,0,0,0,0]),Cluster(size:1, mean:[0,0,0,0,0]),")
}

func TestRunConfigFile(t *testing.T) {
	code, stdout, _ := runCLI("-config", "testdata/config.toml", "2", "testdata/groups.txt")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Initial state (seed = 7)")

	code, stdout, _ = runCLI("-config", "testdata/config.toml", "-seed", "3", "2", "testdata/groups.txt")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Initial state (seed = 3)")

	code, _, _ = runCLI("-config", "testdata/unknown.toml", "2", "testdata/groups.txt")
	assert.Equal(t, exitUsage, code)
}

func TestResolveConfig(t *testing.T) {
	var (
		f  flags
		fs = flag.NewFlagSet("test", flag.ContinueOnError)
	)

	f.register(fs)
	require.NoError(t, fs.Parse([]string{"-config", "testdata/config.toml", "-workers", "0"}))

	c, err := f.resolve(fs)
	require.NoError(t, err)

	require.NotNil(t, c.Seed)
	assert.Equal(t, int64(7), *c.Seed)
	assert.Equal(t, 0, c.Workers)
	assert.Equal(t, 50, c.MaxIterations)
	assert.Equal(t, "shuffle", c.Sampling)
	assert.Equal(t, "reseed", c.EmptyCluster)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestResolveDefaults(t *testing.T) {
	var (
		f  flags
		fs = flag.NewFlagSet("test", flag.ContinueOnError)
	)

	f.register(fs)
	require.NoError(t, fs.Parse(nil))

	c, err := f.resolve(fs)
	require.NoError(t, err)

	assert.Nil(t, c.Seed)
	assert.Equal(t, defaultConfig(), c)
}
