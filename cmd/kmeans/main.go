// Command kmeans clusters the points of a data file with Lloyd's algorithm and
// prints the state of the clustering after every iteration.
//
//	kmeans [flags] <k> <tuples_file>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mpraski/kmeans"
)

const (
	exitOK = iota
	exitUsage
	exitOpen
	exitCluster
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		f  flags
		fs = flag.NewFlagSet("kmeans", flag.ContinueOnError)
	)

	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: kmeans [flags] <k> <tuples_file>")
		fs.PrintDefaults()
	}

	f.register(fs)

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := f.resolve(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	log, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer log.Sync()

	opts, err := engineOptions(cfg, log)
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return exitUsage
	}

	k, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		log.Error("invalid k", zap.String("k", fs.Arg(0)), zap.Error(err))
		return exitUsage
	}

	fmt.Fprintf(stdout, "Using k: %d\n", k)

	name := fs.Arg(1)

	file, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening file: %s\n", name)
		return exitOpen
	}
	defer file.Close()

	fmt.Fprintf(stdout, "Reading data set from: %s\n", name)

	data, err := kmeans.NewImporter().ImportReader(file)
	if err != nil {
		log.Error("reading data set", zap.String("file", name), zap.Error(err))
		return exitOpen
	}

	fmt.Fprintf(stdout, "Done reading data set. Read %d values.\n", len(data))

	e, err := kmeans.New(k, data, opts...)
	if err != nil {
		log.Error("creating clustering", zap.Int("points", len(data)), zap.Error(err))
		return exitCluster
	}

	if err = e.Initialize(); err != nil {
		log.Error("initializing clustering", zap.Error(err))
		return exitCluster
	}

	fmt.Fprintf(stdout, "Initial state (seed = %d)\n", e.Seed())
	fmt.Fprintln(stdout, e)

	start := time.Now()

	res, err := e.Run(ctx, func(i int) {
		fmt.Fprintf(stdout, "Iteration %d\n", i)
		fmt.Fprintln(stdout, e)
	})
	if err != nil {
		log.Error("clustering failed", zap.Int("iterations", e.Iterations()), zap.Error(err))
		return exitCluster
	}

	fmt.Fprintf(stdout, "Elapsed microsec: %d\n", time.Since(start).Microseconds())

	if !res.Converged {
		log.Warn("stopped without convergence", zap.Int("iterations", res.Iterations))
	}

	return exitOK
}

func engineOptions(cfg Config, log *zap.Logger) ([]kmeans.Option, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: %d", kmeans.ErrZeroWorkers, cfg.Workers)
	}

	if cfg.MaxIterations < 0 {
		return nil, fmt.Errorf("%w: %d", kmeans.ErrZeroIterations, cfg.MaxIterations)
	}

	s, err := kmeans.ParseSampling(cfg.Sampling)
	if err != nil {
		return nil, err
	}

	p, err := kmeans.ParseEmptyClusterPolicy(cfg.EmptyCluster)
	if err != nil {
		return nil, err
	}

	opts := []kmeans.Option{
		kmeans.WithWorkers(cfg.Workers),
		kmeans.WithSampling(s),
		kmeans.WithEmptyClusterPolicy(p),
		kmeans.WithLogger(log),
	}

	if cfg.Seed != nil {
		opts = append(opts, kmeans.WithSeed(*cfg.Seed))
	}

	if cfg.MaxIterations != 0 {
		opts = append(opts, kmeans.WithMaxIterations(cfg.MaxIterations))
	}

	return opts, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		l,
	)

	return zap.New(core), nil
}
