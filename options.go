package kmeans

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Sampling selects how Initialize draws seed indices.
type Sampling int

const (
	// SamplingRejection draws uniformly and redraws on collision.
	SamplingRejection Sampling = iota
	// SamplingShuffle takes the first k entries of a random permutation.
	// It picks different seeds than SamplingRejection for the same seed value.
	SamplingShuffle
)

func (s Sampling) String() string {
	switch s {
	case SamplingRejection:
		return "rejection"
	case SamplingShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// EmptyClusterPolicy decides what PerformIteration does with a cluster that
// received no points.
type EmptyClusterPolicy int

const (
	// EmptyClusterFail returns an *EmptyClusterError.
	EmptyClusterFail EmptyClusterPolicy = iota
	// EmptyClusterReseedFarthest moves the point farthest from its centroid
	// into the empty cluster.
	EmptyClusterReseedFarthest
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case EmptyClusterFail:
		return "fail"
	case EmptyClusterReseedFarthest:
		return "reseed"
	default:
		return "unknown"
	}
}

type options struct {
	seed       int64
	workers    int
	iterations int
	capped     bool
	sampling   Sampling
	empty      EmptyClusterPolicy
	logger     *zap.Logger
}

func defaultOptions() options {
	return options{
		seed:    time.Now().UTC().Unix(),
		workers: 1,
		logger:  zap.NewNop(),
	}
}

// Option configures an Engine.
type Option func(*options)

// WithSeed fixes the pseudorandom source used by Initialize.
// The default is the current Unix time.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithWorkers splits the assignment phase across n goroutines.
// 0 picks a number based on the size of the training set.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxIterations caps the number of iterations Run performs. Without it Run
// iterates until convergence.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
		o.capped = true
	}
}

func WithSampling(s Sampling) Option {
	return func(o *options) {
		o.sampling = s
	}
}

func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.empty = p
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ParseSampling maps "rejection" or "shuffle" to a Sampling.
func ParseSampling(s string) (Sampling, error) {
	switch s {
	case "", "rejection":
		return SamplingRejection, nil
	case "shuffle":
		return SamplingShuffle, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSampling, s)
	}
}

// ParseEmptyClusterPolicy maps "fail" or "reseed" to an EmptyClusterPolicy.
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch s {
	case "", "fail":
		return EmptyClusterFail, nil
	case "reseed":
		return EmptyClusterReseedFarthest, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
