package kmeans

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySet           = errors.New("Empty training set")
	ErrInvalidK           = errors.New("Number of clusters must be between 1 and the size of the training set")
	ErrZeroIterations     = errors.New("Number of iterations cannot be less than 1")
	ErrZeroWorkers        = errors.New("Number of workers cannot be negative")
	ErrDivideByZero       = errors.New("divide by zero")
	ErrNotInitialized     = errors.New("You need to initialize the clustering first")
	ErrAlreadyInitialized = errors.New("Clustering is already initialized")
	ErrInvalidSeeds       = errors.New("Seed indices must be k distinct positions in the training set")
	ErrUnknownSampling    = errors.New("Unknown sampling strategy")
	ErrUnknownPolicy      = errors.New("Unknown empty cluster policy")
)

// EmptyClusterError is returned when a cluster received no points during the
// assignment phase and its centroid cannot be recomputed.
//
// It matches ErrDivideByZero under errors.Is.
type EmptyClusterError struct {
	Cluster int
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("cluster %d has no members: %s", e.Cluster, ErrDivideByZero)
}

func (e *EmptyClusterError) Unwrap() error { return ErrDivideByZero }
