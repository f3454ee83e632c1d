// Package kmeans partitions a fixed set of 5-dimensional points into k
// clusters with Lloyd's algorithm.
//
// Convergence is exact: an iteration converges only when every recomputed
// centroid is bit-for-bit equal to the centroid it replaced.
package kmeans

import "context"

// HardCluster is the set of training points that belong to one cluster.
type HardCluster []Point

type Clusterer interface {
	Initialize() error

	PerformIteration() (bool, error)

	Run(ctx context.Context, fn func(iteration int)) (Result, error)
}

type HardClusterer interface {
	Guesses() []HardCluster

	Predict(observation Point) (int, error)

	Clusterer
}

var _ HardClusterer = (*Engine)(nil)
