package kmeans

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type state int

const (
	stateUninitialized state = iota
	stateInitialized
	stateIterating
	stateConverged
)

// Result summarizes a call to Run.
type Result struct {
	Iterations int
	Converged  bool
}

// Engine runs Lloyd's algorithm over a borrowed training set.
// It is not safe for concurrent use.
type Engine struct {
	number int

	opts options
	rnd  *rand.Rand
	log  *zap.Logger

	state      state
	iterations int

	// Mapping from training set points to clusters' numbers. -1 before the first assignment.
	a []int

	clusters []*Cluster

	// Training set
	d []Point
}

// New validates k against data and returns an uninitialized Engine.
// data must not be modified while the Engine is in use.
func New(k int, data []Point, opts ...Option) (*Engine, error) {
	if len(data) == 0 {
		return nil, ErrEmptySet
	}

	if k < 1 || k > len(data) {
		return nil, ErrInvalidK
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.capped && o.iterations < 1 {
		return nil, ErrZeroIterations
	}

	if o.workers < 0 {
		return nil, ErrZeroWorkers
	}

	a := make([]int, len(data))
	for i := range a {
		a[i] = -1
	}

	return &Engine{
		number: k,
		opts:   o,
		rnd:    rand.New(rand.NewSource(o.seed)),
		log:    o.logger.With(zap.Int("k", k)),
		a:      a,
		d:      data,
	}, nil
}

// Initialize picks k distinct training points as the initial centroids.
func (e *Engine) Initialize() error {
	if e.state != stateUninitialized {
		return ErrAlreadyInitialized
	}

	var seeds []int

	switch e.opts.sampling {
	case SamplingShuffle:
		seeds = e.rnd.Perm(len(e.d))[:e.number]
	default:
		seeds = e.rejectionSample()
	}

	return e.InitializeFrom(seeds)
}

// InitializeFrom seeds cluster j with the training point at seeds[j].
func (e *Engine) InitializeFrom(seeds []int) error {
	if e.state != stateUninitialized {
		return ErrAlreadyInitialized
	}

	if len(seeds) != e.number {
		return ErrInvalidSeeds
	}

	seen := make(map[int]struct{}, len(seeds))

	for _, s := range seeds {
		if s < 0 || s >= len(e.d) {
			return ErrInvalidSeeds
		}

		if _, ok := seen[s]; ok {
			return ErrInvalidSeeds
		}

		seen[s] = struct{}{}
	}

	clusters := make([]*Cluster, 0, e.number)

	for j, s := range seeds {
		c, err := newCluster(j, e.d, s)
		if err != nil {
			return fmt.Errorf("seeding cluster %d: %w", j, err)
		}

		clusters = append(clusters, c)
	}

	e.clusters = clusters
	e.state = stateInitialized

	e.log.Debug("initialized",
		zap.Int64("seed", e.opts.seed),
		zap.Stringer("sampling", e.opts.sampling),
		zap.Ints("indices", seeds),
	)

	return nil
}

func (e *Engine) rejectionSample() []int {
	var (
		s    = make([]int, 0, e.number)
		seen = make(map[int]struct{}, e.number)
	)

	for len(s) < e.number {
		i := e.rnd.Intn(len(e.d))

		if _, ok := seen[i]; ok {
			continue
		}

		seen[i] = struct{}{}
		s = append(s, i)
	}

	return s
}

// PerformIteration runs one assign-then-update step and reports whether every
// centroid came out exactly equal to its value before the step.
func (e *Engine) PerformIteration() (bool, error) {
	if e.state == stateUninitialized {
		return false, ErrNotInitialized
	}

	// Centroids survive the reset and serve both as assignment targets and as
	// the basis for the convergence check.
	initial := make([]Point, len(e.clusters))

	for j, c := range e.clusters {
		initial[j] = c.Centroid()
		c.ResetMembership()
	}

	if err := e.assign(); err != nil {
		return false, err
	}

	for i, j := range e.a {
		e.clusters[j].AddMember(i)
	}

	converged := !e.reseedEmpty()

	for j, c := range e.clusters {
		m, err := c.RecomputeCentroid()
		if err != nil {
			return false, err
		}

		converged = m.Equals(initial[j]) && converged
	}

	e.iterations++

	if converged {
		e.state = stateConverged
	} else {
		e.state = stateIterating
	}

	e.log.Debug("iteration",
		zap.Int("iteration", e.iterations),
		zap.Bool("converged", converged),
	)

	return converged, nil
}

// Run iterates until convergence, the iteration cap or ctx cancellation.
// fn, if not nil, is called after every iteration with the number of iterations
// the Engine has completed so far. Reaching the cap is not an error: the
// returned Result has Converged set to false.
func (e *Engine) Run(ctx context.Context, fn func(iteration int)) (Result, error) {
	if e.state == stateUninitialized {
		return Result{}, ErrNotInitialized
	}

	var i int

	for ; !e.opts.capped || i < e.opts.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Result{Iterations: i}, err
		}

		done, err := e.PerformIteration()
		if err != nil {
			return Result{Iterations: i}, err
		}

		if fn != nil {
			fn(e.iterations)
		}

		if done {
			return Result{Iterations: i + 1, Converged: true}, nil
		}
	}

	e.log.Warn("iteration cap reached before convergence", zap.Int("iterations", i))

	return Result{Iterations: i}, nil
}

// assign records the nearest cluster of every training point in e.a.
func (e *Engine) assign() error {
	s := numWorkers(len(e.d), e.opts.workers)

	if s == 1 {
		e.nearestRange(rangeJob{a: 0, b: len(e.d)})
		return nil
	}

	var g errgroup.Group
	g.SetLimit(s)

	for _, j := range splitRange(len(e.d), s) {
		g.Go(func() error {
			e.nearestRange(j)
			return nil
		})
	}

	return g.Wait()
}

func (e *Engine) nearestRange(j rangeJob) {
	for i := j.a; i < j.b; i++ {
		e.a[i] = e.nearest(e.d[i])
	}
}

// nearest returns the first cluster, in cluster order, at minimal distance from p.
func (e *Engine) nearest(p Point) int {
	var (
		n int
		d float64
		m = p.DistanceFrom(e.clusters[0].mean)
	)

	for j := 1; j < len(e.clusters); j++ {
		if d = p.DistanceFrom(e.clusters[j].mean); d < m {
			m = d
			n = j
		}
	}

	return n
}

// reseedEmpty applies EmptyClusterReseedFarthest. Each empty cluster takes the
// point farthest from its current centroid whose cluster can spare it.
// It reports whether any cluster was reseeded.
func (e *Engine) reseedEmpty() bool {
	if e.opts.empty != EmptyClusterReseedFarthest {
		return false
	}

	var empty []int

	for j, c := range e.clusters {
		if c.Size() == 0 {
			empty = append(empty, j)
		}
	}

	if len(empty) == 0 {
		return false
	}

	q := newPriorityQueue(len(e.d))

	for i, j := range e.a {
		q.Enqueue(&pItem{
			v: i,
			p: squaredDistance(e.d[i], e.clusters[j].mean),
		})
	}

	// k <= len(e.d) guarantees enough spare points for every empty cluster.
	for _, j := range empty {
		for q.NotEmpty() {
			p := q.Dequeue()
			donor := e.a[p.v]

			if e.clusters[donor].Size() < 2 {
				continue
			}

			e.clusters[donor].removeMember(p.v)
			e.clusters[j].AddMember(p.v)
			e.a[p.v] = j

			e.log.Warn("reseeded empty cluster",
				zap.Int("cluster", j),
				zap.Int("point", p.v),
				zap.Int("donor", donor),
			)

			break
		}
	}

	return true
}

// Predict returns the cluster whose centroid is nearest to p.
func (e *Engine) Predict(p Point) (int, error) {
	if e.state == stateUninitialized {
		return -1, ErrNotInitialized
	}

	return e.nearest(p), nil
}

// Guesses returns the training points of every cluster, in cluster order.
func (e *Engine) Guesses() []HardCluster {
	c := make([]HardCluster, len(e.clusters))

	var wg sync.WaitGroup
	{
		wg.Add(len(e.clusters))
	}

	for j := range e.clusters {
		go func(n int) {
			defer wg.Done()

			b := e.clusters[n].members
			c[n] = make(HardCluster, len(b))

			for k := 0; k < len(b); k++ {
				c[n][k] = e.d[b[k]]
			}
		}(j)
	}

	wg.Wait()

	return c
}

// Assignments returns the cluster number of every training point as of the
// last assignment phase. Seeds of a freshly initialized Engine are not
// reported: every entry is -1 until the first iteration.
func (e *Engine) Assignments() []int {
	a := make([]int, len(e.a))
	copy(a, e.a)
	return a
}

func (e *Engine) Clusters() []*Cluster {
	return e.clusters
}

func (e *Engine) K() int {
	return e.number
}

// Iterations returns the number of completed calls to PerformIteration.
func (e *Engine) Iterations() int {
	return e.iterations
}

func (e *Engine) Converged() bool {
	return e.state == stateConverged
}

func (e *Engine) Seed() int64 {
	return e.opts.seed
}

func (e *Engine) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "KMeansClustering(k:%d, [", len(e.clusters))

	for _, c := range e.clusters {
		b.WriteString(c.String())
		b.WriteByte(',')
	}

	b.WriteString("])")

	return b.String()
}
