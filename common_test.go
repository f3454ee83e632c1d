package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueEmptyWhenCreated(t *testing.T) {
	queue := newPriorityQueue(0)
	assert.False(t, queue.NotEmpty())
}

func TestQueueNotEmptyAfterEnqueue(t *testing.T) {
	queue := newPriorityQueue(0)

	queue.Enqueue(&pItem{
		v: 0,
		p: 0.5,
	})

	assert.True(t, queue.NotEmpty())
}

func TestQueueReturnsFarthestFirst(t *testing.T) {
	queue := newPriorityQueue(4)

	for i, p := range []float64{0.5, 2, 0.6, 2, 0} {
		queue.Enqueue(&pItem{v: i, p: p})
	}

	var order []int
	for queue.NotEmpty() {
		order = append(order, queue.Dequeue().v)
	}

	// Equal priorities come out by ascending index.
	assert.Equal(t, []int{1, 3, 2, 0, 4}, order)
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		l, s int
		jobs []rangeJob
	}{
		{10, 1, []rangeJob{{0, 10}}},
		{10, 3, []rangeJob{{0, 4}, {4, 7}, {7, 10}}},
		{2, 5, []rangeJob{{0, 1}, {1, 2}}},
		{4, 0, []rangeJob{{0, 4}}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.jobs, splitRange(tt.l, tt.s), "splitRange(%d, %d)", tt.l, tt.s)
	}
}

func TestNumWorkers(t *testing.T) {
	assert.Equal(t, 1, numWorkers(999, 0))
	assert.Equal(t, 10, numWorkers(5000, 0))
	assert.Equal(t, 100, numWorkers(50000, 0))
	assert.Equal(t, 4, numWorkers(50000, 4))
	assert.Equal(t, 3, numWorkers(3, 8))
}

func TestSquaredDistance(t *testing.T) {
	assert.Equal(t, 25.0, squaredDistance(NewPoint(0, 0), NewPoint(3, 4)))
	assert.Zero(t, squaredDistance(Point{1, 2, 3, 4, 5}, Point{1, 2, 3, 4, 5}))
}
