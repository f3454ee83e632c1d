package kmeans

import (
	"container/heap"
)

// struct denoting start (inclusive) and end (exclusive) indices of the training set portion assigned by one worker
type rangeJob struct {
	a, b int
}

// splitRange divides [0, l) into at most s contiguous jobs of near equal size.
func splitRange(l, s int) []rangeJob {
	if s > l {
		s = l
	}

	if s < 1 {
		s = 1
	}

	var (
		jobs = make([]rangeJob, 0, s)
		f    = l / s
		r    = l % s
		a    int
	)

	for i := 0; i < s; i++ {
		b := a + f
		if i < r {
			b++
		}

		jobs = append(jobs, rangeJob{a: a, b: b})
		a = b
	}

	return jobs
}

// priority queue, highest p first, ties broken by lower v
type pItem struct {
	v int
	p float64
	i int
}

type priorityQueue []*pItem

func newPriorityQueue(size int) priorityQueue {
	q := make(priorityQueue, 0, size)
	heap.Init(&q)

	return q
}

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].p == pq[j].p {
		return pq[i].v < pq[j].v
	}

	return pq[i].p > pq[j].p
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].i = i
	pq[j].i = j
}

// Push and Pop satisfy heap.Interface. Use Enqueue and Dequeue instead.
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pItem)
	item.i = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.i = -1
	*pq = old[0 : n-1]
	return item
}

func (pq *priorityQueue) Enqueue(item *pItem) {
	heap.Push(pq, item)
}

func (pq *priorityQueue) Dequeue() *pItem {
	return heap.Pop(pq).(*pItem)
}

func (pq *priorityQueue) NotEmpty() bool {
	return len(*pq) > 0
}
