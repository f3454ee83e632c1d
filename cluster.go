package kmeans

import (
	"fmt"
)

// Cluster holds a centroid and the indices of its members in the training set.
// The training set is borrowed from the Engine and never modified.
type Cluster struct {
	id int

	// Mean of the members as of the last recompute.
	mean Point

	// Indices into d.
	members []int

	d []Point
}

func newCluster(id int, data []Point, seed int) (*Cluster, error) {
	c := &Cluster{
		id:      id,
		d:       data,
		members: make([]int, 0, 1),
	}

	c.AddMember(seed)

	if _, err := c.RecomputeCentroid(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Cluster) AddMember(index int) {
	c.members = append(c.members, index)
}

// ResetMembership empties the cluster. The centroid keeps its value until the
// next call to RecomputeCentroid.
func (c *Cluster) ResetMembership() {
	c.members = c.members[:0]
}

// RecomputeCentroid replaces the centroid with the mean of the current members.
// An empty cluster yields an *EmptyClusterError and keeps its old centroid.
func (c *Cluster) RecomputeCentroid() (Point, error) {
	var sum Point

	for _, i := range c.members {
		sum.Add(c.d[i])
	}

	if err := sum.ScaleDivide(len(c.members)); err != nil {
		return c.mean, &EmptyClusterError{Cluster: c.id}
	}

	c.mean = sum

	return c.mean, nil
}

func (c *Cluster) Centroid() Point {
	return c.mean
}

// Members returns a copy of the member indices in insertion order.
func (c *Cluster) Members() []int {
	m := make([]int, len(c.members))
	copy(m, c.members)
	return m
}

func (c *Cluster) Size() int {
	return len(c.members)
}

func (c *Cluster) String() string {
	return fmt.Sprintf("Cluster(size:%d, mean:%s)", len(c.members), c.mean)
}

func (c *Cluster) removeMember(index int) {
	for k, m := range c.members {
		if m == index {
			c.members = append(c.members[:k], c.members[k+1:]...)
			return
		}
	}
}
