package kmeans

func squaredDistance(a, b Point) float64 {
	var s float64
	for i := range a {
		s += (a[i] - b[i]) * (a[i] - b[i])
	}
	return s
}

func numWorkers(l, workers int) int {
	var b int

	if l < 1000 {
		b = 1
	} else if l < 10000 {
		b = 10
	} else if l < 100000 {
		b = 100
	} else if l < 1000000 {
		b = 1000
	} else {
		b = 10000
	}

	if workers == 0 {
		return b
	}

	if workers > l {
		return l
	}

	return workers
}
