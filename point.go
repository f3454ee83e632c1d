package kmeans

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const Dimension = 5

// Point is a fixed-size observation. It is compared, added and scaled by value.
type Point [Dimension]float64

// NewPoint fills the leading fields of a Point with values. Missing fields are
// zero, surplus values are dropped.
func NewPoint(values ...float64) Point {
	var p Point
	copy(p[:], values)
	return p
}

// DistanceFrom returns the Euclidean distance between p and o: the square root
// of the squared field differences summed in field order. Equal sums give equal
// distances, so exact ties stay ties.
func (p Point) DistanceFrom(o Point) float64 {
	return math.Sqrt(squaredDistance(p, o))
}

// Equals reports exact field-wise equality. No tolerance is applied.
func (p Point) Equals(o Point) bool {
	return floats.Equal(p[:], o[:])
}

func (p *Point) Add(o Point) {
	floats.Add(p[:], o[:])
}

// ScaleDivide divides every field by divisor. p is left untouched when
// divisor is zero.
func (p *Point) ScaleDivide(divisor int) error {
	if divisor == 0 {
		return ErrDivideByZero
	}

	d := float64(divisor)

	for i := range p {
		p[i] /= d
	}

	return nil
}

func (p Point) String() string {
	var b strings.Builder

	b.WriteByte('[')

	for i, v := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
	}

	b.WriteByte(']')

	return b.String()
}
