package vectorstore

import "math"

// Alternative distance metrics for callers that need them. Both operate on
// raw (unnormalized) vectors of equal length supplied by the caller.

// EuclideanDistance returns the L2 distance between two vectors.
func EuclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanDistance returns the L1 distance between two vectors.
func ManhattanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum
}
