package osm2exits

import (
	"math"
)

const (
	kMeansRounds = 10
	// Clusters with closer centroids (degrees) are treated as a single one
	clusterCollapseEpsilon = 1.0
)

// kMeansAngular clusters bearings into two groups. Centroids are seeded from
// the first two values. Returns cluster index per input value and final centroids.
// A cluster which becomes empty gets NaN centroid and never attracts values again.
func kMeansAngular(bearings []float64) ([]int, []float64) {
	assignments := make([]int, len(bearings))
	centroids := make([]float64, 0, 2)
	for i := 0; i < len(bearings) && i < 2; i++ {
		centroids = append(centroids, bearings[i])
	}
	if len(centroids) == 0 {
		return assignments, centroids
	}
	for round := 0; round < kMeansRounds; round++ {
		clusters := make([][]float64, len(centroids))
		for i, point := range bearings {
			minIdx, minDistance := 0, math.Inf(1)
			for c, centroid := range centroids {
				distance := AngularDiff(point, centroid)
				if distance < minDistance {
					minDistance = distance
					minIdx = c
				}
			}
			assignments[i] = minIdx
			clusters[minIdx] = append(clusters[minIdx], point)
		}
		for c := range centroids {
			centroids[c] = average(clusters[c])
		}
	}
	return assignments, centroids
}

// SplitInHalf clusters bearings into two groups, then returns true for every value of the first cluster.
// Identical or almost identical values form a single cluster (all true).
func SplitInHalf(bearings []float64) []bool {
	assignments, centroids := kMeansAngular(bearings)
	result := make([]bool, len(bearings))
	collapse := len(centroids) == 2 &&
		!math.IsNaN(centroids[0]) && !math.IsNaN(centroids[1]) &&
		AngularDiff(centroids[0], centroids[1]) < clusterCollapseEpsilon
	for i := range bearings {
		result[i] = collapse || assignments[i] == 0
	}
	return result
}
