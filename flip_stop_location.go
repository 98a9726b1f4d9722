package osm2exits

// flipByStopLocation clusters bearings from the centroid of a station to each of its stops.
// Gives up if some stop is closer to the centroid than half of the average distance: such geometry
// is most likely wrong.
func flipByStopLocation(stops []*Stop, _ *FeatureIndex) []bool {
	if len(stops) == 0 {
		return nil
	}
	points := make([]GeoPoint, len(stops))
	for i, stop := range stops {
		points[i] = stop.Point()
	}
	centroid := averagePoint(points)

	distances := make([]float64, len(points))
	for i, pt := range points {
		distances[i] = distanceBetween(centroid, pt)
	}
	avgDistance := average(distances)
	for _, distance := range distances {
		if distance < avgDistance/2 {
			return nil
		}
	}

	bearings := make([]float64, len(points))
	for i, pt := range points {
		bearings[i] = bearingBetween(centroid, pt)
	}
	return SplitInHalf(bearings)
}
