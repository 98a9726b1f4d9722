package osm2exits

const destinationFlipIterations = 20

// orderedSet keeps insertion order, so the choice of the next identity to move is deterministic
type orderedSet struct {
	keys  []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (set *orderedSet) add(key string) {
	if _, ok := set.index[key]; ok {
		return
	}
	set.index[key] = struct{}{}
	set.keys = append(set.keys, key)
}

func (set *orderedSet) has(key string) bool {
	_, ok := set.index[key]
	return ok
}

func hasAdjacent(adjacent []AdjacentStop, key string) bool {
	for _, stop := range adjacent {
		if stop.Key() == key {
			return true
		}
	}
	return false
}

// flipByDestination treats previous stops as the "left" side of a platform and next stops as the "right" one.
// A flipped platform swaps its sides. Identities found on both sides are moved to the left one by one,
// until nothing is on both sides. Returns nil when any stop has no adjacent stops or when it doesn't converge.
func flipByDestination(stops []*Stop, _ *FeatureIndex) []bool {
	for _, stop := range stops {
		if len(stop.LastStop) == 0 && len(stop.NextStop) == 0 {
			return nil
		}
	}
	flips := make([]bool, len(stops))

	onBothSides := func() []string {
		left, right := newOrderedSet(), newOrderedSet()
		for i, stop := range stops {
			fromSide, toSide := left, right
			if flips[i] {
				fromSide, toSide = right, left
			}
			for _, adjacent := range stop.LastStop {
				fromSide.add(adjacent.Key())
			}
			for _, adjacent := range stop.NextStop {
				toSide.add(adjacent.Key())
			}
		}
		intersection := []string{}
		for _, key := range left.keys {
			if right.has(key) {
				intersection = append(intersection, key)
			}
		}
		return intersection
	}

	moveToLeft := func(key string) {
		for i, stop := range stops {
			onRight := hasAdjacent(stop.NextStop, key)
			if flips[i] {
				onRight = hasAdjacent(stop.LastStop, key)
			}
			if onRight {
				flips[i] = !flips[i]
			}
		}
	}

	for iteration := 0; iteration < destinationFlipIterations; iteration++ {
		both := onBothSides()
		if len(both) == 0 {
			break
		}
		moveToLeft(both[0])
	}
	if len(onBothSides()) != 0 {
		return nil
	}
	return flips
}
