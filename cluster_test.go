package osm2exits

import (
	"testing"
)

func TestSplitInHalf(t *testing.T) {
	cases := []struct {
		name     string
		bearings []float64
		expected []bool
	}{
		{"standard case", []float64{1, 180, 10, 181}, []bool{true, false, true, false}},
		{"all values are equal", []float64{1, 1, 1, 1}, []bool{true, true, true, true}},
		{"all values are almost equal", []float64{1, 1.01, 1, 1}, []bool{true, true, true, true}},
		{"opposite directions", []float64{270, 90, 265, 95, 275}, []bool{true, false, true, false, true}},
		{"single value", []float64{42}, []bool{true}},
		{"no values", []float64{}, []bool{}},
	}
	for _, c := range cases {
		result := SplitInHalf(c.bearings)
		if len(result) != len(c.expected) {
			t.Errorf("[%s] Length must be %d, but got %d", c.name, len(c.expected), len(result))
			continue
		}
		for i := range result {
			if result[i] != c.expected[i] {
				t.Errorf("[%s] Value #%d must be %t, but got %t (%v)", c.name, i, c.expected[i], result[i], result)
				break
			}
		}
	}
}
