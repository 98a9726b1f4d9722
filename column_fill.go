package osm2exits

// FillBlanksForColSpan fills empty cells between two equal columns, so the
// frontend can merge cells using colspan:
//
//	A|none|A|none|none|B|none|B  ->  A|A|A|none|none|B|B|B
//
// Non-empty values are never altered. Every row must have the same length.
func FillBlanksForColSpan(matrix [][]string) {
	if len(matrix) == 0 {
		return
	}
	length := len(matrix[0])
	for i := 0; i < length-1; i++ {
		thisColHasData := false
		isNextBlank := true
		for _, row := range matrix {
			if !isFalsy(row[i]) {
				thisColHasData = true
			}
			if !isFalsy(row[i+1]) {
				isNextBlank = false
			}
		}
		if !thisColHasData || !isNextBlank {
			continue
		}

		// Closest column (across all rows) which has any data
		nextNonEmpty := -1
		for _, row := range matrix {
			for j := i + 1; j < length; j++ {
				if !isFalsy(row[j]) {
					if nextNonEmpty == -1 || j < nextNonEmpty {
						nextNonEmpty = j
					}
					break
				}
			}
		}
		if nextNonEmpty == -1 {
			continue
		}

		isNextNonEmptyEqual := true
		for _, row := range matrix {
			if row[i] != row[nextNonEmpty] {
				isNextNonEmptyEqual = false
				break
			}
		}
		if !isNextNonEmptyEqual {
			continue
		}
		for j := i; j < nextNonEmpty; j++ {
			for _, row := range matrix {
				row[j] = row[i]
			}
		}
	}
}
