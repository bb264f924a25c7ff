package memory

const (
	// divinePatternThreshold on average divine emotional weight.
	divinePatternThreshold = 0.3

	// hardshipWeight marks a memory as strongly negative.
	hardshipWeight = -0.6

	// hardshipClusterSize is how many strongly negative memories make a pattern.
	hardshipClusterSize = 3
)

// ExtractPatterns scans a citizen's memory stream for recognizable shapes and
// returns zero or more human-readable labels.
//
// Divine-tagged memories are averaged by emotional weight: a strongly
// positive or negative average reports the corresponding divine-interaction
// pattern. Non-divine memories form a hardship pattern when enough of them
// carry strongly negative weight.
func ExtractPatterns(memories []Memory) []string {
	var labels []string

	divineCount := 0
	divineWeight := 0.0
	hardship := 0
	for _, m := range memories {
		if m.IsDivine {
			divineCount++
			divineWeight += m.EmotionalWeight
			continue
		}
		if m.EmotionalWeight <= hardshipWeight {
			hardship++
		}
	}

	if divineCount > 0 {
		avg := divineWeight / float64(divineCount)
		if avg >= divinePatternThreshold {
			labels = append(labels, "pattern of positive divine interaction")
		} else if avg <= -divinePatternThreshold {
			labels = append(labels, "pattern of negative divine interaction")
		}
	}

	if hardship >= hardshipClusterSize {
		labels = append(labels, "pattern of sustained hardship")
	}

	return labels
}
