package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPatternsPositiveDivine(t *testing.T) {
	stream := []Memory{
		NewDivine("c1", "a warm presence", 1, 0.6),
		NewDivine("c1", "a gentle whisper", 5, 0.4),
	}
	assert.Contains(t, ExtractPatterns(stream), "pattern of positive divine interaction")
}

func TestExtractPatternsNegativeDivine(t *testing.T) {
	stream := []Memory{
		NewDivine("c1", "a crushing weight", 1, -0.7),
		NewDivine("c1", "a cold silence", 5, -0.2),
	}
	labels := ExtractPatterns(stream)
	assert.Contains(t, labels, "pattern of negative divine interaction")
	assert.NotContains(t, labels, "pattern of positive divine interaction")
}

func TestExtractPatternsAmbivalentDivine(t *testing.T) {
	stream := []Memory{
		NewDivine("c1", "kindness", 1, 0.5),
		NewDivine("c1", "cruelty", 2, -0.5),
	}
	assert.Empty(t, ExtractPatterns(stream))
}

func TestExtractPatternsHardship(t *testing.T) {
	mk := func(weight float64) Memory {
		return New("c1", "a bad day", 0, &Options{EmotionalWeight: weight})
	}

	two := []Memory{mk(-0.7), mk(-0.9)}
	assert.Empty(t, ExtractPatterns(two))

	three := append(two, mk(-0.6))
	assert.Contains(t, ExtractPatterns(three), "pattern of sustained hardship")
}

func TestExtractPatternsMildNegativesDoNotCluster(t *testing.T) {
	stream := []Memory{
		New("c1", "a", 0, &Options{EmotionalWeight: -0.3}),
		New("c1", "b", 0, &Options{EmotionalWeight: -0.4}),
		New("c1", "c", 0, &Options{EmotionalWeight: -0.5}),
	}
	assert.Empty(t, ExtractPatterns(stream))
}

func TestExtractPatternsEmpty(t *testing.T) {
	assert.Empty(t, ExtractPatterns(nil))
}
