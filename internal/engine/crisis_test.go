package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrisisFieldZeroFrequencyNeverErupts(t *testing.T) {
	field := NewCrisisField(7)
	for tick := int64(0); tick < 2000; tick++ {
		assert.False(t, field.Erupts(tick, 0))
	}
}

func TestCrisisFieldNilSafe(t *testing.T) {
	var field *CrisisField
	assert.False(t, field.Erupts(10, 1))
	assert.Equal(t, 0.0, field.Pressure(10, 1))
}

func TestCrisisFieldPressureBounded(t *testing.T) {
	field := NewCrisisField(99)
	for tick := int64(0); tick < 500; tick++ {
		p := field.Pressure(tick, 1)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestCrisisFieldDeterministic(t *testing.T) {
	a := NewCrisisField(42)
	b := NewCrisisField(42)
	for tick := int64(0); tick < 100; tick++ {
		assert.Equal(t, a.Pressure(tick, 0.5), b.Pressure(tick, 0.5))
		assert.Equal(t, a.Erupts(tick, 0.5), b.Erupts(tick, 0.5))
	}
}

func TestCrisisFieldFrequencyScalesEruptions(t *testing.T) {
	field := NewCrisisField(3)
	low, high := 0, 0
	for tick := int64(0); tick < 5000; tick++ {
		if field.Erupts(tick, 0.2) {
			low++
		}
		if field.Erupts(tick, 1.0) {
			high++
		}
	}
	assert.LessOrEqual(t, low, high, "a wider band can only add eruptions")
}
