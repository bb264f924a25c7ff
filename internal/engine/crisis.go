package engine

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Crisis field constants. The noise is sampled along the tick axis so
// pressure drifts smoothly instead of flickering; the eruption band keeps
// crises rare even at full configured frequency.
const (
	crisisNoiseFrequency = 0.05
	crisisEruptionBand   = 0.18
	crisisStressShock    = 0.15
	crisisHopeShock      = 0.10
)

// CrisisField produces the ambient crisis pressure of a world: smooth noise
// over the tick index, scaled by the world's configured crisis frequency.
type CrisisField struct {
	noise opensimplex.Noise
}

// NewCrisisField creates a field seeded deterministically, so the same seed
// replays the same crisis timeline.
func NewCrisisField(seed int64) *CrisisField {
	return &CrisisField{noise: opensimplex.NewNormalized(seed)}
}

// Pressure returns the ambient pressure in [0,1] at a given tick, already
// scaled by the configured crisis frequency.
func (f *CrisisField) Pressure(tick int64, crisisFrequency float64) float64 {
	if f == nil {
		return 0
	}
	raw := f.noise.Eval2(float64(tick)*crisisNoiseFrequency, 0)
	return raw * crisisFrequency
}

// Erupts reports whether a crisis breaks out at this tick. The raw noise
// must enter the eruption band at the top of its range; the band width
// scales with the configured frequency, so a frequency of zero never erupts.
func (f *CrisisField) Erupts(tick int64, crisisFrequency float64) bool {
	if f == nil || crisisFrequency <= 0 {
		return false
	}
	raw := f.noise.Eval2(float64(tick)*crisisNoiseFrequency, 0)
	return raw > 1-crisisEruptionBand*crisisFrequency
}
