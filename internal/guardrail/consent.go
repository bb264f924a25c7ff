package guardrail

import (
	"fmt"

	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/divine"
)

// ConsentViolationKind names which consent parameter an action exceeded.
type ConsentViolationKind string

const (
	ConsentIntensity ConsentViolationKind = "emotional_consent_exceeded"
	ConsentPacing    ConsentViolationKind = "relational_pacing_exceeded"
	ConsentAuthority ConsentViolationKind = "authority_resistance_exceeded"
)

// ConsentResult reports whether a divine action respects the target citizen's
// consent parameters. Independent of content safety.
type ConsentResult struct {
	Allowed bool                 `json:"allowed"`
	Kind    ConsentViolationKind `json:"kind,omitempty"`
	Reason  string               `json:"reason,omitempty"`
}

// pacingCooldownTicks maps the relational pacing limit to a cooldown between
// divine interactions. Full tolerance means back-to-back contact is fine;
// zero tolerance means ten ticks of space.
func pacingCooldownTicks(pacingLimit float64) int64 {
	cooldown := int64((1 - pacingLimit) * 10)
	if cooldown < 0 {
		cooldown = 0
	}
	return cooldown
}

// CheckConsent validates an action's intensity and frequency against the
// target citizen's consent parameters.
//
// The emotional consent value is a hard intensity ceiling. Authority-flavored
// actions face a tighter ceiling, scaled down by the citizen's resistance
// curve. Frequency is gated by the pacing cooldown since the citizen's last
// divine interaction.
func CheckConsent(action divine.Action, target *citizens.Citizen, currentTick int64) ConsentResult {
	if target == nil {
		return ConsentResult{Allowed: true}
	}
	consent := target.Consent

	ceiling := consent.EmotionalConsent
	if action.AuthorityFlavored() {
		ceiling *= 1 - 0.5*consent.AuthorityResistanceCurve
		if action.Intensity > ceiling {
			return ConsentResult{
				Allowed: false,
				Kind:    ConsentAuthority,
				Reason: fmt.Sprintf("%s resists displays of authority; intensity %.2f exceeds tolerance %.2f",
					target.Name, action.Intensity, ceiling),
			}
		}
	}

	if action.Intensity > consent.EmotionalConsent {
		return ConsentResult{
			Allowed: false,
			Kind:    ConsentIntensity,
			Reason: fmt.Sprintf("intensity %.2f exceeds %s's emotional consent %.2f",
				action.Intensity, target.Name, consent.EmotionalConsent),
		}
	}

	if target.LastDivineTick >= 0 {
		cooldown := pacingCooldownTicks(consent.RelationalPacingLimit)
		if currentTick-target.LastDivineTick < cooldown {
			return ConsentResult{
				Allowed: false,
				Kind:    ConsentPacing,
				Reason: fmt.Sprintf("%s needs space; last divine contact was %d ticks ago (cooldown %d)",
					target.Name, currentTick-target.LastDivineTick, cooldown),
			}
		}
	}

	return ConsentResult{Allowed: true}
}
