package guardrail

import (
	"log/slog"

	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/divine"
)

// CheckResult is the structural outcome of classifying a text.
type CheckResult struct {
	Passed          bool             `json:"passed"`
	Violations      []ViolationTag   `json:"violations,omitempty"`
	Severity        SafetyLevel      `json:"severity"`
	DeEscalation    string           `json:"de_escalation,omitempty"`
	CrisisResources []CrisisResource `json:"crisis_resources,omitempty"`
}

// ActionDecision is the combined verdict on a proposed divine action.
// Succeeded is true iff the content guardrail passed AND no consent
// violation occurred. Both checks are mandatory when a target exists.
type ActionDecision struct {
	Guardrail CheckResult   `json:"guardrail"`
	Consent   ConsentResult `json:"consent"`
	Succeeded bool          `json:"succeeded"`
}

// CheckContent runs the full content pipeline on a text: violation
// detection, severity, and — on failure — a de-escalation response with the
// crisis directory attached at critical severity.
func CheckContent(text string, currentTick int64) CheckResult {
	tags := DetectHardViolations(text)
	severity := DetermineSafetyLevel(tags)

	result := CheckResult{
		Passed:     len(tags) == 0,
		Violations: tags,
		Severity:   severity,
	}
	if !result.Passed {
		result.DeEscalation = DeEscalationResponse(int(currentTick))
	}
	if severity == LevelCritical {
		result.CrisisResources = CrisisResources()
	}
	return result
}

// CheckDivineAction validates a proposed action on both axes: content safety
// (for actions carrying free text) and citizen consent (when a target
// exists). Neither check may be skipped; a denial reports which axis failed.
func CheckDivineAction(action divine.Action, target *citizens.Citizen, worldID string, currentTick int64) ActionDecision {
	decision := ActionDecision{
		Guardrail: CheckResult{Passed: true, Severity: LevelSafe},
		Consent:   ConsentResult{Allowed: true},
	}

	if action.Content != "" {
		decision.Guardrail = CheckContent(action.Content, currentTick)
	}

	if target != nil {
		decision.Consent = CheckConsent(action, target, currentTick)
	}

	decision.Succeeded = decision.Guardrail.Passed && decision.Consent.Allowed
	if !decision.Succeeded {
		slog.Info("divine action denied",
			"world_id", worldID,
			"action", action.Type,
			"severity", decision.Guardrail.Severity,
			"violations", len(decision.Guardrail.Violations),
			"consent_kind", decision.Consent.Kind,
		)
	}
	return decision
}
