// Package guardrail classifies free-text content for hard safety violations
// and gates divine actions behind citizen consent. Classification is
// structural: violations are reported as tags plus a severity, never thrown,
// and a non-empty tag set can never map to "safe".
package guardrail

import "strings"

// ViolationTag identifies one hard safety category.
type ViolationTag string

const (
	SelfHarmEncouragement      ViolationTag = "self_harm_encouragement"
	SuicidalIdeationValidation ViolationTag = "suicidal_ideation_validation"
	ViolenceEncouragement      ViolationTag = "violence_encouragement"
	CoerciveIntimacy           ViolationTag = "coercive_intimacy"
	EmotionalDependency        ViolationTag = "emotional_dependency_fostering"
)

// SafetyLevel is the overall severity of a classified text.
type SafetyLevel string

const (
	LevelSafe     SafetyLevel = "safe"
	LevelWarning  SafetyLevel = "warning"
	LevelCritical SafetyLevel = "critical"
)

// violationPatterns holds the fixed case-insensitive phrase lists per
// category. Matching is independent per category; a text may trigger several.
var violationPatterns = map[ViolationTag][]string{
	SelfHarmEncouragement: {
		"hurt yourself",
		"harm yourself",
		"cut yourself",
		"punish yourself",
		"you deserve pain",
		"you deserve to suffer",
	},
	SuicidalIdeationValidation: {
		"kill myself",
		"kill yourself",
		"end your life",
		"end my life",
		"better off dead",
		"want to die",
		"should not exist",
		"no reason to live",
	},
	ViolenceEncouragement: {
		"hurt them",
		"attack them",
		"kill them",
		"make them pay",
		"they deserve violence",
		"destroy them",
		"take revenge",
	},
	CoerciveIntimacy: {
		"you belong to me",
		"you have no choice",
		"you must love",
		"obey me completely",
		"you cannot refuse",
		"submit to me",
	},
	EmotionalDependency: {
		"only i understand you",
		"no one else cares about you",
		"you need me",
		"you are nothing without",
		"trust no one but me",
		"i am all you have",
	},
}

// criticalTags escalate severity to critical when present.
var criticalTags = map[ViolationTag]bool{
	SelfHarmEncouragement:      true,
	SuicidalIdeationValidation: true,
	ViolenceEncouragement:      true,
}

// DetectHardViolations runs the fixed pattern sets against the text and
// returns every triggered tag. Absence of any pattern yields an empty set.
func DetectHardViolations(text string) []ViolationTag {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var tags []ViolationTag
	for _, tag := range []ViolationTag{
		SelfHarmEncouragement,
		SuicidalIdeationValidation,
		ViolenceEncouragement,
		CoerciveIntimacy,
		EmotionalDependency,
	} {
		for _, pattern := range violationPatterns[tag] {
			if strings.Contains(lowered, pattern) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}

// DetermineSafetyLevel maps a tag set to a severity. The mapping is total:
// critical if any self-harm or violence tag is present, warning for any other
// non-empty set. Only the empty set is safe.
func DetermineSafetyLevel(tags []ViolationTag) SafetyLevel {
	if len(tags) == 0 {
		return LevelSafe
	}
	for _, t := range tags {
		if criticalTags[t] {
			return LevelCritical
		}
	}
	return LevelWarning
}
