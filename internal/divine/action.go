// Package divine defines administrator interventions and their fixed
// world-facing descriptions. Actions are transient — they exist only for the
// duration of one tick's processing.
package divine

import "fmt"

// ActionType enumerates the bounded interventions available to the
// administrator.
type ActionType string

const (
	ActionBoost              ActionType = "boost"
	ActionSuppress           ActionType = "suppress"
	ActionEnvironmentalNudge ActionType = "environmental_nudge"
	ActionWhisper            ActionType = "whisper"
	ActionManifest           ActionType = "manifest"
)

// ValidActionType reports whether t is a known action type.
func ValidActionType(t ActionType) bool {
	switch t {
	case ActionBoost, ActionSuppress, ActionEnvironmentalNudge, ActionWhisper, ActionManifest:
		return true
	}
	return false
}

// Action is a proposed intervention. Only environmental_nudge is
// world-scoped; every other action requires a TargetCitizenID.
type Action struct {
	Type            ActionType `json:"type"`
	TargetCitizenID string     `json:"target_citizen_id,omitempty"`
	Content         string     `json:"content,omitempty"` // Free text, whispers only.
	Intensity       float64    `json:"intensity"`         // [0,1]
}

// AuthorityFlavored reports whether the action reads as an assertion of
// authority to the target. These actions face the citizen's resistance curve.
func (a Action) AuthorityFlavored() bool {
	return a.Type == ActionSuppress || a.Type == ActionManifest
}

// feedDescriptions is the fixed per-action-type description table for the
// world feed. Descriptions are written in-world, never as system messages.
var feedDescriptions = map[ActionType]string{
	ActionBoost:              "A warmth settles over %s, and burdens feel briefly lighter",
	ActionSuppress:           "A heaviness descends upon %s, dimming the fire of the moment",
	ActionEnvironmentalNudge: "The air shifts across the world, subtle and unexplained",
	ActionWhisper:            "%s pauses mid-thought, as if hearing something no one else can",
	ActionManifest:           "A presence makes itself unmistakably known to %s",
}

// Describe renders the feed entry text for a succeeded action. The citizen
// name is interpolated for targeted actions; world-scoped descriptions are
// returned as-is.
func Describe(t ActionType, citizenName string) string {
	tmpl, ok := feedDescriptions[t]
	if !ok {
		return "Something imperceptible changes in the world"
	}
	if t == ActionEnvironmentalNudge {
		return tmpl
	}
	if citizenName == "" {
		citizenName = "someone"
	}
	return fmt.Sprintf(tmpl, citizenName)
}

// WhisperTone is the register a divine whisper is delivered in. It feeds both
// the receptivity model (tone match) and the inbox response suggestions.
type WhisperTone string

const (
	ToneComforting  WhisperTone = "comforting"
	ToneGentle      WhisperTone = "gentle"
	ToneMysterious  WhisperTone = "mysterious"
	ToneQuestioning WhisperTone = "questioning"
	ToneWarm        WhisperTone = "warm"
	ToneStern       WhisperTone = "stern"
)
