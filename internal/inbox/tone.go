package inbox

import "github.com/talgya/god-world/internal/divine"

// highStress is the stress snapshot level that shifts a prayer's suggested
// response toward comfort.
const highStress = 0.7

// SuggestResponseTone maps an item to a recommended whisper tone. The
// mapping is fixed per category; prayer additionally considers the citizen's
// stress at classification time.
func SuggestResponseTone(item Item) divine.WhisperTone {
	switch item.Category {
	case CategoryCrisisCall:
		return divine.ToneComforting
	case CategoryAccusation:
		return divine.ToneGentle
	case CategoryDoubt:
		return divine.ToneMysterious
	case CategoryQuestion:
		return divine.ToneQuestioning
	case CategoryPrayer:
		if item.Snapshot.Stress > highStress {
			return divine.ToneComforting
		}
		return divine.ToneWarm
	case CategoryPraise:
		return divine.ToneWarm
	default: // testimony
		return divine.ToneMysterious
	}
}
