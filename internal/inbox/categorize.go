package inbox

import "strings"

// categoryPatterns maps each category to its keyword set. Precedence is
// fixed by categoryPrecedence: the first category with a match wins, so
// crisis language always outranks generic prayer language.
var categoryPatterns = map[Category][]string{
	CategoryCrisisCall: {
		"help me", "can't go on", "cannot go on", "save me", "i'm drowning",
		"i am drowning", "desperate", "no way out", "losing everything",
		"please, anyone",
	},
	CategoryAccusation: {
		"you abandoned", "why did you let", "how could you", "your fault",
		"you don't care", "you do not care", "cruel god", "you failed",
	},
	CategoryDoubt: {
		"are you even there", "not sure i believe", "losing my faith",
		"maybe there is no", "stopped believing", "doubt", "if you exist",
	},
	CategoryQuestion: {
		"why", "what is", "what does", "how do", "where do", "when will",
		"should i", "?",
	},
	CategoryTestimony: {
		"i witnessed", "i saw", "something happened", "i felt a presence",
		"it changed me", "i must tell",
	},
	CategoryPraise: {
		"thank you", "grateful", "blessed", "praise", "wonderful",
		"glory", "i am thankful",
	},
	CategoryPrayer: {
		"please", "i pray", "grant me", "watch over", "protect",
		"give me strength", "hear me", "bless",
	},
}

// categoryPrecedence orders the match attempt. Prayer is the most generic
// bucket, so it matches last.
var categoryPrecedence = []Category{
	CategoryCrisisCall,
	CategoryAccusation,
	CategoryDoubt,
	CategoryQuestion,
	CategoryTestimony,
	CategoryPraise,
	CategoryPrayer,
}

// Categorize classifies a text into exactly one category. Texts matching
// nothing fall through to testimony: a citizen spoke, and that is what it is.
func Categorize(text string) Category {
	lowered := strings.ToLower(text)
	for _, cat := range categoryPrecedence {
		for _, kw := range categoryPatterns[cat] {
			if strings.Contains(lowered, kw) {
				return cat
			}
		}
	}
	return CategoryTestimony
}
