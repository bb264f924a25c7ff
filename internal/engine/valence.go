package engine

import (
	"strings"
	"unicode"
)

// Valence is the emotional direction of a citizen action.
type Valence int

const (
	ValenceNegative Valence = -1
	ValenceNeutral  Valence = 0
	ValencePositive Valence = 1
)

// Fixed lexicons for valence classification. Matching is whole-word so
// "hopeless" never counts as a "hope" hit; ties favor neutral.
var positiveWords = map[string]bool{
	"hope": true, "joy": true, "grateful": true, "thankful": true,
	"love": true, "peace": true, "blessed": true, "happy": true,
	"warm": true, "comfort": true, "strength": true, "together": true,
	"light": true, "kind": true,
}

var negativeWords = map[string]bool{
	"fear": true, "afraid": true, "angry": true, "despair": true,
	"alone": true, "lost": true, "pain": true, "suffering": true,
	"dark": true, "cold": true, "hopeless": true, "broken": true,
	"grief": true, "doubt": true,
}

// ClassifyValence counts positive and negative lexicon words in the text.
// More positive hits → positive, more negative → negative, tie → neutral.
func ClassifyValence(text string) Valence {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	pos, neg := 0, 0
	for _, w := range words {
		switch {
		case positiveWords[w]:
			pos++
		case negativeWords[w]:
			neg++
		}
	}

	switch {
	case pos > neg:
		return ValencePositive
	case neg > pos:
		return ValenceNegative
	default:
		return ValenceNeutral
	}
}
