package llm

import (
	"fmt"
	"strings"

	"github.com/talgya/god-world/internal/citizens"
)

const citizenSystemPrompt = `You are narrating one moment in the inner life of a citizen of a small simulated world. Respond with a single short first-person utterance — a thought, a prayer, a complaint, a hope — in the citizen's own voice. One or two sentences, no quotation marks, no narration about the citizen.`

// CitizenActionPrompt builds the prompt asking for one autonomous action
// from a citizen, given their disposition and recent memories.
func CitizenActionPrompt(c *citizens.Citizen, memories []string, recentCrisis bool) Request {
	var b strings.Builder

	fmt.Fprintf(&b, "Citizen: %s (%s)\n", c.Name, c.Attributes.Archetype)
	fmt.Fprintf(&b, "Mood %.2f, stress %.2f, hope %.2f\n", c.State.Mood, c.State.Stress, c.State.Hope)
	fmt.Fprintf(&b, "Trust in peers %.2f, trust in the divine %.2f\n", c.State.TrustInPeers, c.State.TrustInGod)

	if len(c.Beliefs) > 0 {
		b.WriteString("Held beliefs:\n")
		for _, belief := range c.Beliefs {
			fmt.Fprintf(&b, "- %q (stance %.1f, confidence %.1f)\n", belief.Topic, belief.Stance, belief.Confidence)
		}
	}

	if len(memories) > 0 {
		b.WriteString("Recent memories:\n")
		for _, m := range memories {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}

	if recentCrisis {
		b.WriteString("The world has recently been through a crisis; it is on everyone's mind.\n")
	}

	b.WriteString("\nWhat does this citizen say or think right now?")

	return Request{
		Prompt:       b.String(),
		SystemPrompt: citizenSystemPrompt,
		MaxTokens:    120,
		Temperature:  0.9,
	}
}
