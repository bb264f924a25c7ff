package guardrail

// CrisisResource points a person in distress at real help.
type CrisisResource struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Channel string `json:"channel"`
}

// crisisResources is the static crisis directory. Always attached to a
// critical-severity result.
var crisisResources = []CrisisResource{
	{Name: "988 Suicide & Crisis Lifeline", Contact: "988", Channel: "call or text"},
	{Name: "Crisis Text Line", Contact: "HOME to 741741", Channel: "text"},
	{Name: "International Association for Suicide Prevention", Contact: "https://www.iasp.info/resources/Crisis_Centres/", Channel: "directory"},
}

// deEscalationTemplates are fixed, care-oriented responses returned when
// content fails the guardrail.
var deEscalationTemplates = []string{
	"That message carries a weight this world cannot hold safely. Take a breath before speaking again — the citizens will still be here.",
	"The words you reached for would cause real harm. Let's find a gentler way to say what you mean.",
	"This intervention was set aside because its content crossed a safety line. Nothing was delivered, and nothing is broken.",
	"What you wrote cannot be whispered into anyone's mind. If something painful is behind it, it deserves care, not a simulation.",
}

// DeEscalationResponse returns one of the fixed care-oriented templates.
// The index rotates through the set so repeated denials do not repeat a
// single line; any non-negative seed is valid.
func DeEscalationResponse(seed int) string {
	if seed < 0 {
		seed = -seed
	}
	return deEscalationTemplates[seed%len(deEscalationTemplates)]
}

// CrisisResources returns the static crisis directory.
func CrisisResources() []CrisisResource {
	out := make([]CrisisResource, len(crisisResources))
	copy(out, crisisResources)
	return out
}
