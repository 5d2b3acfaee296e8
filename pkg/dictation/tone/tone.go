package tone

// Descriptor is an immutable tone definition. The description tells the
// backend what the tone is, the style guide constrains how it writes, and the
// example anchors the register.
type Descriptor struct {
	ID          string
	Description string
	StyleGuide  string
	Example     string
}

// DefaultID is the tone used when a client sends an empty or unknown tone id.
const DefaultID = "friendly"

var registry = map[string]Descriptor{
	"friendly": {
		ID:          "friendly",
		Description: "A friendly, casual tone, like notes written for yourself or a close colleague.",
		StyleGuide:  "Use relaxed, conversational phrasing and contractions. Keep sentences short. Do not add formality that was not in the input.",
		Example:     "Talked to Sam about the launch - we're pushing it to Friday so QA gets one more pass.",
	},
	"professional": {
		ID:          "professional",
		Description: "A well-organized, professional tone suitable for sharing with stakeholders.",
		StyleGuide:  "Use complete sentences and neutral business language. Prefer structured phrasing over filler. Avoid slang and contractions.",
		Example:     "The launch has been rescheduled to Friday to allow an additional quality assurance pass.",
	},
	"technical": {
		ID:          "technical",
		Description: "A clear, detailed, technical tone for engineering notes.",
		StyleGuide:  "Be precise and explicit. Preserve identifiers, numbers, and units exactly. Prefer terse declarative sentences.",
		Example:     "Launch moved to Friday; QA needs one more regression pass over the v2 ingestion path.",
	},
	"brief": {
		ID:          "brief",
		Description: "A compressed tone that keeps only the key points.",
		StyleGuide:  "Reduce to the essential facts. Use short fragments or bullets. Never drop names, dates, or decisions.",
		Example:     "Launch -> Friday. Reason: one more QA pass.",
	},
}

// IDs lists the registered tone ids in a stable order.
func IDs() []string {
	return []string{"friendly", "professional", "technical", "brief"}
}

// Resolve returns the descriptor for id. Empty or unrecognized ids resolve to
// the default tone rather than failing, so a malformed client message never
// blocks the pipeline.
func Resolve(id string) Descriptor {
	if d, ok := registry[id]; ok {
		return d
	}
	return registry[DefaultID]
}
