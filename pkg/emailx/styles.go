package emailx

import "strings"

// Category names one of the three style selector tables
type Category string

const (
	CategoryEmailType Category = "email_type"
	CategoryTone      Category = "tone"
	CategoryLength    Category = "length"
)

var instructions = map[Category]map[string]string{
	CategoryLength: {
		"short":  "Keep it concise (50-100 words). Get straight to the point.",
		"medium": "Provide adequate detail (100-200 words). Include necessary context.",
		"long":   "Be comprehensive (200+ words). Include detailed information and context.",
	},
	CategoryTone: {
		"professional": "Use formal language, proper business etiquette, and maintain a respectful tone.",
		"friendly":     "Use warm, approachable language while maintaining professionalism.",
		"formal":       "Use very formal language, proper titles, and traditional business structure.",
		"casual":       "Use relaxed, conversational language appropriate for informal communication.",
		"persuasive":   "Use compelling language, include benefits, and create urgency when appropriate.",
	},
	CategoryEmailType: {
		"business":  "Focus on professional communication, clear objectives, and business context.",
		"personal":  "Use a more personal tone, include personal touches, and be more conversational.",
		"marketing": "Include compelling calls-to-action, highlight benefits, and create interest.",
		"follow-up": "Reference previous communication, provide updates, and suggest next steps.",
		"thank you": "Express genuine gratitude, be specific about what you're thanking for, and maintain warmth.",
	},
}

// InstructionFor returns the guidance fragment for key within category, or
// "" when either is unknown
func InstructionFor(category Category, key string) string {
	return instructions[category][strings.ToLower(strings.TrimSpace(key))]
}
