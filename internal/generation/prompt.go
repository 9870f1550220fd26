package generation

import (
	"fmt"
	"strings"
)

const defaultLengthInstruction = "Approximately 300 words."

var lengthInstructions = map[string]string{
	"Very Short": "Strictly under 100 words.",
	"Short":      "Approximately 200 words.",
	"Medium":     "Approximately 400 words.",
	"Long":       "Approximately 800 words.",
	"Epic":       "Detailed and extensive, over 1000 words.",
}

// StoryRequest holds the user-facing knobs that shape a story.
type StoryRequest struct {
	Genre       string
	Length      string
	Description string
	WhatIf      string
}

// LengthInstruction maps a length label to the word-count guidance sent to the model.
// Unknown or empty labels get the medium default.
func LengthInstruction(label string) string {
	if instruction, ok := lengthInstructions[label]; ok {
		return instruction
	}
	return defaultLengthInstruction
}

const promptTemplate = `
You are a creative storyteller. I have uploaded an image that I want you to analyze and create a story about.

1. Analyze the image carefully to understand the context, mood, and details.
2. Create a story based on this analysis.

IMPORTANT OUTPUT RULES:
- Output ONLY the story. Do NOT include your analysis or description of the image in the final output.
- Do NOT use Markdown formatting (no #, *, **, etc.). Return plain text only.
- Provide a creative Title on the first line, then a blank line, then the story.

Story requirements:
- Genre: '%s'
- Length: '%s' (%s)
- Additional Scene Description: '%s'
- What If Scenario: '%s'

If the image shows data visualization, algorithms, or technical content, create a story that incorporates those elements in a meaningful way.
`

// BuildPrompt renders the instruction text for one generation call.
func BuildPrompt(req StoryRequest) string {
	return fmt.Sprintf(promptTemplate,
		req.Genre,
		req.Length,
		LengthInstruction(req.Length),
		orNone(req.Description),
		orNone(req.WhatIf),
	)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
