package generation

import (
	"regexp"
	"strings"
)

const storySeparator = "***"

var (
	imageAnalysisHeader = regexp.MustCompile(`(?i)###\s*Image Analysis`)
	analysisHeader      = regexp.MustCompile(`(?i)###\s*Analysis`)
	markdownMarks       = strings.NewReplacer("#", "", "*", "")
)

// Sanitize turns raw model output into plain story text.
// Applying it twice gives the same result as applying it once.
func Sanitize(raw string) string {
	text := raw
	if i := strings.LastIndex(text, storySeparator); i >= 0 {
		text = text[i+len(storySeparator):]
	}
	text = imageAnalysisHeader.ReplaceAllString(text, "")
	text = analysisHeader.ReplaceAllString(text, "")
	text = markdownMarks.Replace(text)
	return strings.TrimSpace(text)
}
