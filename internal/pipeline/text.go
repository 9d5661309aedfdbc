package pipeline

import "strings"

// analyzeText is the fallback analyzer for unrecognized content types.
func analyzeText(raw string) *TextAnalysis {
	return &TextAnalysis{
		LineCount:      len(strings.Split(raw, "\n")),
		WordCount:      len(strings.Fields(raw)),
		CharacterCount: len(raw),
	}
}
