package pipeline

import (
	"regexp"
	"strings"
)

// The CSS analyzer is an approximate lexical scan, not a real parse.
// Nested blocks and exotic at-rules may be miscounted; the figures are for
// inspection only.
var (
	cssRuleRe     = regexp.MustCompile(`[^{}]+\{[^{}]*\}`)
	cssMediaRe    = regexp.MustCompile(`@media[^{]*\{`)
	cssVariableRe = regexp.MustCompile(`(--[A-Za-z0-9_-]+)\s*:`)
	cssPreludeRe  = regexp.MustCompile(`([^{}]+)\{`)
)

// analyzeCSS produces structural counts for a stylesheet.
func analyzeCSS(raw string) *CSSAnalysis {
	variables := make(map[string]bool)
	for _, m := range cssVariableRe.FindAllStringSubmatch(raw, -1) {
		variables[m[1]] = true
	}

	return &CSSAnalysis{
		RuleCount:       len(cssRuleRe.FindAllString(raw, -1)),
		MediaQueryCount: len(cssMediaRe.FindAllString(raw, -1)),
		VariableCount:   len(variables),
		SelectorCount:   countSelectors(raw),
	}
}

// countSelectors counts comma-separated selector prefixes ahead of each
// block, skipping at-rule preludes.
func countSelectors(raw string) int {
	count := 0
	for _, m := range cssPreludeRe.FindAllStringSubmatch(raw, -1) {
		prelude := strings.TrimSpace(m[1])
		if prelude == "" || strings.HasPrefix(prelude, "@") {
			continue
		}
		for _, sel := range strings.Split(prelude, ",") {
			if strings.TrimSpace(sel) != "" {
				count++
			}
		}
	}
	return count
}
