package pipeline

import "strings"

// frameworkSignal pairs a substring marker with the canonical name it
// implies. Matching is case-sensitive and explicitly best-effort: renamed
// bundles produce false negatives and coincidental substrings produce false
// positives, and neither is treated as a defect.
type frameworkSignal struct {
	marker string
	name   string
}

// markupSignals are directive-like markers checked against the raw HTML.
var markupSignals = []frameworkSignal{
	{"ng-app", "Angular"},
	{"ng-controller", "Angular"},
	{"v-model", "Vue"},
	{"v-for", "Vue"},
	{"data-react", "React"},
}

// scriptSignals are checked against the src attributes of discovered scripts.
var scriptSignals = []frameworkSignal{
	{"react", "React"},
	{"vue", "Vue"},
	{"angular", "Angular"},
	{"jquery", "jQuery"},
	{"bootstrap", "Bootstrap"},
	{"tailwind", "Tailwind"},
}

// detectFrameworks scans the raw markup and the script sources for known
// framework signals, returning the deduplicated union of matched names.
func detectFrameworks(rawHTML string, scriptSrcs []string) []string {
	seen := make(map[string]bool)
	detected := []string{}

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			detected = append(detected, name)
		}
	}

	for _, sig := range markupSignals {
		if strings.Contains(rawHTML, sig.marker) {
			add(sig.name)
		}
	}

	joined := strings.Join(scriptSrcs, "\n")
	for _, sig := range scriptSignals {
		if strings.Contains(joined, sig.marker) {
			add(sig.name)
		}
	}

	return detected
}
