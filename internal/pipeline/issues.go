package pipeline

import "fmt"

// inlineStyleAdvisoryThreshold is the number of elements carrying a style
// attribute above which an advisory finding is emitted.
const inlineStyleAdvisoryThreshold = 10

// issueCheck inspects the collected document facts and reports at most one
// finding. Checks are independent and never short-circuit each other.
type issueCheck func(*documentFacts) *Issue

// issueChecks is the fixed, ordered checklist run against every parsed
// document.
var issueChecks = []issueCheck{
	checkMetaCharset,
	checkMetaViewport,
	checkImageAltText,
	checkEmptyAnchors,
	checkInlineStyleOveruse,
}

// detectIssues runs the full checklist and accumulates the findings.
func detectIssues(facts *documentFacts) []Issue {
	issues := []Issue{}
	for _, check := range issueChecks {
		if issue := check(facts); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

func checkMetaCharset(facts *documentFacts) *Issue {
	if facts.hasMetaCharset {
		return nil
	}
	return &Issue{Severity: SeverityWarning, Message: "Missing charset meta tag"}
}

func checkMetaViewport(facts *documentFacts) *Issue {
	if facts.hasMetaViewport {
		return nil
	}
	return &Issue{Severity: SeverityWarning, Message: "Missing viewport meta tag"}
}

func checkImageAltText(facts *documentFacts) *Issue {
	if facts.imagesMissingAlt == 0 {
		return nil
	}
	return &Issue{
		Severity: SeverityAccessibility,
		Message:  fmt.Sprintf("%d images missing alt attributes", facts.imagesMissingAlt),
	}
}

func checkEmptyAnchors(facts *documentFacts) *Issue {
	if facts.emptyAnchorCount == 0 {
		return nil
	}
	return &Issue{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("%d links with empty or placeholder href", facts.emptyAnchorCount),
	}
}

func checkInlineStyleOveruse(facts *documentFacts) *Issue {
	if facts.inlineStyleAttrCount <= inlineStyleAdvisoryThreshold {
		return nil
	}
	return &Issue{
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("%d elements with inline style attributes", facts.inlineStyleAttrCount),
	}
}
