package pipeline

import (
	"regexp"
	"strings"
)

// The JavaScript analyzer is a coarse lexical scan, not an AST-based
// analysis; minified or unusual code may skew the counts.
var (
	jsFunctionRe = regexp.MustCompile(`\bfunction\s+[A-Za-z_$][\w$]*`)
	jsClassRe    = regexp.MustCompile(`\bclass\s+[A-Za-z_$][\w$]*`)
	jsImportRe   = regexp.MustCompile(`\bimport\b[^;\n]*\bfrom\b`)
	jsExportRe   = regexp.MustCompile(`\bexport\b`)
	jsAsyncRe    = regexp.MustCompile(`\basync\b`)
)

// analyzeJavaScript produces structural counts for a script body.
func analyzeJavaScript(raw string) *JSAnalysis {
	return &JSAnalysis{
		FunctionCount:      len(jsFunctionRe.FindAllString(raw, -1)),
		ArrowFunctionCount: strings.Count(raw, "=>"),
		ClassCount:         len(jsClassRe.FindAllString(raw, -1)),
		ImportCount:        len(jsImportRe.FindAllString(raw, -1)),
		ExportCount:        len(jsExportRe.FindAllString(raw, -1)),
		AsyncCount:         len(jsAsyncRe.FindAllString(raw, -1)),
	}
}
