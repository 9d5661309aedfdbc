package pipeline

import "time"

// ContentKind identifies which analyzer variant produced an analysis.
type ContentKind string

const (
	KindHTML       ContentKind = "html"
	KindJSON       ContentKind = "json"
	KindCSS        ContentKind = "css"
	KindJavaScript ContentKind = "javascript"
	KindText       ContentKind = "text"
)

// IssueSeverity classifies a detected content issue.
type IssueSeverity string

const (
	SeverityWarning       IssueSeverity = "warning"
	SeverityAccessibility IssueSeverity = "accessibility"
	SeverityInfo          IssueSeverity = "info"
)

// Issue is a single finding produced by the issue detector.
type Issue struct {
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// Request describes a single import invocation. Zero values for MaxBytes
// and Timeout fall back to the pipeline's configured defaults.
type Request struct {
	URL      string
	MaxBytes int64
	Timeout  time.Duration
}

// ScriptRef is the metadata sample kept for a discovered <script> element.
// Inline carries the script body when the element has no src.
type ScriptRef struct {
	Src    string `json:"src,omitempty"`
	Inline string `json:"inline,omitempty"`
	Type   string `json:"type,omitempty"`
}

// FormField describes one input within a form.
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// FormInfo is the metadata sample kept for a discovered <form> element.
type FormInfo struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Inputs []FormField `json:"inputs"`
}

// ExtractedAssets carries the raw material pulled out of an HTML document:
// full inline script/style bodies for file synthesis, plus capped metadata
// samples for inspection.
type ExtractedAssets struct {
	InlineScripts []string    `json:"inline_scripts"`
	InlineStyles  []string    `json:"inline_styles"`
	Scripts       []ScriptRef `json:"scripts"`
	Stylesheets   []string    `json:"stylesheets"`
	Forms         []FormInfo  `json:"forms"`
}

// HTMLAnalysis is the html variant of a content analysis. A non-empty Error
// means the parse failed and every other field is unpopulated.
type HTMLAnalysis struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`

	ScriptCount      int `json:"scripts"`
	StylesheetCount  int `json:"stylesheets"`
	InlineStyleCount int `json:"inline_styles"`
	FormCount        int `json:"forms"`
	LinkCount        int `json:"links"`
	ImageCount       int `json:"images"`
	WordCount        int `json:"word_count"`

	Frameworks []string        `json:"frameworks"`
	Issues     []Issue         `json:"issues"`
	Assets     ExtractedAssets `json:"assets"`

	Error string `json:"error,omitempty"`
}

// JSONAnalysis is the json variant. Structure is a depth- and breadth-capped
// summary of the parsed value, not a faithful reconstruction.
type JSONAnalysis struct {
	Valid     bool   `json:"valid"`
	Structure any    `json:"structure,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CSSAnalysis is the css variant: approximate lexical counts, not a parse.
type CSSAnalysis struct {
	RuleCount       int `json:"rules"`
	MediaQueryCount int `json:"media_queries"`
	VariableCount   int `json:"css_variables"`
	SelectorCount   int `json:"selectors"`
}

// JSAnalysis is the javascript variant: approximate lexical counts,
// not an AST-based analysis.
type JSAnalysis struct {
	FunctionCount      int `json:"functions"`
	ArrowFunctionCount int `json:"arrow_functions"`
	ClassCount         int `json:"classes"`
	ImportCount        int `json:"imports"`
	ExportCount        int `json:"exports"`
	AsyncCount         int `json:"async_functions"`
}

// TextAnalysis is the fallback variant for unrecognized content types.
type TextAnalysis struct {
	LineCount      int `json:"lines"`
	WordCount      int `json:"words"`
	CharacterCount int `json:"characters"`
}

// ContentAnalysis is a tagged union: exactly one variant pointer is non-nil
// and Kind names it.
type ContentAnalysis struct {
	Kind       ContentKind   `json:"kind"`
	HTML       *HTMLAnalysis `json:"html,omitempty"`
	JSON       *JSONAnalysis `json:"json,omitempty"`
	CSS        *CSSAnalysis  `json:"css,omitempty"`
	JavaScript *JSAnalysis   `json:"javascript,omitempty"`
	Text       *TextAnalysis `json:"text,omitempty"`
}

// SyntheticFile is a generated file record representing extracted or raw
// content for downstream storage. Size always equals len(Content).
type SyntheticFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	Size     int    `json:"size"`
	Language string `json:"language"`
}

// Result is the full outcome of one pipeline run. Files always ends with
// the _analysis.json summary record.
type Result struct {
	URL           string          `json:"url"`
	ContentType   string          `json:"content_type"`
	ContentLength int             `json:"content_length"`
	Analysis      ContentAnalysis `json:"analysis"`
	Files         []SyntheticFile `json:"files"`
}
