package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

const (
	maxScriptSamples     = 10
	maxStylesheetSamples = 10
	maxFormSamples       = 5
)

// documentFacts is the shared parsed-document value the framework and issue
// detectors run over. It is filled by a single DFS traversal.
type documentFacts struct {
	title       string
	description string
	keywords    string

	scripts      []ScriptRef
	stylesheets  []string
	inlineStyles []string
	forms        []FormInfo

	linkCount            int
	emptyAnchorCount     int
	imageCount           int
	imagesMissingAlt     int
	inlineStyleAttrCount int

	hasMetaCharset  bool
	hasMetaViewport bool

	bodyNode *html.Node
}

// analyzeHTML parses the document and builds the html analysis variant.
// A parse failure degrades to an analysis carrying only the error message;
// it is never propagated to the caller.
func analyzeHTML(rawHTML string) *HTMLAnalysis {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return &HTMLAnalysis{Error: fmt.Sprintf("HTML parsing failed: %v", err)}
	}

	facts := &documentFacts{}
	collectFacts(doc, facts)

	wordCount := 0
	if facts.bodyNode != nil {
		wordCount = len(strings.Fields(textContent(facts.bodyNode)))
	}

	analysis := &HTMLAnalysis{
		Title:       facts.title,
		Description: facts.description,
		Keywords:    facts.keywords,

		ScriptCount:      len(facts.scripts),
		StylesheetCount:  len(facts.stylesheets),
		InlineStyleCount: len(facts.inlineStyles),
		FormCount:        len(facts.forms),
		LinkCount:        facts.linkCount,
		ImageCount:       facts.imageCount,
		WordCount:        wordCount,

		Frameworks: detectFrameworks(rawHTML, scriptSources(facts.scripts)),
		Issues:     detectIssues(facts),

		Assets: ExtractedAssets{
			InlineScripts: inlineScriptBodies(facts.scripts),
			InlineStyles:  facts.inlineStyles,
			Scripts:       capScripts(facts.scripts, maxScriptSamples),
			Stylesheets:   capStrings(facts.stylesheets, maxStylesheetSamples),
			Forms:         capForms(facts.forms, maxFormSamples),
		},
	}

	return analysis
}

// collectFacts performs a depth-first traversal of the parsed document.
func collectFacts(n *html.Node, facts *documentFacts) {
	if n.Type == html.ElementNode {
		processElement(n, facts)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectFacts(c, facts)
	}
}

// processElement routes elements of interest to their extractors.
func processElement(n *html.Node, facts *documentFacts) {
	if hasAttr(n, "style") {
		facts.inlineStyleAttrCount++
	}

	switch n.Data {
	case "title":
		if facts.title == "" {
			facts.title = strings.TrimSpace(textContent(n))
		}
	case "meta":
		extractMeta(n, facts)
	case "script":
		extractScript(n, facts)
	case "link":
		extractStylesheetLink(n, facts)
	case "style":
		if body := textContent(n); strings.TrimSpace(body) != "" {
			facts.inlineStyles = append(facts.inlineStyles, body)
		}
	case "form":
		facts.forms = append(facts.forms, extractForm(n))
	case "a":
		extractAnchor(n, facts)
	case "img":
		extractImage(n, facts)
	case "body":
		if facts.bodyNode == nil {
			facts.bodyNode = n
		}
	}
}

func extractMeta(n *html.Node, facts *documentFacts) {
	if hasAttr(n, "charset") {
		facts.hasMetaCharset = true
	}

	name := strings.ToLower(getAttr(n, "name"))
	content := getAttr(n, "content")

	switch name {
	case "description":
		facts.description = content
	case "keywords":
		facts.keywords = content
	case "viewport":
		facts.hasMetaViewport = true
	}
}

// extractScript records a script tuple; elements with neither a src nor an
// inline body are dropped.
func extractScript(n *html.Node, facts *documentFacts) {
	src := getAttr(n, "src")
	inline := textContent(n)

	if src == "" && strings.TrimSpace(inline) == "" {
		return
	}
	if src != "" {
		inline = ""
	}

	facts.scripts = append(facts.scripts, ScriptRef{
		Src:    src,
		Inline: inline,
		Type:   getAttr(n, "type"),
	})
}

func extractStylesheetLink(n *html.Node, facts *documentFacts) {
	if !strings.EqualFold(getAttr(n, "rel"), "stylesheet") {
		return
	}
	if href := getAttr(n, "href"); href != "" {
		facts.stylesheets = append(facts.stylesheets, href)
	}
}

func extractForm(n *html.Node) FormInfo {
	form := FormInfo{
		Action: getAttr(n, "action"),
		Method: getAttr(n, "method"),
		Inputs: []FormField{},
	}
	collectFormInputs(n, &form)
	return form
}

func collectFormInputs(n *html.Node, form *FormInfo) {
	if n.Type == html.ElementNode && n.Data == "input" {
		form.Inputs = append(form.Inputs, FormField{
			Name:     getAttr(n, "name"),
			Type:     getAttr(n, "type"),
			Required: hasAttr(n, "required"),
		})
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectFormInputs(c, form)
	}
}

func extractAnchor(n *html.Node, facts *documentFacts) {
	href, present := lookupAttr(n, "href")

	if !present || href == "" || href == "#" {
		facts.emptyAnchorCount++
		return
	}
	if strings.HasPrefix(href, "#") {
		// Fragment-only navigation, not a link to content.
		return
	}
	facts.linkCount++
}

func extractImage(n *html.Node, facts *documentFacts) {
	if getAttr(n, "src") == "" {
		return
	}
	facts.imageCount++
	if !hasAttr(n, "alt") {
		facts.imagesMissingAlt++
	}
}

// textContent gathers the text beneath a node, skipping script and style
// subtrees so page chrome does not pollute word counts.
func textContent(n *html.Node) string {
	var sb strings.Builder
	appendText(n, &sb)
	return sb.String()
}

func appendText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "script" || c.Data == "style") {
			continue
		}
		appendText(c, sb)
		if c.Type == html.ElementNode {
			sb.WriteString(" ")
		}
	}
}

// Attribute helpers

func getAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)
	return ok
}

// Sample capping and asset extraction helpers

func scriptSources(scripts []ScriptRef) []string {
	srcs := make([]string, 0, len(scripts))
	for _, s := range scripts {
		if s.Src != "" {
			srcs = append(srcs, s.Src)
		}
	}
	return srcs
}

func inlineScriptBodies(scripts []ScriptRef) []string {
	var bodies []string
	for _, s := range scripts {
		if s.Src == "" && strings.TrimSpace(s.Inline) != "" {
			bodies = append(bodies, s.Inline)
		}
	}
	if bodies == nil {
		bodies = []string{}
	}
	return bodies
}

func capScripts(scripts []ScriptRef, limit int) []ScriptRef {
	if scripts == nil {
		return []ScriptRef{}
	}
	if len(scripts) > limit {
		return scripts[:limit]
	}
	return scripts
}

func capStrings(values []string, limit int) []string {
	if values == nil {
		return []string{}
	}
	if len(values) > limit {
		return values[:limit]
	}
	return values
}

func capForms(forms []FormInfo, limit int) []FormInfo {
	if forms == nil {
		return []FormInfo{}
	}
	if len(forms) > limit {
		return forms[:limit]
	}
	return forms
}
