package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width">
<meta name="description" content="A demo page">
<meta name="keywords" content="demo,test">
<title>Demo Page</title>
<link rel="stylesheet" href="/main.css">
<link rel="icon" href="/favicon.ico">
<style>body { margin: 0; }</style>
<script src="/app.js"></script>
<script>console.log("inline");</script>
</head>
<body>
<p>Hello world from the demo page</p>
<a href="/about">About</a>
<a href="#">Empty</a>
<a href="#section">Fragment</a>
<img src="/a.png" alt="a">
<img src="/b.png">
<form action="/login" method="post">
<input name="user" type="text" required>
<input name="pass" type="password">
</form>
</body>
</html>`

func TestAnalyzeHTML_DemoPage(t *testing.T) {
	analysis := analyzeHTML(demoPage)
	require.Empty(t, analysis.Error)

	assert.Equal(t, "Demo Page", analysis.Title)
	assert.Equal(t, "A demo page", analysis.Description)
	assert.Equal(t, "demo,test", analysis.Keywords)

	assert.Equal(t, 2, analysis.ScriptCount)
	assert.Equal(t, 1, analysis.StylesheetCount)
	assert.Equal(t, 1, analysis.InlineStyleCount)
	assert.Equal(t, 1, analysis.FormCount)
	assert.Equal(t, 1, analysis.LinkCount, "fragment and placeholder anchors are not content links")
	assert.Equal(t, 2, analysis.ImageCount)
	assert.Equal(t, 9, analysis.WordCount)

	assert.Empty(t, analysis.Frameworks)
}

func TestAnalyzeHTML_Assets(t *testing.T) {
	analysis := analyzeHTML(demoPage)
	require.Empty(t, analysis.Error)

	assert.Equal(t, []string{`console.log("inline");`}, analysis.Assets.InlineScripts)
	assert.Equal(t, []string{"body { margin: 0; }"}, analysis.Assets.InlineStyles)
	assert.Equal(t, []string{"/main.css"}, analysis.Assets.Stylesheets)

	require.Len(t, analysis.Assets.Scripts, 2)
	assert.Equal(t, "/app.js", analysis.Assets.Scripts[0].Src)
	assert.Empty(t, analysis.Assets.Scripts[0].Inline, "external scripts carry no inline body")
	assert.Equal(t, `console.log("inline");`, analysis.Assets.Scripts[1].Inline)

	require.Len(t, analysis.Assets.Forms, 1)
	form := analysis.Assets.Forms[0]
	assert.Equal(t, "/login", form.Action)
	assert.Equal(t, "post", form.Method)
	require.Len(t, form.Inputs, 2)
	assert.Equal(t, FormField{Name: "user", Type: "text", Required: true}, form.Inputs[0])
	assert.Equal(t, FormField{Name: "pass", Type: "password", Required: false}, form.Inputs[1])
}

func TestAnalyzeHTML_SampleCaps(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><head>")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, `<script src="/js/mod%d.js"></script>`, i)
		fmt.Fprintf(&sb, `<link rel="stylesheet" href="/css/mod%d.css">`, i)
	}
	sb.WriteString("</head><body>")
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&sb, `<form action="/f%d"><input name="q"></form>`, i)
	}
	sb.WriteString("</body></html>")

	analysis := analyzeHTML(sb.String())
	require.Empty(t, analysis.Error)

	// Counts reflect the full document, samples are capped.
	assert.Equal(t, 12, analysis.ScriptCount)
	assert.Equal(t, 12, analysis.StylesheetCount)
	assert.Equal(t, 7, analysis.FormCount)
	assert.Len(t, analysis.Assets.Scripts, 10)
	assert.Len(t, analysis.Assets.Stylesheets, 10)
	assert.Len(t, analysis.Assets.Forms, 5)
}

func TestAnalyzeHTML_EmptyDocument(t *testing.T) {
	analysis := analyzeHTML("")
	require.Empty(t, analysis.Error)

	assert.Empty(t, analysis.Title)
	assert.Zero(t, analysis.ScriptCount)
	assert.Zero(t, analysis.WordCount)
	assert.Empty(t, analysis.Frameworks)
	assert.Equal(t, []string{}, analysis.Assets.InlineScripts)
}

func TestAnalyzeHTML_WordCountSkipsScriptAndStyle(t *testing.T) {
	doc := `<html><body>
<p>one two three</p>
<script>var ignored = "hidden words in script";</script>
<style>.ignored { color: red; }</style>
</body></html>`

	analysis := analyzeHTML(doc)
	require.Empty(t, analysis.Error)
	assert.Equal(t, 3, analysis.WordCount)
}

func TestAnalyzeHTML_FirstTitleWins(t *testing.T) {
	doc := `<html><head><title>First</title><title>Second</title></head><body></body></html>`
	analysis := analyzeHTML(doc)
	assert.Equal(t, "First", analysis.Title)
}
