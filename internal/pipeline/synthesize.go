package pipeline

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

// Language tags assigned to synthesized files.
const (
	langHTML       = "HTML"
	langJavaScript = "JavaScript"
	langCSS        = "CSS"
	langJSON       = "JSON"
	langText       = "Text"
)

// htmlStatistics mirrors the counts and lists of an html analysis for the
// summary record.
type htmlStatistics struct {
	Scripts      int      `json:"scripts"`
	Stylesheets  int      `json:"stylesheets"`
	InlineStyles int      `json:"inline_styles"`
	Forms        int      `json:"forms"`
	Links        int      `json:"links"`
	Images       int      `json:"images"`
	WordCount    int      `json:"word_count"`
	Frameworks   []string `json:"frameworks"`
	Issues       []Issue  `json:"issues"`
}

// analysisSummary is the payload of the trailing _analysis.json record.
type analysisSummary struct {
	URL        string      `json:"url"`
	Type       ContentKind `json:"type"`
	Timestamp  string      `json:"timestamp"`
	Statistics any         `json:"statistics"`
}

// synthesizeFiles maps a completed analysis onto an ordered list of synthetic
// file records, always terminated by the _analysis.json summary.
func synthesizeFiles(analysis ContentAnalysis, rawText, sourceURL string) []SyntheticFile {
	dir := directoryPath(sourceURL)
	var files []SyntheticFile

	switch analysis.Kind {
	case KindHTML:
		files = append(files, newFile("index.html", dir, rawText, langHTML))

		if analysis.HTML != nil {
			if scripts := analysis.HTML.Assets.InlineScripts; len(scripts) > 0 {
				files = append(files, newFile("scripts.js", dir, strings.Join(scripts, "\n"), langJavaScript))
			}
			if styles := analysis.HTML.Assets.InlineStyles; len(styles) > 0 {
				files = append(files, newFile("styles.css", dir, strings.Join(styles, "\n"), langCSS))
			}
		}

	case KindJSON:
		files = append(files, newFile("data.json", dir, rawText, langJSON))

	case KindCSS:
		files = append(files, newFile("styles.css", dir, rawText, langCSS))

	case KindJavaScript:
		files = append(files, newFile("script.js", dir, rawText, langJavaScript))

	default:
		files = append(files, newFile("content.txt", dir, rawText, langText))
	}

	files = append(files, summaryFile(analysis, sourceURL, dir))
	return files
}

// summaryFile builds the trailing _analysis.json record. Its recorded size
// is the true serialized length, consistent with every other record.
func summaryFile(analysis ContentAnalysis, sourceURL, dir string) SyntheticFile {
	summary := analysisSummary{
		URL:        sourceURL,
		Type:       analysis.Kind,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Statistics: statisticsFor(analysis),
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		// Every summary value is marshalable; this is unreachable in
		// practice but degrades to an empty object rather than panicking.
		data = []byte("{}")
	}

	return newFile("_analysis.json", dir, string(data), langJSON)
}

func statisticsFor(analysis ContentAnalysis) any {
	switch analysis.Kind {
	case KindHTML:
		if analysis.HTML == nil {
			return nil
		}
		return htmlStatistics{
			Scripts:      analysis.HTML.ScriptCount,
			Stylesheets:  analysis.HTML.StylesheetCount,
			InlineStyles: analysis.HTML.InlineStyleCount,
			Forms:        analysis.HTML.FormCount,
			Links:        analysis.HTML.LinkCount,
			Images:       analysis.HTML.ImageCount,
			WordCount:    analysis.HTML.WordCount,
			Frameworks:   analysis.HTML.Frameworks,
			Issues:       analysis.HTML.Issues,
		}
	case KindJSON:
		return analysis.JSON
	case KindCSS:
		return analysis.CSS
	case KindJavaScript:
		return analysis.JavaScript
	default:
		return analysis.Text
	}
}

// directoryPath derives a deterministic storage path from the source URL's
// hostname, with dots replaced by underscores.
func directoryPath(sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Hostname() == "" {
		return "/imported"
	}
	return "/" + strings.ReplaceAll(parsed.Hostname(), ".", "_")
}

func newFile(filename, dir, content, language string) SyntheticFile {
	return SyntheticFile{
		Filename: filename,
		Path:     dir,
		Content:  content,
		Size:     len(content),
		Language: language,
	}
}
