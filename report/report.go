// Package report renders a captured interpreter trace — the
// `expression`/`value`/`display`/`debug`/`define` lines written by
// run.Runner or server.Server — into a syntax-highlighted HTML
// transcript, following the markdown-to-HTML pipeline of
// cmd/rendermd/rendermarkdown.go: build HTML, walk it with goquery,
// replace code blocks with syntaxhighlight's highlighted markup.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/sourcegraph/syntaxhighlight"
)

// Record is one traced line, split into its label ("expression",
// "value", "display", "debug", "define") and rendered body.
type Record struct {
	Label string
	Body  string
}

// ParseTrace splits raw trace text (as written by arena.Trace) back
// into Records: each line starts with a left-justified 12-character
// label followed by the rendered value.
func ParseTrace(trace string) []Record {
	var recs []Record
	for _, line := range strings.Split(trace, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(strings.TrimLeft(line, "\n"), " ", 2)
		label := strings.TrimSpace(fields[0])
		body := ""
		if len(fields) > 1 {
			body = strings.TrimSpace(fields[1])
		}
		recs = append(recs, Record{Label: label, Body: body})
	}
	return recs
}

// Render turns a trace transcript into a complete, syntax-highlighted
// HTML document. title appears in the page's <title> and heading.
func Render(title string, recs []Record) ([]byte, error) {
	md := buildMarkdown(title, recs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	rendered := markdown.ToHTML(markdown.NormalizeNewlines([]byte(md)), nil, renderer)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("report: parse rendered html: %w", err)
	}

	var highlightErr error
	doc.Find("code[class*=\"language-\"]").Each(func(_ int, sel *goquery.Selection) {
		if highlightErr != nil {
			return
		}
		highlighted, err := syntaxhighlight.AsHTML([]byte(sel.Text()))
		if err != nil {
			highlightErr = fmt.Errorf("report: highlight code block: %w", err)
			return
		}
		sel.SetHtml(string(highlighted))
	})
	if highlightErr != nil {
		return nil, highlightErr
	}

	codeBlocks := doc.Find("pre code").Length()
	if codeBlocks != len(recs) {
		return nil, fmt.Errorf("report: expected %d code blocks, rendered %d", len(recs), codeBlocks)
	}

	out, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("report: serialize html: %w", err)
	}
	return []byte(out), nil
}

// buildMarkdown lays out one heading + fenced code block per record, so
// the later goquery pass has one `<pre><code class="language-lisp">`
// per record to replace with highlighted markup.
func buildMarkdown(title string, recs []Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, r := range recs {
		fmt.Fprintf(&b, "### %s\n\n```lisp\n%s\n```\n\n", r.Label, r.Body)
	}
	return b.String()
}
