package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// skippedElements are subtrees that never contain readable article text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
	"iframe":   true,
	"svg":      true,
	"button":   true,
}

// blockElements get a line break around their text so paragraphs and
// headings stay separated after extraction.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "blockquote": true, "pre": true, "br": true,
	"td": true, "th": true, "ul": true, "ol": true, "table": true,
}

// ExtractText parses HTML markup and returns its readable text.
// Boilerplate subtrees (scripts, navigation, forms) are dropped and
// whitespace is collapsed. Returns an empty string when the document
// holds no text.
func ExtractText(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	walk(doc, &sb)

	return collapse(sb.String())
}

func walk(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return
	}

	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}

	isBlock := n.Type == html.ElementNode && blockElements[n.Data]
	if isBlock {
		sb.WriteString("\n")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, sb)
	}

	if isBlock {
		sb.WriteString("\n")
	}
}

// collapse normalizes whitespace: runs of spaces and tabs become one
// space, runs of blank lines become one blank line.
func collapse(text string) string {
	lines := strings.Split(text, "\n")

	var out []string
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
