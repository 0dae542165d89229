package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlToText reduces an HTML document to markdown-ish text: headings
// become #-prefixed lines so the chunking strategies see the same
// structure markers as in native markdown, list items become bullets,
// script and style content is dropped.
func htmlToText(src string) (string, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	renderNode(&sb, root)

	// Collapse runs of blank lines left by dropped elements.
	lines := strings.Split(sb.String(), "\n")
	var out []string
	blank := 0
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, strings.TrimRight(ln, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n", nil
}

var headingMarks = map[string]string{
	"h1": "# ", "h2": "## ", "h3": "### ",
	"h4": "#### ", "h5": "##### ", "h6": "###### ",
}

func renderNode(sb *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "head":
			return
		}
		if mark, ok := headingMarks[n.Data]; ok {
			sb.WriteString("\n\n")
			sb.WriteString(mark)
			sb.WriteString(strings.TrimSpace(textContent(n)))
			sb.WriteString("\n\n")
			return
		}
		switch n.Data {
		case "li":
			sb.WriteString("\n- ")
		case "p", "div", "section", "article", "tr", "br", "ul", "ol", "table":
			sb.WriteString("\n")
		case "pre", "code":
			// Leave inline; block code keeps its own newlines.
		}
	}

	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderNode(sb, child)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "section", "article", "tr", "ul", "ol", "table":
			sb.WriteString("\n")
		}
	}
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
