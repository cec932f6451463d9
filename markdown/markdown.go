// Package markdown provides a simple Markdown-to-HTML renderer as a templ
// component, covering the subset page authors use: headings, paragraphs,
// emphasis, links, images, lists, and blockquotes.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reImg        = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s+`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	inPara := false
	inList := false
	inOrdered := false
	inQuote := false

	flushPara := func() {
		if inPara {
			buf.WriteString("</p>")
			inPara = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
		if inOrdered {
			buf.WriteString("</ol>")
			inOrdered = false
		}
	}
	flushQuote := func() {
		if inQuote {
			buf.WriteString("</blockquote>")
			inQuote = false
		}
	}
	flushAll := func() {
		flushPara()
		flushList()
		flushQuote()
	}

	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flushAll()

		case strings.HasPrefix(trimmed, "### "):
			flushAll()
			fmt.Fprintf(buf, "<h3>%s</h3>", inline(strings.TrimPrefix(trimmed, "### ")))

		case strings.HasPrefix(trimmed, "## "):
			flushAll()
			fmt.Fprintf(buf, "<h2>%s</h2>", inline(strings.TrimPrefix(trimmed, "## ")))

		case strings.HasPrefix(trimmed, "# "):
			flushAll()
			fmt.Fprintf(buf, "<h1>%s</h1>", inline(strings.TrimPrefix(trimmed, "# ")))

		case strings.HasPrefix(trimmed, "> "):
			flushPara()
			flushList()
			if !inQuote {
				buf.WriteString("<blockquote>")
				inQuote = true
			}
			fmt.Fprintf(buf, "<p>%s</p>", inline(strings.TrimPrefix(trimmed, "> ")))

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			flushPara()
			flushQuote()
			if inOrdered {
				buf.WriteString("</ol>")
				inOrdered = false
			}
			if !inList {
				buf.WriteString("<ul>")
				inList = true
			}
			fmt.Fprintf(buf, "<li>%s</li>", inline(trimmed[2:]))

		case reOrdered.MatchString(trimmed):
			flushPara()
			flushQuote()
			if inList {
				buf.WriteString("</ul>")
				inList = false
			}
			if !inOrdered {
				buf.WriteString("<ol>")
				inOrdered = true
			}
			fmt.Fprintf(buf, "<li>%s</li>", inline(reOrdered.ReplaceAllString(trimmed, "")))

		default:
			flushList()
			flushQuote()
			if !inPara {
				buf.WriteString("<p>")
				inPara = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(inline(trimmed))
		}
	}
	flushAll()
}

// inline escapes the line and applies inline markdown: images before links
// (an image is a link with a bang), code, bold before italic.
func inline(s string) string {
	s = html.EscapeString(s)
	s = reImg.ReplaceAllString(s, `<img src="$2" alt="$1" loading="lazy">`)
	s = reLink.ReplaceAllString(s, `<a href="$2">$1</a>`)
	s = reInlineCode.ReplaceAllString(s, `<code>$1</code>`)
	s = reBold.ReplaceAllString(s, `<strong>$1</strong>`)
	s = reItalic.ReplaceAllString(s, `<em>$1</em>`)
	return s
}
