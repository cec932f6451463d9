package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(md string) string {
	var buf bytes.Buffer
	Render(&buf, md)
	return buf.String()
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{"heading1", "# Title", "<h1>Title</h1>"},
		{"heading2", "## Section", "<h2>Section</h2>"},
		{"heading3", "### Sub", "<h3>Sub</h3>"},
		{"paragraph", "hello world", "<p>hello world</p>"},
		{"joined lines", "line one\nline two", "<p>line one line two</p>"},
		{"two paragraphs", "one\n\ntwo", "<p>one</p><p>two</p>"},
		{"unordered list", "- a\n- b", "<ul><li>a</li><li>b</li></ul>"},
		{"star list", "* a\n* b", "<ul><li>a</li><li>b</li></ul>"},
		{"ordered list", "1. a\n2. b", "<ol><li>a</li><li>b</li></ol>"},
		{"blockquote", "> wise words", "<blockquote><p>wise words</p></blockquote>"},
		{"list then paragraph", "- a\n\ntext", "<ul><li>a</li></ul><p>text</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(tt.md); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.md, got, tt.want)
			}
		})
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		md   string
		want string
	}{
		{"**bold**", "<p><strong>bold</strong></p>"},
		{"*italic*", "<p><em>italic</em></p>"},
		{"`code`", "<p><code>code</code></p>"},
		{"[text](https://example.com)", `<p><a href="https://example.com">text</a></p>`},
		{"![alt](/public/img.jpg)", `<p><img src="/public/img.jpg" alt="alt" loading="lazy"></p>`},
	}
	for _, tt := range tests {
		if got := render(tt.md); got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.md, got, tt.want)
		}
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	got := render("<script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML must be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag, got %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != "<h1>Hi</h1>" {
		t.Errorf("got %q, want <h1>Hi</h1>", buf.String())
	}
}
