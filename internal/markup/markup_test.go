// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"fmt"
	"strings"
	"testing"
)

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"heading and paragraph", "<h1>Title</h1><p>Body</p>", "# Title\n\nBody"},
		{"level three heading", "<h3>Methods</h3>", "### Methods"},
		{"heading with attributes", `<h2 id="x">Results</h2>`, "## Results"},
		{"bold", "<p><strong>key</strong> point</p>", "**key** point"},
		{"short bold", "<b>key</b>", "**key**"},
		{"italic", "<em>et al.</em>", "*et al.*"},
		{"short italic", "<i>in vivo</i>", "*in vivo*"},
		{"unordered list", "<ul><li>one</li><li>two</li></ul>", "- one\n- two"},
		{"ordered list", "<ol><li>first</li></ol>", "- first"},
		{"list set off by blank lines", "Intro<ul><li>a</li></ul>After", "Intro\n\n- a\n\n\nAfter"},
		{"line break", "line one<br>line two<br/>line three<br />end", "line one\nline two\nline three\nend"},
		{"link", `<a href="https://doi.org/10.1/x">paper</a>`, "[paper](https://doi.org/10.1/x)"},
		{"link with extra attributes", `<a rel="noopener" href="https://example.org" target="_blank">site</a>`, "[site](https://example.org)"},
		{"unknown tags stripped", `<div data-schema-version="9"><span style="color:red">red</span></div>`, "red"},
		{"br is not bold", "a<br>b", "a\nb"},
		{"blockquote is not bold", "<blockquote>quoted</blockquote>", "quoted"},
		{"img is not italic", `<img src="x.png">caption`, "caption"},
		{"entities kept", "<p>Smith &amp; Jones</p>", "Smith &amp; Jones"},
		{"surrounding whitespace trimmed", "  \n<p>text</p>\n  ", "text"},
		{"empty", "", ""},
		{"malformed does not panic", "<p>unclosed <strong>bold", "unclosed bold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMarkdown(tt.html); got != tt.want {
				t.Errorf("ToMarkdown(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestToMarkdownHeadingLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		t.Run(fmt.Sprintf("h%d", level), func(t *testing.T) {
			html := fmt.Sprintf("<h%d>Heading</h%d>", level, level)
			want := strings.Repeat("#", level) + " Heading"
			if got := ToMarkdown(html); got != want {
				t.Errorf("ToMarkdown(%q) = %q, want %q", html, got, want)
			}
		})
	}
}

func TestToMarkdownMixedHeadingsDoNotLeak(t *testing.T) {
	html := "<h1>A</h1><h6>F</h6><h2>B</h2>"
	want := "# A\n\n###### F\n\n## B"
	if got := ToMarkdown(html); got != want {
		t.Errorf("ToMarkdown() = %q, want %q", got, want)
	}
}

func TestToMarkdownIdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"plain text",
		"  padded text  ",
		"# Already markdown\n\n- item\n**bold**",
		"Smith &amp; Jones",
		"[link](https://example.org)",
	}
	for _, in := range inputs {
		once := ToMarkdown(in)
		twice := ToMarkdown(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
