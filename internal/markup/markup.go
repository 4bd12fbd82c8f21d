// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup converts the HTML subset used in Zotero notes to Markdown.
//
// The conversion is a fixed, ordered list of pattern rewrites, each applied
// once over the whole input, followed by stripping any tag that survived.
// It is lossy and best effort: nested or malformed markup yields imperfect
// text, never an error. HTML entities are left as they are.
package markup

import (
	"regexp"
	"strings"
)

// rule is one rewrite step.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules is applied in order. Headings run from level 6 down to 1 so that a
// level's replacement is computed before any shorter prefix could touch it.
// Inline tag patterns require the tag name to end at '>' or whitespace so
// that <b> does not match <br> or <blockquote> and <i> does not match <img>.
var rules = []rule{
	{regexp.MustCompile(`(?is)<h6(?:\s[^>]*)?>(.*?)</h6>`), "###### $1\n\n"},
	{regexp.MustCompile(`(?is)<h5(?:\s[^>]*)?>(.*?)</h5>`), "##### $1\n\n"},
	{regexp.MustCompile(`(?is)<h4(?:\s[^>]*)?>(.*?)</h4>`), "#### $1\n\n"},
	{regexp.MustCompile(`(?is)<h3(?:\s[^>]*)?>(.*?)</h3>`), "### $1\n\n"},
	{regexp.MustCompile(`(?is)<h2(?:\s[^>]*)?>(.*?)</h2>`), "## $1\n\n"},
	{regexp.MustCompile(`(?is)<h1(?:\s[^>]*)?>(.*?)</h1>`), "# $1\n\n"},

	{regexp.MustCompile(`(?is)<(?:strong|b)(?:\s[^>]*)?>(.*?)</(?:strong|b)>`), "**$1**"},
	{regexp.MustCompile(`(?is)<(?:em|i)(?:\s[^>]*)?>(.*?)</(?:em|i)>`), "*$1*"},

	{regexp.MustCompile(`(?i)</?(?:ul|ol)(?:\s[^>]*)?>`), "\n\n"},
	{regexp.MustCompile(`(?is)<li(?:\s[^>]*)?>(.*?)</li>`), "- $1\n"},
	{regexp.MustCompile(`(?is)<p(?:\s[^>]*)?>(.*?)</p>`), "$1\n\n"},
	{regexp.MustCompile(`(?i)<br\s*/?>`), "\n"},
	{regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*["']([^"']*)["'][^>]*>(.*?)</a>`), "[$2]($1)"},
}

var anyTag = regexp.MustCompile(`(?s)<[^>]*>`)

// ToMarkdown converts a note's HTML body to Markdown text, trimmed of
// leading and trailing whitespace. Input without tags is returned trimmed
// and otherwise unchanged.
func ToMarkdown(html string) string {
	out := html
	for _, r := range rules {
		out = r.re.ReplaceAllString(out, r.repl)
	}
	out = anyTag.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
