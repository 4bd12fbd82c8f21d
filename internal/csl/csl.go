// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package csl renders Zotero items as CSL-YAML, the bibliography format
// read by Pandoc and most citation processors.
package csl

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zotero-mcp/internal/format"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Format names the output produced by Render.
const Format = "csl-yaml"

// Item is one CSL entry. Field names follow the CSL-JSON schema.
type Item struct {
	ID             string  `yaml:"id"`
	Type           string  `yaml:"type"`
	Title          string  `yaml:"title"`
	Author         []Name  `yaml:"author,omitempty"`
	Editor         []Name  `yaml:"editor,omitempty"`
	ContainerTitle string  `yaml:"container-title,omitempty"`
	Publisher      string  `yaml:"publisher,omitempty"`
	Volume         string  `yaml:"volume,omitempty"`
	Issue          string  `yaml:"issue,omitempty"`
	Page           string  `yaml:"page,omitempty"`
	Issued         *Date   `yaml:"issued,omitempty"`
	DOI            string  `yaml:"DOI,omitempty"`
	ISBN           string  `yaml:"ISBN,omitempty"`
	ISSN           string  `yaml:"ISSN,omitempty"`
	URL            string  `yaml:"URL,omitempty"`
	Abstract       string  `yaml:"abstract,omitempty"`
	Keyword        string  `yaml:"keyword,omitempty"`
	Note           *string `yaml:"note,omitempty"`
}

// Name is a person or organization. Single-field creators use Literal.
type Name struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// Date is a CSL date as date-parts.
type Date struct {
	DateParts [][]int `yaml:"date-parts"`
}

// itemTypes maps Zotero item types to CSL types. Unlisted types become
// "document".
var itemTypes = map[string]string{
	"artwork":             "graphic",
	"audioRecording":      "song",
	"bill":                "bill",
	"blogPost":            "post-weblog",
	"book":                "book",
	"bookSection":         "chapter",
	"case":                "legal_case",
	"conferencePaper":     "paper-conference",
	"dataset":             "dataset",
	"dictionaryEntry":     "entry-dictionary",
	"document":            "document",
	"email":               "personal_communication",
	"encyclopediaArticle": "entry-encyclopedia",
	"film":                "motion_picture",
	"forumPost":           "post",
	"hearing":             "hearing",
	"instantMessage":      "personal_communication",
	"interview":           "interview",
	"journalArticle":      "article-journal",
	"letter":              "personal_communication",
	"magazineArticle":     "article-magazine",
	"manuscript":          "manuscript",
	"map":                 "map",
	"newspaperArticle":    "article-newspaper",
	"patent":              "patent",
	"podcast":             "song",
	"preprint":            "article",
	"presentation":        "speech",
	"radioBroadcast":      "broadcast",
	"report":              "report",
	"software":            "software",
	"standard":            "standard",
	"statute":             "legislation",
	"thesis":              "thesis",
	"tvBroadcast":         "broadcast",
	"videoRecording":      "motion_picture",
	"webpage":             "webpage",
}

// Type returns the CSL type for a Zotero item type.
func Type(itemType string) string {
	if t, ok := itemTypes[itemType]; ok {
		return t
	}
	return "document"
}

// Items converts bibliographic records to CSL entries. Notes and
// attachments are skipped. The entry ID is the citation key when one is
// known and the item key otherwise.
func Items(recs []types.RawRecord, citationKeys map[string]string) []Item {
	out := make([]Item, 0, len(recs))
	for _, rec := range recs {
		if rec.Kind() != types.KindStandard {
			continue
		}
		out = append(out, toItem(rec, citationKeys))
	}
	return out
}

// Write encodes items as a CSL-YAML list.
func Write(w io.Writer, items []Item) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// Render converts records and returns the CSL-YAML text.
func Render(recs []types.RawRecord, citationKeys map[string]string) (string, error) {
	var b strings.Builder
	if err := Write(&b, Items(recs, citationKeys)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func toItem(rec types.RawRecord, citationKeys map[string]string) Item {
	data := rec.Data
	key := rec.ItemKey()

	item := Item{
		ID:             key,
		Type:           Type(rec.ItemType()),
		Title:          text(data, "title"),
		ContainerTitle: firstText(data, "publicationTitle", "bookTitle", "proceedingsTitle", "websiteTitle", "blogTitle"),
		Publisher:      firstText(data, "publisher", "university", "institution"),
		Volume:         text(data, "volume"),
		Issue:          text(data, "issue"),
		Page:           text(data, "pages"),
		DOI:            text(data, "DOI"),
		ISBN:           text(data, "ISBN"),
		ISSN:           text(data, "ISSN"),
		URL:            text(data, "url"),
		Abstract:       text(data, "abstractNote"),
	}
	if ck := citationKeys[key]; ck != "" {
		item.ID = ck
	}

	for _, c := range format.Creators(data["creators"]) {
		name := toName(c)
		if name == (Name{}) {
			continue
		}
		switch c.CreatorType {
		case "editor", "seriesEditor":
			item.Editor = append(item.Editor, name)
		case "", "author", "inventor", "programmer", "presenter", "director", "artist", "podcaster", "interviewee":
			item.Author = append(item.Author, name)
		}
	}

	item.Issued = parseDate(text(rec.Meta, "parsedDate"))
	if item.Issued == nil {
		item.Issued = parseDate(text(data, "date"))
	}

	item.Keyword = strings.Join(format.TagNames(data["tags"]), ", ")
	if extra := text(data, "extra"); extra != "" {
		item.Note = &extra
	}
	return item
}

func toName(c types.Creator) Name {
	first := strings.TrimSpace(c.FirstName)
	last := strings.TrimSpace(c.LastName)
	if first == "" && last == "" {
		return Name{Literal: strings.TrimSpace(c.Name)}
	}
	if last == "" {
		return Name{Literal: first}
	}
	return Name{Family: last, Given: first}
}

// parseDate reads a leading YYYY, YYYY-MM or YYYY-MM-DD. Anything else
// yields nil.
func parseDate(s string) *Date {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	var nums []int
	for i, p := range parts {
		if i == 2 && len(p) > 2 {
			p = p[:2]
		}
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			break
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 || len(parts[0]) != 4 {
		return nil
	}
	return &Date{DateParts: [][]int{nums}}
}

func text(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func firstText(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := text(m, k); s != "" {
			return s
		}
	}
	return ""
}
