// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package csl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zotero-mcp/pkg/types"
)

func article() types.RawRecord {
	return types.RawRecord{
		Key:  "ABCD1234",
		Meta: map[string]any{"parsedDate": "2017-06-12"},
		Data: map[string]any{
			"itemType": "journalArticle",
			"title":    "Attention Is All You Need",
			"creators": []any{
				map[string]any{"creatorType": "author", "firstName": "Ashish", "lastName": "Vaswani"},
				map[string]any{"creatorType": "author", "name": "Google Brain"},
				map[string]any{"creatorType": "editor", "firstName": "I.", "lastName": "Guyon"},
				map[string]any{"creatorType": "contributor", "firstName": "X", "lastName": "Y"},
			},
			"publicationTitle": "NeurIPS",
			"volume":           "30",
			"pages":            "5998-6008",
			"DOI":              "10.5555/3295222.3295349",
			"url":              "https://arxiv.org/abs/1706.03762",
			"abstractNote":     "The dominant sequence transduction models...",
			"tags":             []any{map[string]any{"tag": "transformers"}, map[string]any{"tag": "attention"}},
		},
	}
}

func TestToItem(t *testing.T) {
	item := toItem(article(), nil)

	assert.Equal(t, "ABCD1234", item.ID)
	assert.Equal(t, "article-journal", item.Type)
	assert.Equal(t, "Attention Is All You Need", item.Title)
	assert.Equal(t, []Name{{Family: "Vaswani", Given: "Ashish"}, {Literal: "Google Brain"}}, item.Author)
	assert.Equal(t, []Name{{Family: "Guyon", Given: "I."}}, item.Editor)
	assert.Equal(t, "NeurIPS", item.ContainerTitle)
	assert.Equal(t, "30", item.Volume)
	assert.Equal(t, "5998-6008", item.Page)
	assert.Equal(t, "10.5555/3295222.3295349", item.DOI)
	assert.Equal(t, "transformers, attention", item.Keyword)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2017, 6, 12}}, item.Issued.DateParts)
	assert.Nil(t, item.Note)
}

func TestToItemCitationKeyBecomesID(t *testing.T) {
	item := toItem(article(), map[string]string{"ABCD1234": "vaswani2017attention"})
	assert.Equal(t, "vaswani2017attention", item.ID)

	item = toItem(article(), map[string]string{"ABCD1234": ""})
	assert.Equal(t, "ABCD1234", item.ID)
}

func TestType(t *testing.T) {
	tests := map[string]string{
		"journalArticle":  "article-journal",
		"book":            "book",
		"bookSection":     "chapter",
		"conferencePaper": "paper-conference",
		"thesis":          "thesis",
		"webpage":         "webpage",
		"preprint":        "article",
		"somethingNew":    "document",
		"":                "document",
	}
	for in, want := range tests {
		assert.Equal(t, want, Type(in), "Type(%q)", in)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *Date
	}{
		{"2020", &Date{DateParts: [][]int{{2020}}}},
		{"2020-03", &Date{DateParts: [][]int{{2020, 3}}}},
		{"2020-03-15", &Date{DateParts: [][]int{{2020, 3, 15}}}},
		{"2020-03-15T10:00:00Z", &Date{DateParts: [][]int{{2020, 3, 15}}}},
		{"2020-00-00", &Date{DateParts: [][]int{{2020}}}},
		{"March 2020", nil},
		{"20", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDate(tt.in))
		})
	}
}

func TestIssuedFallsBackToDateField(t *testing.T) {
	rec := types.RawRecord{Key: "K", Data: map[string]any{"itemType": "book", "date": "1999-12"}}
	item := toItem(rec, nil)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{1999, 12}}, item.Issued.DateParts)
}

func TestItemsSkipsNotesAndAttachments(t *testing.T) {
	recs := []types.RawRecord{
		article(),
		{Key: "NOTE0001", Data: map[string]any{"itemType": "note", "note": "<p>x</p>"}},
		{Key: "ATT00001", Data: map[string]any{"itemType": "attachment", "title": "PDF"}},
	}
	items := Items(recs, nil)
	require.Len(t, items, 1)
	assert.Equal(t, "ABCD1234", items[0].ID)
}

func TestRenderIsValidCSLYAML(t *testing.T) {
	out, err := Render([]types.RawRecord{article()}, map[string]string{"ABCD1234": "vaswani2017"})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "vaswani2017", decoded[0]["id"])
	assert.Equal(t, "article-journal", decoded[0]["type"])
	assert.Equal(t, "10.5555/3295222.3295349", decoded[0]["DOI"])
	issued, ok := decoded[0]["issued"].(map[string]any)
	require.True(t, ok, "issued must be a mapping")
	assert.Contains(t, issued, "date-parts")
}

func TestRenderEmpty(t *testing.T) {
	out, err := Render(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}
