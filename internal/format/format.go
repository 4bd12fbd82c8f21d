// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format normalizes raw Zotero records into the stable output
// shapes of pkg/types. Formatting is pure: it never fails and never panics.
// Missing or oddly typed fields fall back to defaults or are omitted.
package format

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/pdiddy/zotero-mcp/internal/markup"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Options controls optional parts of a formatted item.
type Options struct {
	// IncludeAbstract adds abstractNote to non-note items, defaulting to
	// types.NoAbstract when the record has none.
	IncludeAbstract bool

	// CitationKeys maps item keys to resolved citation keys. Items whose
	// key has a non-empty entry get a citationKey field.
	CitationKeys map[string]string
}

// Item formats one record. Notes get their HTML body converted to Markdown
// and carry parent and lastModified instead of authors and abstract, even
// when the raw payload contains creator or abstract fields.
func Item(rec types.RawRecord, opts Options) types.FormattedItem {
	data := rec.Data
	item := types.FormattedItem{
		Key:      rec.ItemKey(),
		ItemType: stringOr(data, "itemType", types.DefaultItemType),
		Title:    stringOr(data, "title", types.DefaultTitle),
		Date:     stringOr(data, "date", types.DefaultDate),
	}

	switch rec.Kind() {
	case types.KindNote:
		note := markup.ToMarkdown(field(data, "note"))
		item.Note = &note
		item.Parent = field(data, "parentItem")
		item.LastModified = field(data, "dateModified")
	case types.KindAttachment:
		bibliographic(&item, data, opts)
		item.Parent = field(data, "parentItem")
		item.ContentType = field(data, "contentType")
		item.Filename = field(data, "filename")
		item.LinkMode = field(data, "linkMode")
	case types.KindStandard:
		bibliographic(&item, data, opts)
	}

	item.DOI = field(data, "DOI")
	item.URL = field(data, "url")
	item.PublicationTitle = field(data, "publicationTitle")
	item.Tags = TagNames(data["tags"])

	if raw, ok := rec.Meta["numChildren"]; ok {
		if n, err := cast.ToIntE(raw); err == nil {
			item.NumAttachments = &n
		}
	}

	if key := opts.CitationKeys[item.Key]; key != "" {
		item.CitationKey = key
	}
	return item
}

// Items formats each record with the same options.
func Items(recs []types.RawRecord, opts Options) []types.FormattedItem {
	out := make([]types.FormattedItem, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Item(rec, opts))
	}
	return out
}

// bibliographic fills the author and abstract fields of non-note items.
func bibliographic(item *types.FormattedItem, data map[string]any, opts Options) {
	item.Authors = Authors(Creators(data["creators"]))
	if opts.IncludeAbstract {
		item.AbstractNote = stringOr(data, "abstractNote", types.NoAbstract)
	}
}

// Creators decodes a raw creators list. Entries that are not objects are
// skipped.
func Creators(raw any) []types.Creator {
	list, err := cast.ToSliceE(raw)
	if err != nil {
		return nil
	}
	creators := make([]types.Creator, 0, len(list))
	for _, entry := range list {
		m, err := cast.ToStringMapE(entry)
		if err != nil {
			continue
		}
		creators = append(creators, types.Creator{
			CreatorType: field(m, "creatorType"),
			FirstName:   field(m, "firstName"),
			LastName:    field(m, "lastName"),
			Name:        field(m, "name"),
		})
	}
	return creators
}

// Authors renders creators as "First Last" joined by ", ". Single-field
// creators render as their name. When no creator has a usable name part
// the result is types.NoAuthors.
func Authors(creators []types.Creator) string {
	names := make([]string, 0, len(creators))
	for _, c := range creators {
		if name := DisplayName(c); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return types.NoAuthors
	}
	return strings.Join(names, ", ")
}

// DisplayName renders one creator, or "" if it has no name parts.
func DisplayName(c types.Creator) string {
	parts := make([]string, 0, 2)
	if first := strings.TrimSpace(c.FirstName); first != "" {
		parts = append(parts, first)
	}
	if last := strings.TrimSpace(c.LastName); last != "" {
		parts = append(parts, last)
	}
	if len(parts) == 0 {
		return strings.TrimSpace(c.Name)
	}
	return strings.Join(parts, " ")
}

// TagNames flattens a raw tags list to names, dropping entries without one.
func TagNames(raw any) []string {
	list, err := cast.ToSliceE(raw)
	if err != nil || len(list) == 0 {
		return nil
	}
	names := make([]string, 0, len(list))
	for _, entry := range list {
		m, err := cast.ToStringMapE(entry)
		if err != nil {
			continue
		}
		if name := field(m, "tag"); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// field returns m[key] as a trimmed string, or "" when absent, null, or
// not convertible.
func field(m map[string]any, key string) string {
	raw, ok := m[key]
	if !ok || raw == nil {
		return ""
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func stringOr(m map[string]any, key, fallback string) string {
	if s := field(m, key); s != "" {
		return s
	}
	return fallback
}
