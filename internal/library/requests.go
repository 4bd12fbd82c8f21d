// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

// Request types are decoded straight from MCP tool arguments and CLI
// flags. Fields without omitempty are required in the generated tool
// schema.

// CollectionsRequest lists collections.
type CollectionsRequest struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of collections to return"`
}

// CollectionItemsRequest lists the items of one collection.
type CollectionItemsRequest struct {
	CollectionKey string `json:"collection_key" jsonschema:"the collection key, e.g. ABCD1234"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of items to return"`
}

// ItemsRequest fetches items by key.
type ItemsRequest struct {
	ItemKeys           string `json:"item_keys" jsonschema:"one or more item keys separated by commas"`
	IncludeAbstract    *bool  `json:"include_abstract,omitempty" jsonschema:"include abstractNote (default true)"`
	IncludeFulltext    bool   `json:"include_fulltext,omitempty" jsonschema:"include the indexed full text of each item's attachment"`
	IncludeCitationKey bool   `json:"include_citation_key,omitempty" jsonschema:"include the Better BibTeX citation key when the plugin is available"`
}

// SearchRequest runs a quick search over the library.
type SearchRequest struct {
	Query    string `json:"query" jsonschema:"search terms"`
	Mode     string `json:"qmode,omitempty" jsonschema:"titleCreatorYear (default) or everything to include full text and notes"`
	ItemType string `json:"item_type,omitempty" jsonschema:"item type filter, e.g. journalArticle, book || bookSection, -attachment"`
	Tag      string `json:"tag,omitempty" jsonschema:"tag filter, e.g. ml, ml || nlp, -draft"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

// TagsRequest lists tags.
type TagsRequest struct {
	Query string `json:"query,omitempty" jsonschema:"only tags matching this text"`
	Mode  string `json:"qmode,omitempty" jsonschema:"contains (default) or startsWith"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of tags to return"`
}

// RecentRequest lists recently added items.
type RecentRequest struct {
	Limit    int    `json:"limit,omitempty" jsonschema:"number of items to return (default 10, max 100)"`
	ItemType string `json:"item_type,omitempty" jsonschema:"item type filter (default -attachment)"`
}

// SummaryRequest takes no arguments.
type SummaryRequest struct{}

// ChildrenRequest lists the notes and attachments of an item.
type ChildrenRequest struct {
	ItemKey string `json:"item_key" jsonschema:"the parent item key"`
}

// ExportRequest renders items as CSL-YAML.
type ExportRequest struct {
	ItemKeys string `json:"item_keys" jsonschema:"one or more item keys separated by commas"`
}
