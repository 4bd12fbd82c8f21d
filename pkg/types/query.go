// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QueryMode selects which fields a Zotero quick search matches against.
type QueryMode string

const (
	// ModeTitleCreatorYear matches titles, creator names and years.
	ModeTitleCreatorYear QueryMode = "titleCreatorYear"

	// ModeEverything also matches full-text content and notes.
	ModeEverything QueryMode = "everything"
)

// Valid reports whether m is empty (server default) or a known mode.
func (m QueryMode) Valid() bool {
	switch m {
	case "", ModeTitleCreatorYear, ModeEverything:
		return true
	}
	return false
}

// ItemsQuery holds the filter, sort and paging parameters of an items
// request. ItemType and Tag use Zotero's boolean expression syntax
// ("book || journalArticle", "-attachment", "ml && !draft"); they are
// passed through unchanged.
type ItemsQuery struct {
	Query     string
	Mode      QueryMode
	ItemType  string
	Tag       string
	Sort      string
	Direction string
	Limit     int
	Start     int
	Top       bool
}

// TagMode selects how a tags request matches its query.
type TagMode string

const (
	TagModeContains   TagMode = "contains"
	TagModeStartsWith TagMode = "startsWith"
)

// Valid reports whether m is empty (server default) or a known mode.
func (m TagMode) Valid() bool {
	switch m {
	case "", TagModeContains, TagModeStartsWith:
		return true
	}
	return false
}

// TagsQuery holds the parameters of a tags request.
type TagsQuery struct {
	Query string
	Mode  TagMode
	Limit int
}
