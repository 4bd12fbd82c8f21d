// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Defaults substituted for missing fields when formatting an item.
const (
	DefaultTitle    = "Untitled"
	DefaultItemType = "Unknown type"
	DefaultDate     = "No date"
	NoAuthors       = "No authors listed"
	NoAbstract      = "No abstract available"
)

// FormattedItem is the normalized item shape returned to callers. Key,
// ItemType, Title and Date are always set. Every other field is omitted
// from JSON when the source record does not carry it; no field is ever
// serialized as null.
type FormattedItem struct {
	Key      string `json:"key" yaml:"key"`
	ItemType string `json:"itemType" yaml:"itemType"`
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date" yaml:"date"`

	// Authors is the joined creator display string. Never set for notes.
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// AbstractNote is set for non-note items when the abstract was requested.
	AbstractNote string `json:"abstractNote,omitempty" yaml:"abstractNote,omitempty"`

	// Note is the Markdown-converted note body. Set only for notes; a pointer
	// so that an empty body is still emitted.
	Note *string `json:"note,omitempty" yaml:"note,omitempty"`

	// Parent is the parent item key of a child note or attachment.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`

	// LastModified is the note's dateModified timestamp.
	LastModified string `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`

	DOI              string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL              string   `json:"url,omitempty" yaml:"url,omitempty"`
	PublicationTitle string   `json:"publicationTitle,omitempty" yaml:"publicationTitle,omitempty"`
	Tags             []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// NumAttachments is the child count from record meta. A pointer so that
	// zero children is reported rather than dropped.
	NumAttachments *int `json:"numAttachments,omitempty" yaml:"numAttachments,omitempty"`

	// CitationKey is the Better BibTeX citation key, when resolved.
	CitationKey string `json:"citationKey,omitempty" yaml:"citationKey,omitempty"`

	// Attachment fields.
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	LinkMode    string `json:"linkMode,omitempty" yaml:"linkMode,omitempty"`
	FileURL     string `json:"fileUrl,omitempty" yaml:"fileUrl,omitempty"`

	// Fulltext is the indexed full text, included on request.
	Fulltext string `json:"fulltext,omitempty" yaml:"fulltext,omitempty"`
}

// Collection is the normalized collection shape.
type Collection struct {
	Key              string `json:"key" yaml:"key"`
	Name             string `json:"name" yaml:"name"`
	ParentCollection string `json:"parentCollection,omitempty" yaml:"parentCollection,omitempty"`
	NumItems         *int   `json:"numItems,omitempty" yaml:"numItems,omitempty"`
	NumCollections   *int   `json:"numCollections,omitempty" yaml:"numCollections,omitempty"`
}

// Tag is the normalized tag shape.
type Tag struct {
	Tag      string `json:"tag" yaml:"tag"`
	NumItems *int   `json:"numItems,omitempty" yaml:"numItems,omitempty"`
}

// Group is a group library the user belongs to.
type Group struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ItemsResult is returned by multi-key fetches. Missing lists requested
// keys that the library did not return; Log records anything else that
// was skipped (failed enrichment, unavailable full text).
type ItemsResult struct {
	Items   []FormattedItem `json:"items" yaml:"items"`
	Missing []string        `json:"missing,omitempty" yaml:"missing,omitempty"`
	Log     []string        `json:"log,omitempty" yaml:"log,omitempty"`
}

// LibrarySummary is an overview of the library for a first look.
type LibrarySummary struct {
	LibraryID   string          `json:"libraryId" yaml:"libraryId"`
	ItemCount   int             `json:"itemCount" yaml:"itemCount"`
	Groups      []Group         `json:"groups" yaml:"groups"`
	RecentItems []FormattedItem `json:"recentItems" yaml:"recentItems"`
	Collections []Collection    `json:"collections" yaml:"collections"`
	Log         []string        `json:"log,omitempty" yaml:"log,omitempty"`
}

// Export is the payload of a CSL export.
type Export struct {
	Format  string   `json:"format" yaml:"format"`
	Content string   `json:"content" yaml:"content"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}
