// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for zotero-mcp: raw records
// as returned by the Zotero API, the normalized output shapes handed to
// callers, query parameters, and configuration.
package types

// Kind classifies a raw record. The set is closed: every record is exactly
// one of these, and formatting code switches over all three.
type Kind int

const (
	KindStandard Kind = iota
	KindNote
	KindAttachment
)

// String returns the Zotero item type the kind is derived from, or
// "standard" for regular bibliographic items.
func (k Kind) String() string {
	switch k {
	case KindNote:
		return ItemTypeNote
	case KindAttachment:
		return ItemTypeAttachment
	default:
		return "standard"
	}
}

// Zotero item types that select a non-standard Kind.
const (
	ItemTypeNote       = "note"
	ItemTypeAttachment = "attachment"
)

// RawRecord is an item as returned by the Zotero API. Data holds the
// item's editable fields (itemType, title, creators, date, DOI, url, tags,
// note, parentItem, dateModified, ...) and Meta holds server-computed
// values such as numChildren. Both are left untyped because the field set
// varies by item type.
type RawRecord struct {
	// Key is the item key, unique within a library (e.g. "X4ABCD12").
	Key string `json:"key" yaml:"key"`

	// Version is the library version at which the item last changed.
	Version int `json:"version,omitempty" yaml:"version,omitempty"`

	// Meta carries derived values: numChildren, creatorSummary, parsedDate.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`

	// Data carries the item fields.
	Data map[string]any `json:"data" yaml:"data"`
}

// ItemType returns data.itemType, or "" when absent or not a string.
func (r RawRecord) ItemType() string {
	s, _ := r.Data["itemType"].(string)
	return s
}

// Kind derives the record kind from its item type.
func (r RawRecord) Kind() Kind {
	switch r.ItemType() {
	case ItemTypeNote:
		return KindNote
	case ItemTypeAttachment:
		return KindAttachment
	default:
		return KindStandard
	}
}

// ItemKey returns the record key, falling back to data.key.
func (r RawRecord) ItemKey() string {
	if r.Key != "" {
		return r.Key
	}
	s, _ := r.Data["key"].(string)
	return s
}

// Creator is one entry of an item's creators list. Zotero uses either the
// two-field form (firstName/lastName) or the single-field form (name).
type Creator struct {
	CreatorType string `json:"creatorType,omitempty" yaml:"creatorType,omitempty"`
	FirstName   string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RawCollection is a collection as returned by the Zotero API.
type RawCollection struct {
	Key  string         `json:"key"`
	Meta map[string]any `json:"meta,omitempty"`
	Data map[string]any `json:"data"`
}

// RawTag is a tag entry as returned by the tags endpoint.
type RawTag struct {
	Tag  string         `json:"tag"`
	Meta map[string]any `json:"meta,omitempty"`
}

// RawGroup is a group library as returned by the groups endpoint.
type RawGroup struct {
	ID   int            `json:"id"`
	Meta map[string]any `json:"meta,omitempty"`
	Data map[string]any `json:"data"`
}
