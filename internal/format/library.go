// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"github.com/spf13/cast"

	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Collection normalizes a raw collection. A parentCollection of false
// (Zotero's marker for a top-level collection) is omitted.
func Collection(raw types.RawCollection) types.Collection {
	c := types.Collection{
		Key:  raw.Key,
		Name: stringOr(raw.Data, "name", types.DefaultTitle),
	}
	if c.Key == "" {
		c.Key = field(raw.Data, "key")
	}
	if parent, ok := raw.Data["parentCollection"].(string); ok {
		c.ParentCollection = parent
	}
	c.NumItems = metaInt(raw.Meta, "numItems")
	c.NumCollections = metaInt(raw.Meta, "numCollections")
	return c
}

// Collections normalizes a list of raw collections.
func Collections(raws []types.RawCollection) []types.Collection {
	out := make([]types.Collection, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Collection(raw))
	}
	return out
}

// Tags normalizes raw tag entries, dropping entries without a name.
func Tags(raws []types.RawTag) []types.Tag {
	out := make([]types.Tag, 0, len(raws))
	for _, raw := range raws {
		if raw.Tag == "" {
			continue
		}
		out = append(out, types.Tag{Tag: raw.Tag, NumItems: metaInt(raw.Meta, "numItems")})
	}
	return out
}

// Groups normalizes group libraries.
func Groups(raws []types.RawGroup) []types.Group {
	out := make([]types.Group, 0, len(raws))
	for _, raw := range raws {
		out = append(out, types.Group{ID: raw.ID, Name: stringOr(raw.Data, "name", types.DefaultTitle)})
	}
	return out
}

func metaInt(meta map[string]any, key string) *int {
	raw, ok := meta[key]
	if !ok || raw == nil {
		return nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return nil
	}
	return &n
}
