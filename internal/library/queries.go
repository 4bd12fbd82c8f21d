// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/zotero-mcp/internal/format"
	"github.com/pdiddy/zotero-mcp/internal/httputil"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Collections lists the library's collections.
func (s *Service) Collections(ctx context.Context, req CollectionsRequest) any {
	raws, err := s.lib.Collections(ctx, req.Limit)
	if err != nil {
		return s.backendError(ctx, "fetch collections", err)
	}
	if len(raws) == 0 {
		return notFound("No collections found", "Create a collection in Zotero to organize your items")
	}
	return format.Collections(raws)
}

// CollectionItems lists the items of a collection with abstracts.
func (s *Service) CollectionItems(ctx context.Context, req CollectionItemsRequest) any {
	key := strings.TrimSpace(req.CollectionKey)
	if key == "" {
		return invalid("Collection key is required", "Call get_collections to find collection keys")
	}

	raws, err := s.lib.CollectionItems(ctx, key, types.ItemsQuery{Limit: req.Limit})
	if httputil.IsNotFound(err) {
		return notFound("Collection not found", "Call get_collections to find collection keys").With("collection_key", key)
	}
	if err != nil {
		return s.backendError(ctx, fmt.Sprintf("fetch collection items %s", key), err)
	}
	if len(raws) == 0 {
		return notFound("Collection is empty", "Add some items to this collection in Zotero").With("collection_key", key)
	}
	return format.Items(raws, format.Options{IncludeAbstract: true})
}

// Search runs a quick search. A blank query is rejected before any
// backend call.
func (s *Service) Search(ctx context.Context, req SearchRequest) any {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return invalid("Search query is required", "Provide title words, an author name or a year to search for")
	}
	mode := types.QueryMode(strings.TrimSpace(req.Mode))
	if !mode.Valid() {
		return invalid("Unknown search mode", "Use titleCreatorYear or everything").With("qmode", string(mode))
	}

	raws, err := s.lib.Items(ctx, types.ItemsQuery{
		Query:    query,
		Mode:     mode,
		ItemType: strings.TrimSpace(req.ItemType),
		Tag:      strings.TrimSpace(req.Tag),
		Limit:    req.Limit,
	})
	if err != nil {
		return s.backendError(ctx, fmt.Sprintf("search (%s)", query), err)
	}
	if len(raws) == 0 {
		return notFound("No results found", "Try a different search term or verify your library contains matching items").With("query", query)
	}
	return format.Items(raws, format.Options{})
}

// Tags lists tags, optionally filtered.
func (s *Service) Tags(ctx context.Context, req TagsRequest) any {
	mode := types.TagMode(strings.TrimSpace(req.Mode))
	if !mode.Valid() {
		return invalid("Unknown tag match mode", "Use contains or startsWith").With("qmode", string(mode))
	}
	query := strings.TrimSpace(req.Query)

	raws, err := s.lib.Tags(ctx, types.TagsQuery{Query: query, Mode: mode, Limit: req.Limit})
	if err != nil {
		return s.backendError(ctx, "fetch tags", err)
	}
	tags := format.Tags(raws)
	if len(tags) == 0 {
		a := notFound("No tags found", "Tag items in Zotero or try a shorter filter")
		if query != "" {
			a = a.With("query", query)
		}
		return a
	}
	return tags
}

// Recent lists the most recently added items.
func (s *Service) Recent(ctx context.Context, req RecentRequest) any {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	limit = min(limit, MaxRecentLimit)
	itemType := strings.TrimSpace(req.ItemType)
	if itemType == "" {
		itemType = DefaultRecentItemType
	}

	raws, err := s.lib.Items(ctx, types.ItemsQuery{
		ItemType:  itemType,
		Sort:      "dateAdded",
		Direction: "desc",
		Limit:     limit,
	})
	if err != nil {
		return s.backendError(ctx, "fetch recent items", err)
	}
	if len(raws) == 0 {
		return notFound("No recent items found", "Add some items to your Zotero library first")
	}
	return format.Items(raws, format.Options{})
}

// Summary gives an overview of the library. Parts that fail are left
// empty and noted in the log; only a failure of every part is reported as
// a backend error.
func (s *Service) Summary(ctx context.Context, _ SummaryRequest) any {
	sum := types.LibrarySummary{
		LibraryID:   s.libraryID,
		Groups:      []types.Group{},
		RecentItems: []types.FormattedItem{},
		Collections: []types.Collection{},
	}
	var firstErr error
	failed := 0
	record := func(part string, err error) {
		if firstErr == nil {
			firstErr = err
		}
		failed++
		msg := fmt.Sprintf("%s unavailable: %v", part, err)
		s.warn(ctx, msg)
		sum.Log = append(sum.Log, msg)
	}

	if n, err := s.lib.ItemCount(ctx); err != nil {
		record("item count", err)
	} else {
		sum.ItemCount = n
	}

	if raws, err := s.lib.Groups(ctx); err != nil {
		record("groups", err)
	} else {
		sum.Groups = format.Groups(raws)
	}

	if raws, err := s.lib.Items(ctx, types.ItemsQuery{
		ItemType:  DefaultRecentItemType,
		Sort:      "dateAdded",
		Direction: "desc",
		Limit:     summaryRecent,
	}); err != nil {
		record("recent items", err)
	} else {
		sum.RecentItems = format.Items(raws, format.Options{})
	}

	if raws, err := s.lib.Collections(ctx, summaryCollections); err != nil {
		record("collections", err)
	} else {
		sum.Collections = format.Collections(raws)
	}

	if failed == 4 {
		return s.backendError(ctx, "fetch library summary", firstErr)
	}
	return sum
}
