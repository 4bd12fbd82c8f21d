// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/zotero-mcp/internal/csl"
	"github.com/pdiddy/zotero-mcp/internal/format"
	"github.com/pdiddy/zotero-mcp/internal/httputil"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Items fetches items by key. Keys the library does not return are listed
// in Missing; the call fails only when none of them exist or the backend
// errors.
func (s *Service) Items(ctx context.Context, req ItemsRequest) any {
	keys := splitKeys(req.ItemKeys)
	if len(keys) == 0 {
		return invalid("Item key is required", "Pass one or more item keys separated by commas")
	}

	found, missing, err := s.fetch(ctx, keys)
	if err != nil {
		return s.backendError(ctx, fmt.Sprintf("fetch item details %s", strings.Join(keys, ",")), err)
	}
	if len(found) == 0 {
		return notFound("Item not found", "Verify the item exists and you have permission to access it").With("item_keys", keys)
	}

	result := types.ItemsResult{Missing: missing}
	if len(missing) > 0 {
		result.Log = append(result.Log, "not found: "+strings.Join(missing, ", "))
	}

	opts := format.Options{IncludeAbstract: req.IncludeAbstract == nil || *req.IncludeAbstract}
	if req.IncludeCitationKey {
		ck, msg := s.citationKeys(ctx, recordKeys(found))
		opts.CitationKeys = ck
		if msg != "" {
			result.Log = append(result.Log, msg)
		}
	}

	result.Items = format.Items(found, opts)
	if req.IncludeFulltext {
		for i, rec := range found {
			text, msg := s.fulltext(ctx, rec)
			result.Items[i].Fulltext = text
			if msg != "" {
				result.Log = append(result.Log, msg)
			}
		}
	}
	return result
}

// Children lists an item's notes and attachments. Attachments get a
// fileUrl when the local API can resolve one.
func (s *Service) Children(ctx context.Context, req ChildrenRequest) any {
	key := strings.TrimSpace(req.ItemKey)
	if key == "" {
		return invalid("Item key is required", "Pass the key of a parent item")
	}

	raws, err := s.lib.Children(ctx, key)
	if httputil.IsNotFound(err) {
		return notFound("Item not found", "Verify the item exists and you have permission to access it").With("item_key", key)
	}
	if err != nil {
		return s.backendError(ctx, fmt.Sprintf("fetch children of %s", key), err)
	}
	if len(raws) == 0 {
		return notFound("No child items found", "This item has no notes or attachments").With("item_key", key)
	}

	items := format.Items(raws, format.Options{})
	for i, rec := range raws {
		if rec.Kind() != types.KindAttachment || !hasFile(rec) {
			continue
		}
		u, err := s.lib.FileURL(ctx, rec.ItemKey())
		if err != nil {
			s.log.Debug().Err(err).Str("item", rec.ItemKey()).Msg("no file url")
			continue
		}
		items[i].FileURL = u
	}
	return items
}

// ExportCSL renders the given items as CSL-YAML, keyed by citation key
// when Better BibTeX is available.
func (s *Service) ExportCSL(ctx context.Context, req ExportRequest) any {
	keys := splitKeys(req.ItemKeys)
	if len(keys) == 0 {
		return invalid("Item key is required", "Pass one or more item keys separated by commas")
	}

	found, missing, err := s.fetch(ctx, keys)
	if err != nil {
		return s.backendError(ctx, fmt.Sprintf("export items %s", strings.Join(keys, ",")), err)
	}
	if len(found) == 0 {
		return notFound("Item not found", "Verify the item exists and you have permission to access it").With("item_keys", keys)
	}

	var ck map[string]string
	if s.cites != nil {
		ck, _ = s.citationKeys(ctx, recordKeys(found))
	}
	content, err := csl.Render(found, ck)
	if err != nil {
		return s.backendError(ctx, "render CSL", err)
	}
	return types.Export{Format: csl.Format, Content: content, Missing: missing}
}

// fetch loads keys and splits them into records, in request order, and
// keys the library did not return.
func (s *Service) fetch(ctx context.Context, keys []string) ([]types.RawRecord, []string, error) {
	raws, err := s.lib.ItemsByKey(ctx, keys)
	if err != nil {
		return nil, nil, err
	}
	byKey := make(map[string]types.RawRecord, len(raws))
	for _, r := range raws {
		byKey[r.ItemKey()] = r
	}
	var found []types.RawRecord
	var missing []string
	for _, k := range keys {
		if r, ok := byKey[k]; ok {
			found = append(found, r)
		} else {
			missing = append(missing, k)
		}
	}
	return found, missing, nil
}

// fulltext returns the indexed text for rec. Attachments use their own
// text; regular items use their first PDF attachment, or their first
// attachment when none is a PDF. Notes have none.
func (s *Service) fulltext(ctx context.Context, rec types.RawRecord) (string, string) {
	key := rec.ItemKey()
	switch rec.Kind() {
	case types.KindNote:
		return "", ""
	case types.KindAttachment:
	case types.KindStandard:
		children, err := s.lib.Children(ctx, key)
		if err != nil {
			msg := fmt.Sprintf("full text unavailable for %s: %v", key, err)
			s.warn(ctx, msg)
			return "", msg
		}
		att, ok := bestAttachment(children)
		if !ok {
			return "", fmt.Sprintf("full text unavailable for %s: no attachment", key)
		}
		key = att.ItemKey()
	}

	text, err := s.lib.Fulltext(ctx, key)
	if httputil.IsNotFound(err) {
		return "", fmt.Sprintf("full text unavailable for %s: not indexed", rec.ItemKey())
	}
	if err != nil {
		msg := fmt.Sprintf("full text unavailable for %s: %v", rec.ItemKey(), err)
		s.warn(ctx, msg)
		return "", msg
	}
	return text, ""
}

func bestAttachment(children []types.RawRecord) (types.RawRecord, bool) {
	var first *types.RawRecord
	for i := range children {
		c := children[i]
		if c.Kind() != types.KindAttachment {
			continue
		}
		if ct, _ := c.Data["contentType"].(string); ct == "application/pdf" {
			return c, true
		}
		if first == nil {
			first = &children[i]
		}
	}
	if first == nil {
		return types.RawRecord{}, false
	}
	return *first, true
}

// hasFile reports whether an attachment stores or links a file, as
// opposed to a web link.
func hasFile(rec types.RawRecord) bool {
	mode, _ := rec.Data["linkMode"].(string)
	return mode != "linked_url"
}

func recordKeys(recs []types.RawRecord) []string {
	keys := make([]string, 0, len(recs))
	for _, r := range recs {
		keys = append(keys, r.ItemKey())
	}
	return keys
}
