// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/zotero-mcp/internal/diag"
	"github.com/pdiddy/zotero-mcp/internal/library"
)

// Tool names.
const (
	ToolCollections     = "get_collections"
	ToolCollectionItems = "get_collection_items"
	ToolItems           = "get_items"
	ToolSearch          = "search_library"
	ToolTags            = "get_tags"
	ToolRecent          = "get_recent"
	ToolSummary         = "get_library_summary"
	ToolChildren        = "get_item_children"
	ToolExportCSL       = "export_csl"
)

func registerTools(s *Server) {
	addTool(s, ToolCollections,
		"List the collections in your Zotero library with their keys, names, parent collection and item counts.",
		(*library.Service).Collections)
	addTool(s, ToolCollectionItems,
		"List the items in one collection, with authors and abstracts. Use get_collections to find collection keys.",
		(*library.Service).CollectionItems)
	addTool(s, ToolItems,
		"Get detailed information about one or more items by key (comma separated). Optionally include full text and Better BibTeX citation keys. Keys that do not exist are listed under missing.",
		(*library.Service).Items)
	addTool(s, ToolSearch,
		"Search your Zotero library. qmode titleCreatorYear matches titles, creators and years; everything also matches full text and notes. item_type and tag accept Zotero filter expressions such as 'book || journalArticle' or '-attachment'.",
		(*library.Service).Search)
	addTool(s, ToolTags,
		"List the tags in your library, optionally filtered by text.",
		(*library.Service).Tags)
	addTool(s, ToolRecent,
		"Get recently added items (default 10, max 100). Attachments are excluded unless item_type says otherwise.",
		(*library.Service).Recent)
	addTool(s, ToolSummary,
		"Get an overview of the library: item count, group libraries, a few recent items and collections.",
		(*library.Service).Summary)
	addTool(s, ToolChildren,
		"List the notes and attachments of an item. Notes are returned as Markdown; attachments include a file URL when stored locally.",
		(*library.Service).Children)
	addTool(s, ToolExportCSL,
		"Export items as CSL-YAML for Pandoc and citation processors. Entries use Better BibTeX citation keys as IDs when available.",
		(*library.Service).ExportCSL)
}

// addTool registers one read-only tool. Each call gets a service scoped
// to the calling session so diagnostics reach both the process log and
// the client.
func addTool[In any](s *Server, name, description string, op func(*library.Service, context.Context, In) any) {
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}
	mcp.AddTool(s.mcp, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		s.log.Debug().Str("tool", name).Msg("tool call")
		svc := s.svc.WithDiagnostics(diag.Tee{s.svc.Sink(), sessionSink(req)})
		return toolResult(op(svc, ctx, in)), nil, nil
	})
}
