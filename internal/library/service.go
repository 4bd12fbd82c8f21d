// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library implements the read operations exposed to callers.
//
// Every operation returns a JSON-ready payload and never an error. Invalid
// input, empty results and backend failures all produce a types.Advisory;
// optional enrichment that fails is reported through the diagnostics sink
// and the payload's log, and the primary result is kept.
package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/zotero-mcp/internal/diag"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Library is the backend the service reads from. *zotero.Client
// implements it.
type Library interface {
	Collections(ctx context.Context, limit int) ([]types.RawCollection, error)
	CollectionItems(ctx context.Context, key string, q types.ItemsQuery) ([]types.RawRecord, error)
	Items(ctx context.Context, q types.ItemsQuery) ([]types.RawRecord, error)
	ItemsByKey(ctx context.Context, keys []string) ([]types.RawRecord, error)
	Children(ctx context.Context, key string) ([]types.RawRecord, error)
	Tags(ctx context.Context, q types.TagsQuery) ([]types.RawTag, error)
	Fulltext(ctx context.Context, key string) (string, error)
	FileURL(ctx context.Context, key string) (string, error)
	Groups(ctx context.Context) ([]types.RawGroup, error)
	ItemCount(ctx context.Context) (int, error)
}

// CitationResolver maps item keys to citation keys. *bbt.Prober
// implements it.
type CitationResolver interface {
	CitationKeys(ctx context.Context, keys []string) (map[string]string, error)
}

// Limits for the recent-items operation.
const (
	DefaultRecentLimit    = 10
	MaxRecentLimit        = 100
	DefaultRecentItemType = "-attachment"
)

// Sizes of the samples in a library summary.
const (
	summaryRecent      = 5
	summaryCollections = 5
)

// Service owns the backend handle, the optional citation resolver and the
// diagnostics sink. It holds no per-call state and is safe for concurrent
// use when its collaborators are.
type Service struct {
	lib       Library
	cites     CitationResolver
	sink      diag.Sink
	libraryID string
	log       zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCitations enables citation-key enrichment.
func WithCitations(r CitationResolver) Option {
	return func(s *Service) { s.cites = r }
}

// WithSink sets the default diagnostics sink.
func WithSink(sink diag.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithLibraryID sets the library identifier reported by Summary.
func WithLibraryID(id string) Option {
	return func(s *Service) { s.libraryID = id }
}

// WithLogger sets the logger used for debug output. Warnings and errors
// go to the diagnostics sink.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New returns a Service reading from lib.
func New(lib Library, opts ...Option) *Service {
	s := &Service{
		lib:       lib,
		sink:      diag.Nop{},
		libraryID: "0",
		log:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.sink == nil {
		s.sink = diag.Nop{}
	}
	return s
}

// WithDiagnostics returns a copy of s that emits to sink. The copy shares
// the backend and resolver with s.
func (s *Service) WithDiagnostics(sink diag.Sink) *Service {
	c := *s
	if sink == nil {
		sink = diag.Nop{}
	}
	c.sink = sink
	return &c
}

// CitationsEnabled reports whether a resolver is configured.
func (s *Service) CitationsEnabled() bool { return s.cites != nil }

// Sink returns the diagnostics sink in use.
func (s *Service) Sink() diag.Sink { return s.sink }

func (s *Service) warn(ctx context.Context, msg string) {
	s.sink.Emit(ctx, diag.LevelWarning, msg)
}

// backendError converts a backend failure into an advisory and reports it.
func (s *Service) backendError(ctx context.Context, action string, err error) types.Advisory {
	s.sink.Emit(ctx, diag.LevelError, fmt.Sprintf("Failed to %s. Message: %v", action, err))
	return types.Advisory{
		Code:       types.CodeBackend,
		Message:    err.Error(),
		Suggestion: "Make sure Zotero is running and the local API is enabled (Settings > Advanced > Allow other applications to communicate with Zotero)",
	}
}

func invalid(msg, suggestion string) types.Advisory {
	return types.Advisory{Code: types.CodeInvalidInput, Message: msg, Suggestion: suggestion}
}

func notFound(msg, suggestion string) types.Advisory {
	return types.Advisory{Code: types.CodeNotFound, Message: msg, Suggestion: suggestion}
}

// splitKeys parses a comma-separated key list, trimming entries and
// dropping blanks and duplicates while keeping order.
func splitKeys(raw string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// citationKeys resolves citation keys for keys. Failure is not fatal: it
// is reported and a log line is returned instead.
func (s *Service) citationKeys(ctx context.Context, keys []string) (map[string]string, string) {
	if s.cites == nil {
		return nil, "citation keys skipped: Better BibTeX integration is disabled"
	}
	ck, err := s.cites.CitationKeys(ctx, keys)
	if err != nil {
		msg := fmt.Sprintf("citation keys unavailable: %v", err)
		s.warn(ctx, msg)
		return nil, msg
	}
	return ck, ""
}
