// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the library operations as MCP tools over stdio or
// streamable HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/zotero-mcp/internal/bbt"
	"github.com/pdiddy/zotero-mcp/internal/diag"
	"github.com/pdiddy/zotero-mcp/internal/library"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Defaults applied by New for zero config values.
const (
	DefaultName     = "zotero-mcp"
	DefaultHTTPAddr = "127.0.0.1:8090"
	DefaultHTTPPath = "/mcp"
)

// loggerName identifies this server in MCP log notifications.
const loggerName = "zotero"

// Server wraps an MCP server with the library tools registered.
type Server struct {
	mcp    *mcp.Server
	svc    *library.Service
	prober *bbt.Prober
	cfg    types.ServerConfig
	log    zerolog.Logger
}

// New registers every tool against svc. prober may be nil when Better
// BibTeX integration is disabled; it is only used for the health report.
func New(svc *library.Service, prober *bbt.Prober, cfg types.ServerConfig, log zerolog.Logger) *Server {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.Transport == "" {
		cfg.Transport = types.TransportStdio
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.HTTPPath == "" {
		cfg.HTTPPath = DefaultHTTPPath
	}

	s := &Server{
		mcp:    mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		svc:    svc,
		prober: prober,
		cfg:    cfg,
		log:    log,
	}
	registerTools(s)
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// Run serves on the configured transport until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case types.TransportStdio:
		s.log.Info().Str("transport", "stdio").Msg("serving")
		return s.mcp.Run(ctx, &mcp.StdioTransport{})
	case types.TransportHTTP:
		return s.serveHTTP(ctx)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", s.cfg.Transport)
	}
}

// Handler returns the HTTP handler serving the MCP endpoint and a health
// report at /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.HTTPPath, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil))
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) serveHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("transport", "http").Str("addr", s.cfg.HTTPAddr).Str("path", s.cfg.HTTPPath).Msg("serving")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type health struct {
	Status string      `json:"status"`
	BBT    *bbt.Status `json:"bbt,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := health{Status: "ok"}
	if s.prober != nil {
		st := s.prober.Status(r.Context())
		h.BBT = &st
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h)
}

// sessionSink forwards diagnostics to the calling client as MCP log
// notifications. Delivery errors are ignored.
func sessionSink(req *mcp.CallToolRequest) diag.Sink {
	if req == nil || req.Session == nil {
		return diag.Nop{}
	}
	ss := req.Session
	return diag.Func(func(ctx context.Context, level diag.Level, msg string) {
		_ = ss.Log(ctx, &mcp.LoggingMessageParams{
			Level:  mcp.LoggingLevel(level),
			Logger: loggerName,
			Data:   msg,
		})
	})
}

// toolResult renders a payload as indented JSON text. Only backend
// advisories are flagged as errors; empty results and rejected input are
// ordinary answers.
func toolResult(payload any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "encoding result: " + err.Error()}},
			IsError: true,
		}
	}
	res := &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}
	if a, ok := payload.(types.Advisory); ok && a.IsError() {
		res.IsError = true
	}
	return res
}
