// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zotero is a read-only client for the Zotero HTTP API. It targets
// the local API served by the desktop application on port 23119 and works
// against the web API when given a base URL and key.
package zotero

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/pdiddy/zotero-mcp/internal/httputil"
	"github.com/pdiddy/zotero-mcp/pkg/types"
)

// Defaults applied by New for zero config values.
const (
	DefaultBaseURL   = "http://localhost:23119/api"
	DefaultLibraryID = "0"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "zotero-mcp"
)

// apiVersion is the Zotero API version requested on every call.
const apiVersion = "3"

// maxKeysPerRequest is the server's limit on itemKey values per request.
const maxKeysPerRequest = 50

// pageSize is the largest page the server returns. Without an explicit
// limit it returns only 25 results.
const pageSize = 100

// Client issues requests against one library.
type Client struct {
	http      *http.Client
	root      string
	library   string
	apiKey    string
	userAgent string
	log       zerolog.Logger
}

// New builds a client for the library described by cfg.
func New(cfg types.ZoteroConfig, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithHTTPClient(cfg, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient is New with a caller-supplied HTTP client.
func NewWithHTTPClient(cfg types.ZoteroConfig, hc *http.Client, log zerolog.Logger) *Client {
	root := strings.TrimRight(cfg.BaseURL, "/")
	if root == "" {
		root = DefaultBaseURL
	}
	id := cfg.LibraryID
	if id == "" {
		id = DefaultLibraryID
	}
	libType := cfg.LibraryType
	if libType == "" {
		libType = types.LibraryUser
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		http:      hc,
		root:      root,
		library:   "/" + string(libType) + "/" + url.PathEscape(id),
		apiKey:    cfg.APIKey,
		userAgent: ua,
		log:       log,
	}
}

// LibraryPath returns the library prefix used in request paths, e.g.
// "/users/0".
func (c *Client) LibraryPath() string { return c.library }

// Collections lists the library's collections, at most limit of them. A
// limit of zero lists all of them.
func (c *Client) Collections(ctx context.Context, limit int) ([]types.RawCollection, error) {
	out, err := getPages[types.RawCollection](ctx, c, "/collections", nil, limit)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return out, nil
}

// CollectionItems lists the items of one collection, filtered by q.
func (c *Client) CollectionItems(ctx context.Context, key string, q types.ItemsQuery) ([]types.RawRecord, error) {
	path := "/collections/" + url.PathEscape(key) + "/items"
	if q.Top {
		path += "/top"
	}
	var out []types.RawRecord
	if _, err := c.get(ctx, path, itemsParams(q), &out); err != nil {
		return nil, fmt.Errorf("listing items of collection %s: %w", key, err)
	}
	return out, nil
}

// Items runs an items query against the whole library.
func (c *Client) Items(ctx context.Context, q types.ItemsQuery) ([]types.RawRecord, error) {
	path := "/items"
	if q.Top {
		path += "/top"
	}
	var out []types.RawRecord
	if _, err := c.get(ctx, path, itemsParams(q), &out); err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	return out, nil
}

// ItemsByKey fetches the given items. Keys that do not exist are simply
// absent from the result; requests are split to respect the server's
// per-request key limit.
func (c *Client) ItemsByKey(ctx context.Context, keys []string) ([]types.RawRecord, error) {
	var out []types.RawRecord
	for start := 0; start < len(keys); start += maxKeysPerRequest {
		end := min(start+maxKeysPerRequest, len(keys))
		params := url.Values{
			"itemKey": {strings.Join(keys[start:end], ",")},
			"limit":   {strconv.Itoa(end - start)},
		}
		var batch []types.RawRecord
		if _, err := c.get(ctx, "/items", params, &batch); err != nil {
			return nil, fmt.Errorf("fetching items %s: %w", strings.Join(keys[start:end], ","), err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// Children lists all notes and attachments of an item.
func (c *Client) Children(ctx context.Context, key string) ([]types.RawRecord, error) {
	out, err := getPages[types.RawRecord](ctx, c, "/items/"+url.PathEscape(key)+"/children", nil, 0)
	if err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", key, err)
	}
	return out, nil
}

// Tags lists tags, optionally filtered by name.
func (c *Client) Tags(ctx context.Context, q types.TagsQuery) ([]types.RawTag, error) {
	params := url.Values{}
	setString(params, "q", q.Query)
	setString(params, "qmode", string(q.Mode))
	setInt(params, "limit", q.Limit)
	var out []types.RawTag
	if _, err := c.get(ctx, "/tags", params, &out); err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return out, nil
}

// Fulltext returns the indexed text of an attachment.
func (c *Client) Fulltext(ctx context.Context, key string) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	if _, err := c.get(ctx, "/items/"+url.PathEscape(key)+"/fulltext", nil, &out); err != nil {
		return "", fmt.Errorf("fetching full text of %s: %w", key, err)
	}
	return out.Content, nil
}

// FileURL returns the file:// URL of an attachment's stored file. Only the
// local API serves it.
func (c *Client) FileURL(ctx context.Context, key string) (string, error) {
	req, err := c.newRequest(ctx, "/items/"+url.PathEscape(key)+"/file/view/url", nil)
	if err != nil {
		return "", err
	}
	start := time.Now()
	text, err := httputil.DoText(c.http, req)
	c.logRequest(req, start, err)
	if err != nil {
		return "", fmt.Errorf("resolving file of %s: %w", key, err)
	}
	return strings.TrimSpace(text), nil
}

// Groups lists the group libraries the user belongs to.
func (c *Client) Groups(ctx context.Context) ([]types.RawGroup, error) {
	var out []types.RawGroup
	if _, err := c.get(ctx, "/groups", nil, &out); err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return out, nil
}

// ItemCount returns the number of items in the library, read from the
// Total-Results header.
func (c *Client) ItemCount(ctx context.Context) (int, error) {
	h, err := c.get(ctx, "/items", url.Values{"limit": {"1"}}, nil)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	raw := strings.TrimSpace(h.Get("Total-Results"))
	if raw == "" {
		return 0, errors.New("counting items: response has no Total-Results header")
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("counting items: bad Total-Results header %q: %w", raw, err)
	}
	return n, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) (http.Header, error) {
	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	h, err := httputil.DoJSON(c.http, req, out)
	c.logRequest(req, start, err)
	return h, err
}

// getPages follows start offsets until the server returns a short page,
// Total-Results is reached or limit records are collected. A limit of
// zero means no cap.
func getPages[T any](ctx context.Context, c *Client, path string, params url.Values, limit int) ([]T, error) {
	var out []T
	for {
		want := pageSize
		if limit > 0 {
			want = min(want, limit-len(out))
		}
		p := url.Values{}
		for k, v := range params {
			p[k] = v
		}
		p.Set("limit", strconv.Itoa(want))
		setInt(p, "start", len(out))

		var page []T
		h, err := c.get(ctx, path, p, &page)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < want || (limit > 0 && len(out) >= limit) {
			return out, nil
		}
		if total, err := cast.ToIntE(strings.TrimSpace(h.Get("Total-Results"))); err == nil && total > 0 && len(out) >= total {
			return out, nil
		}
	}
}

func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u := c.root + c.library + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Zotero-API-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set("Zotero-API-Key", c.apiKey)
	}
	return req, nil
}

func (c *Client) logRequest(req *http.Request, start time.Time, err error) {
	ev := c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("query", req.URL.RawQuery).
		Dur("elapsed", time.Since(start))
	var se *httputil.StatusError
	if errors.As(err, &se) {
		ev = ev.Int("status", se.StatusCode)
	}
	ev.Err(err).Msg("zotero request")
}

func itemsParams(q types.ItemsQuery) url.Values {
	params := url.Values{}
	setString(params, "q", q.Query)
	setString(params, "qmode", string(q.Mode))
	setString(params, "itemType", q.ItemType)
	setString(params, "tag", q.Tag)
	setString(params, "sort", q.Sort)
	setString(params, "direction", q.Direction)
	setInt(params, "limit", q.Limit)
	setInt(params, "start", q.Start)
	return params
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value int) {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
}
