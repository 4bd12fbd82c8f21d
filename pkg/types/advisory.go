// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// AdvisoryCode classifies an Advisory.
type AdvisoryCode string

const (
	// CodeInvalidInput marks a request rejected before any backend call.
	CodeInvalidInput AdvisoryCode = "invalid_input"

	// CodeNotFound marks an empty result: nothing matched the key or query.
	CodeNotFound AdvisoryCode = "not_found"

	// CodeBackend marks a failure talking to the Zotero API.
	CodeBackend AdvisoryCode = "backend_error"
)

// Advisory is the structured payload returned in place of a result when a
// request is invalid, matches nothing, or fails. Context entries are
// flattened into the top-level JSON object next to error, code and
// suggestion, e.g.
//
//	{"error": "Collection is empty", "code": "not_found",
//	 "collection_key": "ABCD1234", "suggestion": "..."}
type Advisory struct {
	Code       AdvisoryCode
	Message    string
	Suggestion string
	Context    map[string]any
}

// IsError reports whether the advisory describes a failure rather than an
// empty or rejected request.
func (a Advisory) IsError() bool {
	return a.Code == CodeBackend
}

// With returns a copy of a with key set in its context.
func (a Advisory) With(key string, value any) Advisory {
	ctx := make(map[string]any, len(a.Context)+1)
	for k, v := range a.Context {
		ctx[k] = v
	}
	ctx[key] = value
	a.Context = ctx
	return a
}

// MarshalJSON flattens the advisory into a single object. Context keys
// never override error, code or suggestion.
func (a Advisory) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(a.Context)+3)
	for k, v := range a.Context {
		if v == nil {
			continue
		}
		m[k] = v
	}
	m["error"] = a.Message
	m["code"] = a.Code
	if a.Suggestion != "" {
		m["suggestion"] = a.Suggestion
	} else {
		delete(m, "suggestion")
	}
	return json.Marshal(m)
}
