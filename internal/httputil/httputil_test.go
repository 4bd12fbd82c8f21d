// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_DecodesBodyAndReturnsHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Total-Results", "42")
		fmt.Fprint(w, `{"name":"Reading list"}`)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	var out struct {
		Name string `json:"name"`
	}
	header, err := DoJSON(ts.Client(), req, &out)
	require.NoError(t, err)

	assert.Equal(t, "Reading list", out.Name)
	assert.Equal(t, "42", header.Get("Total-Results"))
}

func TestDoJSON_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Not found\n")
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/items/NOPE", nil)
	require.NoError(t, err)

	_, err = DoJSON(ts.Client(), req, nil)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Not found", se.Body)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestDoJSON_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	var out map[string]any
	_, err = DoJSON(ts.Client(), req, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
	assert.False(t, IsNotFound(err))
}

func TestDoText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "file:///home/u/Zotero/storage/ABCD/paper.pdf")
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/ok", nil)
	require.NoError(t, err)
	text, err := DoText(ts.Client(), req)
	require.NoError(t, err)
	assert.Equal(t, "file:///home/u/Zotero/storage/ABCD/paper.pdf", text)

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/bad", nil)
	require.NoError(t, err)
	_, err = DoText(ts.Client(), req)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestReachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	assert.True(t, Reachable(context.Background(), ts.Client(), ts.URL, time.Second),
		"any HTTP status counts as reachable")

	url := ts.URL
	ts.Close()
	assert.False(t, Reachable(context.Background(), http.DefaultClient, url, time.Second))
}

func TestReachable_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	start := time.Now()
	ok := Reachable(context.Background(), ts.Client(), ts.URL, 50*time.Millisecond)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 2*time.Second)
}
