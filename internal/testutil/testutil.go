// Package testutil contains common utility functions for unit tests.
package testutil // import "github.com/CognitoIQ/wsdlfetch/internal/testutil"

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
)

// FakeClient returns an HTTP client that replies to requests for the
// URLs in docs with the corresponding body text, and with 404 Not Found
// for any other URL. The returned Transport records every request.
func FakeClient(docs map[string]string) (*http.Client, *Transport) {
	rt := &Transport{docs: docs, hits: make(map[string]int)}
	return &http.Client{Transport: rt}, rt
}

// A Transport serves fixed documents and counts requests per URL. It is
// safe for concurrent use.
type Transport struct {
	docs map[string]string

	mu    sync.Mutex
	hits  map[string]int
	order []string
}

// RoundTrip implements http.RoundTripper. It fails with the request
// context's error if the context is already done.
func (r *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	url := req.URL.String()
	r.mu.Lock()
	r.hits[url]++
	r.order = append(r.order, url)
	r.mu.Unlock()

	var rsp http.Response
	rsp.Header = make(http.Header)
	rsp.Request = req

	if body, ok := r.docs[url]; ok {
		rsp.StatusCode = 200
		rsp.Status = "200 OK"
		rsp.Header.Set("Content-Type", "text/xml; charset=utf-8")
		rsp.Body = io.NopCloser(bytes.NewReader([]byte(body)))
	} else {
		rsp.StatusCode = 404
		rsp.Status = "404 Not Found"
		rsp.Body = io.NopCloser(strings.NewReader("404 not found"))
	}
	return &rsp, nil
}

// Hits returns the number of requests made for url.
func (r *Transport) Hits(url string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[url]
}

// Requests returns every requested URL, in the order requested.
func (r *Transport) Requests() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}
