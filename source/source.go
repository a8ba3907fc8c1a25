// Package source retrieves and parses the documents being resolved.
package source // import "github.com/CognitoIQ/wsdlfetch/source"

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/CognitoIQ/wsdlfetch/xmltree"
)

const (
	// DefaultTimeout bounds a single fetch, including reading the body.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when HTTP.UserAgent is empty.
	DefaultUserAgent = "wsdlfetch/1.0"

	maxDocumentSize = 64 << 20
)

var errTooLarge = errors.New("document exceeds 64 MiB")

// A Source fetches the document at a URL and parses it into a tree.
// Fetch returns a *FetchError if the document cannot be retrieved and
// a *ParseError if it is not well-formed XML. Implementations must be
// safe for concurrent use.
type Source interface {
	Fetch(ctx context.Context, url string) (*xmltree.Element, error)
}

// HTTP is a Source that retrieves documents with plain GET requests.
// Requests are not retried.
type HTTP struct {
	// Client is used to make requests. If nil, http.DefaultClient
	// is used.
	Client *http.Client
	// Timeout bounds each fetch. Zero means no timeout other than
	// the deadline of the context passed to Fetch.
	Timeout   time.Duration
	UserAgent string
}

// NewHTTP returns an HTTP source with its own client.
func NewHTTP(timeout time.Duration, userAgent string) *HTTP {
	return &HTTP{
		Client:    &http.Client{},
		Timeout:   timeout,
		UserAgent: userAgent,
	}
}

// Fetch retrieves and parses the document at url.
func (h *HTTP) Fetch(ctx context.Context, url string) (*xmltree.Element, error) {
	data, err := h.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	return root, nil
}

// Get retrieves the raw bytes of the document at url. Any response
// status outside of the 2xx range is reported as a *FetchError.
func (h *HTTP) Get(ctx context.Context, url string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/xml, application/xml, application/wsdl+xml")
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	} else {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if len(data) > maxDocumentSize {
		return nil, &FetchError{URL: url, Err: errTooLarge}
	}
	return data, nil
}
