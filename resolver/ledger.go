package resolver

import (
	"strings"
	"sync"

	"github.com/CognitoIQ/wsdlfetch/internal/ordered"
)

// A Ledger records the documents downloaded during one run, and the
// file name chosen for each. A URL is recorded at most once. File names
// are compared case-insensitively, since the output directory may be on
// a case-insensitive file system. A Ledger is safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	files  map[string]string // URL -> file name
	owners map[string]string // lower-cased file name -> URL
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		files:  make(map[string]string),
		owners: make(map[string]string),
	}
}

// IsDownloaded reports whether url has been recorded.
func (l *Ledger) IsDownloaded(url string) bool {
	_, ok := l.Filename(url)
	return ok
}

// Filename returns the file name recorded for url.
func (l *Ledger) Filename(url string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name, ok := l.files[url]
	return name, ok
}

// MarkDownloaded records filename for url. If url is already recorded,
// or filename is taken by another URL, the ledger is unchanged.
func (l *Ledger) MarkDownloaded(url, filename string) {
	l.Claim(url, filename)
}

// Claim records filename for url unless url is already recorded. It
// returns the file name recorded for url, and true if this call recorded
// it. The caller that receives true is responsible for fetching url. A
// *FilenameConflictError is returned if filename is already recorded
// for a different URL.
func (l *Ledger) Claim(url, filename string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if name, ok := l.files[url]; ok {
		return name, false, nil
	}
	key := strings.ToLower(filename)
	if owner, ok := l.owners[key]; ok {
		return "", false, &FilenameConflictError{Filename: filename, URL: url, Existing: owner}
	}
	l.files[url] = filename
	l.owners[key] = url
	return filename, true, nil
}

// Len returns the number of recorded URLs.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files)
}

// Entries returns the recorded URLs and file names, sorted by URL.
func (l *Ledger) Entries() []Artifact {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]Artifact, 0, len(l.files))
	ordered.RangeStrings(l.files, func(url string) {
		entries = append(entries, Artifact{URL: url, Filename: l.files[url]})
	})
	return entries
}
