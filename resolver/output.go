package resolver

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/CognitoIQ/wsdlfetch/xmltree"
)

// An Artifact is a document written to the output directory.
type Artifact struct {
	URL      string
	Filename string
	// Path is the file's location on disk. It is empty for
	// Ledger entries.
	Path string
}

// Render returns the indented text of a document, preceded by an
// XML declaration. The output depends only on the tree, so an unchanged
// document always renders to the same bytes.
func Render(root *xmltree.Element, indentWidth int) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xmltree.EncodeIndent(&buf, root, "", strings.Repeat(" ", indentWidth)); err != nil {
		// Parsed trees are never too deep to encode, and
		// bytes.Buffer.Write never fails.
		panic(err)
	}
	return buf.Bytes()
}

// writeFile writes data to dir/name. The data is written to a temporary
// file first and renamed into place, so name never holds a partial
// document.
func writeFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}
