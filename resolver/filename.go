package resolver

import (
	"net/url"
	"strings"

	"github.com/CognitoIQ/wsdlfetch/wsdl"
	"github.com/CognitoIQ/wsdlfetch/xmltree"
)

// A Kind distinguishes the two sorts of imported documents.
type Kind int

const (
	// WSDL documents are referenced by the location attribute of
	// <wsdl:import> elements.
	WSDL Kind = iota
	// XSD documents are referenced by the schemaLocation attribute
	// of <xsd:import> and <xsd:include> elements.
	XSD
)

func (k Kind) String() string {
	if k == XSD {
		return "xsd"
	}
	return "wsdl"
}

// The query parameter holding the document name, and the
// extension of the written file.
func (k Kind) param() string     { return k.String() }
func (k Kind) extension() string { return "." + k.String() }

// ChildFilename derives the local file name of an imported document
// from its URL. The name is taken from the wsdl= query parameter for
// WSDL imports and the xsd= parameter for XSD imports, so that
// https://svc/ep?wsdl=Billing becomes Billing.wsdl and
// https://svc/ep?xsd=Types becomes Types.xsd.
//
// This is the URL convention of JAX-WS and similar SOAP stacks that
// publish a contract as several documents behind one endpoint; it is not
// required by WSDL. Imports that do not follow it, or whose name is not
// a plain file name, are reported with a *MalformedImportURLError.
func ChildFilename(importURL string, kind Kind) (string, error) {
	u, err := url.Parse(importURL)
	if err != nil {
		return "", &MalformedImportURLError{URL: importURL, Param: kind.param(), Err: err}
	}
	name := u.Query().Get(kind.param())
	if !isFlat(name) {
		return "", &MalformedImportURLError{URL: importURL, Param: kind.param()}
	}
	return name + kind.extension(), nil
}

// RootFilename derives the local file name of the root document. The
// name declared by its <definitions> element is used if present.
// Otherwise the URL path is flattened by dropping the leading slash and
// replacing the others with dashes, so that https://host/a/b/service?wsdl
// becomes a-b-service.wsdl. A URL without a path is named after its host.
func RootFilename(rootURL string, root *xmltree.Element, wsdlPrefix string) (string, error) {
	if name := wsdl.Name(root, wsdlPrefix); isFlat(name) {
		return name + WSDL.extension(), nil
	}
	u, err := url.Parse(rootURL)
	if err != nil {
		return "", &MalformedImportURLError{URL: rootURL, Err: err}
	}
	name := strings.Trim(u.Path, "/")
	name = strings.TrimSuffix(name, WSDL.extension())
	name = strings.ReplaceAll(name, "/", "-")
	if name == "" {
		name = strings.ReplaceAll(u.Host, ":", "-")
	}
	if !isFlat(name) {
		return "", &MalformedImportURLError{URL: rootURL}
	}
	return name + WSDL.extension(), nil
}

// isFlat reports whether name can be used as a file name directly
// inside the output directory.
func isFlat(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// resolveReference resolves an import location against the URL of the
// document containing it.
func resolveReference(base, location string) (string, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return "", &MalformedImportURLError{URL: location, Err: err}
	}
	if ref.IsAbs() {
		return location, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", &MalformedImportURLError{URL: base, Err: err}
	}
	return u.ResolveReference(ref).String(), nil
}
