// Package xsd locates references to other schema documents in XML
// Schema documents.
//
// XML Schema documents pull in other schema with <import> and <include>
// declarations. Those declarations may appear in standalone .xsd files
// or in the <types> section of a WSDL document; Imports finds them in
// either. It is not required for XML Schema documents to provide the
// location of schema that they import; declarations without a
// schemaLocation are still returned, with an empty Location.
package xsd // import "github.com/CognitoIQ/wsdlfetch/xsd"

import (
	"github.com/CognitoIQ/wsdlfetch/xmltree"
)

// Namespace is the canonical namespace of XML Schema documents.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Older drafts of the standard used by some WSDL 1.1 generators.
var legacyNamespaces = []string{
	"http://www.w3.org/2000/10/XMLSchema",
	"http://www.w3.org/1999/XMLSchema",
}

// A Ref is a reference from one document to another. It contains the
// canonical namespace of the referenced document, if declared, and the
// URI it may be retrieved from. A Ref points into the tree it was found
// in, so that its location can be rewritten in place.
type Ref struct {
	Namespace, Location string
	// Attr is the local name of the attribute holding Location.
	Attr    string
	Element *xmltree.Element
}

// Relocate replaces the location of the referenced document, both in the
// Ref and in the underlying element.
func (r *Ref) Relocate(location string) {
	r.Element.SetAttr("", r.Attr, location)
	r.Location = location
}

// Imports returns the <import> and <include> declarations in root whose
// tag uses the given namespace prefix, in document order with all
// imports listed before includes. The prefix must match the one used in
// the document exactly; an empty prefix matches unprefixed elements in
// the XML Schema namespace.
func Imports(root *xmltree.Element, prefix string) []Ref {
	var result []Ref

	for _, el := range root.SearchFunc(isSchemaElem(prefix, "import")) {
		result = append(result, Ref{
			Namespace: el.Attr("", "namespace"),
			Location:  el.Attr("", "schemaLocation"),
			Attr:      "schemaLocation",
			Element:   el,
		})
	}

	var schema []*xmltree.Element
	if isSchemaElem(prefix, "schema")(root) {
		schema = []*xmltree.Element{root}
	} else {
		schema = root.SearchFunc(isSchemaElem(prefix, "schema"))
	}

	for _, tree := range schema {
		ns := tree.Attr("", "targetNamespace")
		for _, el := range tree.SearchFunc(isSchemaElem(prefix, "include")) {
			result = append(result, Ref{
				Namespace: ns,
				Location:  el.Attr("", "schemaLocation"),
				Attr:      "schemaLocation",
				Element:   el,
			})
		}
	}

	return result
}

// IsNamespace reports whether ns is the XML Schema namespace, or one of
// the namespaces used by drafts of the standard.
func IsNamespace(ns string) bool {
	if ns == Namespace {
		return true
	}
	for _, v := range legacyNamespaces {
		if ns == v {
			return true
		}
	}
	return false
}
