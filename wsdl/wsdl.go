// Package wsdl finds references between Web Service Definition Language
// documents.
//
// A WSDL document may split its definitions across several files with
// <import> elements, and pull in type definitions with XML Schema
// imports in its <types> section. The wsdl package locates the former;
// the latter are found with the xsd package.
package wsdl // import "github.com/CognitoIQ/wsdlfetch/wsdl"

import (
	"github.com/CognitoIQ/wsdlfetch/xmltree"
	"github.com/CognitoIQ/wsdlfetch/xsd"
)

const (
	// Namespace is the canonical namespace of WSDL 1.1 documents.
	Namespace = "http://schemas.xmlsoap.org/wsdl/"
	wsdl20NS  = "http://www.w3.org/ns/wsdl"
)

// Imports returns the <import> elements of a WSDL document whose tag
// uses the given namespace prefix, in document order. Each Ref's
// Location is the value of the import's location attribute. An empty
// prefix matches unprefixed elements in the WSDL namespace.
func Imports(root *xmltree.Element, prefix string) []xsd.Ref {
	var result []xsd.Ref
	for _, el := range root.SearchFunc(isWSDLElem(prefix, "import")) {
		result = append(result, xsd.Ref{
			Namespace: el.Attr("", "namespace"),
			Location:  el.Attr("", "location"),
			Attr:      "location",
			Element:   el,
		})
	}
	return result
}

// Name returns the name declared by the document's top-level
// <definitions> element, or the empty string if the document has no
// such element or it is unnamed.
func Name(root *xmltree.Element, prefix string) string {
	if !isWSDLElem(prefix, "definitions")(root) {
		return ""
	}
	return root.Attr("", "name")
}

// Label describes a document for humans: its name if it has one,
// otherwise its target namespace.
func Label(root *xmltree.Element, prefix string) string {
	if name := Name(root, prefix); name != "" {
		return name
	}
	if tns := root.Attr("", "targetNamespace"); tns != "" {
		return "child wsdl for target namespace " + tns
	}
	return "<" + root.QName() + ">"
}

func isWSDLElem(prefix, local string) func(*xmltree.Element) bool {
	return func(el *xmltree.Element) bool {
		if el.Name.Local != local || el.Name.Space != prefix {
			return false
		}
		if prefix != "" {
			return true
		}
		ns := el.Namespace()
		return ns == Namespace || ns == wsdl20NS
	}
}
