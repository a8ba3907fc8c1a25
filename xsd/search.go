package xsd

import "github.com/CognitoIQ/wsdlfetch/xmltree"

// Search predicates for the xmltree.Element.SearchFunc method
type predicate func(el *xmltree.Element) bool

func and(fns ...predicate) predicate {
	return func(el *xmltree.Element) bool {
		for _, f := range fns {
			if !f(el) {
				return false
			}
		}
		return true
	}
}

func or(fns ...predicate) predicate {
	return func(el *xmltree.Element) bool {
		for _, f := range fns {
			if f(el) {
				return true
			}
		}
		return false
	}
}

// isElem matches the prefix exactly; unlike xmltree.Search, an
// empty prefix only matches unprefixed elements.
func isElem(prefix, local string) predicate {
	return func(el *xmltree.Element) bool {
		return el.Name.Local == local && el.Name.Space == prefix
	}
}

func inSchemaNS(el *xmltree.Element) bool {
	return IsNamespace(el.Namespace())
}

func hasPrefix(el *xmltree.Element) bool {
	return el.Name.Space != ""
}

// Without a prefix, only the default namespace tells a schema
// <import> from a WSDL <import>.
func isSchemaElem(prefix, local string) predicate {
	return and(isElem(prefix, local), or(hasPrefix, inSchemaNS))
}
