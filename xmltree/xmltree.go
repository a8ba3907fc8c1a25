// Package xmltree converts XML documents to a tree of Go structs that
// can be modified in place and written back out.
//
// Unlike encoding/xml, the xmltree package keeps the namespace prefix
// used in the source document in the Space field of element and
// attribute names, and keeps xmlns declarations as ordinary attributes.
// A tree written with Marshal or MarshalIndent therefore uses the same
// prefixes and declarations as the document it was parsed from. The
// namespace bound to a prefix at any point in the tree is available
// through the Resolve family of methods.
package xmltree // import "github.com/CognitoIQ/wsdlfetch/xmltree"

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const recursionLimit = 3000

var (
	errDeepXML = errors.New("xmltree: xml document too deeply nested")
	errNoRoot  = errors.New("xmltree: no root element")
)

// An Element represents a single element in an XML document. Elements
// may have zero or more children. The Name of an Element, and the names
// of its attributes, hold the namespace prefix as written in the
// document, not the namespace it resolves to.
type Element struct {
	xml.StartElement
	// Character data directly inside the element, with entities
	// decoded. Text interleaved with child elements is concatenated;
	// the encoders still write it in its original position.
	Content  []byte
	Children []Element
	// A list of defined XML namespace prefixes, from least specific to
	// most specific. The Space field is the canonical xml namespace,
	// and the Local field is the prefix.
	Scope []xml.Name

	// text[i] is the character data before Children[i], and the
	// last entry the data after the last child. Only set for
	// parsed elements with children.
	text [][]byte
}

// QName returns the element's name as written in the document, in the
// form prefix:local.
func (el *Element) QName() string {
	return qname(el.Name)
}

// Namespace returns the canonical namespace the element's prefix is bound
// to, or the empty string if the prefix is not declared.
func (el *Element) Namespace() string {
	name, ok := el.ResolveNS(el.QName())
	if !ok {
		return ""
	}
	return name.Space
}

// Attr gets the value of the first attribute whose name matches the
// space and local arguments. space is compared against the attribute's
// prefix. If space is the empty string, only attributes' local names are
// considered when looking for a match; namespace declarations are never
// matched. If an attribute could not be found, the empty string is
// returned.
func (el *Element) Attr(space, local string) string {
	if i := el.attrIndex(space, local); i >= 0 {
		return el.StartElement.Attr[i].Value
	}
	return ""
}

// SetAttr adds an XML attribute to an Element's existing Attributes.
// If the attribute already exists, it is replaced.
func (el *Element) SetAttr(space, local, value string) {
	if i := el.attrIndex(space, local); i >= 0 {
		el.StartElement.Attr[i].Value = value
		return
	}
	el.StartElement.Attr = append(el.StartElement.Attr, xml.Attr{
		Name:  xml.Name{Space: space, Local: local},
		Value: value,
	})
}

func (el *Element) attrIndex(space, local string) int {
	for i, v := range el.StartElement.Attr {
		if v.Name.Local != local || v.Name.Space == "xmlns" {
			continue
		}
		if space == "" || space == v.Name.Space {
			return i
		}
	}
	return -1
}

// Resolve translates an XML QName (namespace-prefixed string) to an
// xml.Name with a canonicalized namespace in its Space field. If qname
// does not have a prefix, the default namespace is used. If a namespace
// prefix cannot be resolved, the returned value's Space field will be the
// unresolved prefix. Use the ResolveNS method to detect when a namespace
// prefix cannot be resolved.
func (el *Element) Resolve(qname string) xml.Name {
	name, _ := el.ResolveNS(qname)
	return name
}

// The ResolveNS method is like Resolve, but returns false for its second
// return value if a namespace prefix cannot be resolved.
func (el *Element) ResolveNS(qname string) (xml.Name, bool) {
	var prefix, local string
	parts := strings.SplitN(qname, ":", 2)
	if len(parts) == 2 {
		prefix, local = parts[0], parts[1]
	} else {
		prefix, local = "", parts[0]
	}
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Local == prefix {
			return xml.Name{Space: el.Scope[i].Space, Local: local}, true
		}
	}
	return xml.Name{Space: prefix, Local: local}, false
}

// Prefix is the inverse of Resolve. It uses the closest prefix
// defined for a namespace to create a string of the form
// prefix:local. If the namespace cannot be found, an empty string
// is returned.
func (el *Element) Prefix(name xml.Name) (qname string) {
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Space == name.Space {
			if el.Scope[i].Local == "" {
				return name.Local
			}
			return el.Scope[i].Local + ":" + name.Local
		}
	}
	return ""
}

func (el *Element) pushNS(tag xml.StartElement) {
	var scope []xml.Name
	for _, attr := range tag.Attr {
		if attr.Name.Space == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value, Local: attr.Name.Local})
		} else if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value, Local: ""})
		}
	}
	if len(scope) > 0 {
		el.Scope = append(el.Scope, scope...)
		// Ensure that future additions to the scope create
		// a new backing array. This prevents the scope from
		// being clobbered during parsing.
		el.Scope = el.Scope[:len(el.Scope):len(el.Scope)]
	}
}

func qname(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// Save some typing when scanning xml
type scanner struct {
	*xml.Decoder
	tok xml.Token
	err error
}

// scan uses RawToken so that prefixes are not replaced with
// the namespaces they are bound to.
func (s *scanner) scan() bool {
	if s.err != nil {
		return false
	}
	s.tok, s.err = s.RawToken()
	return s.err == nil
}

// Parse builds a tree of Elements by reading an XML document. The byte
// slice passed to Parse is expected to be a valid XML document with a
// single root element. Documents declaring a non-UTF-8 encoding are
// converted to UTF-8.
func Parse(doc []byte) (*Element, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = charset.NewReaderLabel
	scanner := scanner{Decoder: d}
	root := new(Element)

	for scanner.scan() {
		if start, ok := scanner.tok.(xml.StartElement); ok {
			root.StartElement = start.Copy()
			break
		}
	}
	if scanner.err == io.EOF {
		return nil, errNoRoot
	}
	if scanner.err != nil {
		return nil, scanner.err
	}
	if err := root.parse(&scanner, 0); err != nil {
		return nil, err
	}
	return root, nil
}

func (el *Element) parse(scanner *scanner, depth int) error {
	if depth > recursionLimit {
		return errDeepXML
	}
	el.pushNS(el.StartElement)

	var segment []byte
	for scanner.scan() {
		switch tok := scanner.tok.(type) {
		case xml.StartElement:
			child := Element{StartElement: tok.Copy(), Scope: el.Scope}
			if err := child.parse(scanner, depth+1); err != nil {
				return err
			}
			el.text = append(el.text, segment)
			segment = nil
			el.Children = append(el.Children, child)
		case xml.CharData:
			el.Content = append(el.Content, tok...)
			segment = append(segment, tok...)
		case xml.EndElement:
			if tok.Name != el.Name {
				return fmt.Errorf("xmltree: expecting </%s>, got </%s>", el.QName(), qname(tok.Name))
			}
			if len(el.Children) > 0 {
				el.text = append(el.text, segment)
			}
			return nil
		}
	}
	if scanner.err == io.EOF {
		return fmt.Errorf("xmltree: unexpected EOF, expecting </%s>", el.QName())
	}
	return scanner.err
}

// The walk method calls fn for each of the Element's children.
func (el *Element) walk(fn walkFunc) {
	for i := 0; i < len(el.Children); i++ {
		fn(&el.Children[i])
	}
}

// walkFunc is the type of the function called for each of an Element's
// children.
type walkFunc func(*Element)

// SearchFunc traverses the Element tree in depth-first order and returns
// a slice of Elements for which the function fn returns true. The root
// itself is not considered. The returned pointers refer to Elements
// within the tree, so changes made through them are visible when the
// tree is marshalled.
func (root *Element) SearchFunc(fn func(*Element) bool) []*Element {
	var results []*Element
	var search func(el *Element)

	search = func(el *Element) {
		if fn(el) {
			results = append(results, el)
		}
		el.walk(search)
	}
	root.walk(search)
	return results
}

// Search searches the Element tree for Elements with an xml tag
// matching the prefix and local name. If space is the empty string,
// any prefix is matched.
func (root *Element) Search(space, local string) []*Element {
	return root.SearchFunc(func(el *Element) bool {
		if local != el.Name.Local {
			return false
		}
		return space == "" || space == el.Name.Space
	})
}
