package xmltree

import (
	"bytes"
	"encoding/xml"
	"sort"
)

// Equal returns true if two xmltree.Elements are equal, ignoring
// differences in white space, sub-element order, namespace declarations
// and the prefixes chosen for a namespace.
func Equal(a, b *Element) bool {
	return equal(a, b, 0)
}

type byName []*Element

func (l byName) Len() int { return len(l) }
func (l byName) Less(i, j int) bool {
	x, y := l[i].canonicalName(), l[j].canonicalName()
	return x.Space+x.Local < y.Space+y.Local
}
func (l byName) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func (el *Element) canonicalName() xml.Name {
	return el.Resolve(el.QName())
}

func sortedChildren(el *Element) []*Element {
	children := make([]*Element, len(el.Children))
	for i := range el.Children {
		children[i] = &el.Children[i]
	}
	sort.Stable(byName(children))
	return children
}

func equal(a, b *Element, depth int) bool {
	const maxDepth = 1000
	if depth > maxDepth {
		return false
	}
	if !equalElement(a, b) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	if !bytes.Equal(bytes.TrimSpace(a.Content), bytes.TrimSpace(b.Content)) {
		return false
	}
	ac, bc := sortedChildren(a), sortedChildren(b)
	for i := range ac {
		if !equal(ac[i], bc[i], depth+1) {
			return false
		}
	}
	return true
}

func equalElement(a, b *Element) bool {
	if a.canonicalName() != b.canonicalName() {
		return false
	}
	attrs := make(map[xml.Name]string)
	for _, attr := range a.StartElement.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		attrs[attrName(a, attr.Name)] = attr.Value
	}

	n := 0
	for _, attr := range b.StartElement.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		if v, ok := attrs[attrName(b, attr.Name)]; !ok || v != attr.Value {
			return false
		}
		n++
	}
	return n == len(attrs)
}

// Unprefixed attributes are in no namespace, regardless of the
// default namespace in scope.
func attrName(el *Element, name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}
	return el.Resolve(qname(name))
}
