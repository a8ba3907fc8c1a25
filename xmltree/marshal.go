package xmltree

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"unicode"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#xD;",
)

// Marshal produces the XML encoding of an Element. Element and
// attribute names are written with the prefixes they were parsed with,
// and namespace declarations are written where they appeared in the
// source document. Marshal panics if the tree is nested more deeply
// than Parse allows; Encode returns an error instead.
func Marshal(el *Element) []byte {
	var buf bytes.Buffer
	if err := Encode(&buf, el); err != nil {
		// bytes.Buffer.Write never fails; only depth can.
		panic(err)
	}
	return buf.Bytes()
}

// MarshalIndent is like Marshal, but places each element on a new line
// beginning with prefix, followed by one copy of indent per level of
// nesting. Text content is trimmed of surrounding white space, and
// elements containing only text are written on a single line. Elements
// mixing text and child elements are written on a single line with
// their inner text and white space unchanged. The same tree always
// produces the same output.
func MarshalIndent(el *Element, prefix, indent string) []byte {
	var buf bytes.Buffer
	if err := EncodeIndent(&buf, el, prefix, indent); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Encode writes the XML encoding of the Element to w.
// Encode returns any errors encountered writing to w.
func Encode(w io.Writer, el *Element) error {
	enc := encoder{w: bufio.NewWriter(w)}
	return enc.run(el)
}

// EncodeIndent writes the indented XML encoding of the Element to w, as
// described by MarshalIndent.
func EncodeIndent(w io.Writer, el *Element, prefix, indent string) error {
	enc := encoder{w: bufio.NewWriter(w), prefix: prefix, indent: indent, pretty: true}
	return enc.run(el)
}

// String returns the XML encoding of an Element
// and its children as a string.
func (el *Element) String() string {
	return string(Marshal(el))
}

type encoder struct {
	w              *bufio.Writer
	prefix, indent string
	pretty         bool
}

func (e *encoder) run(el *Element) error {
	if err := e.encode(el, 0, false); err != nil {
		return err
	}
	if e.pretty {
		e.w.WriteByte('\n')
	}
	return e.w.Flush()
}

// bufio.Writer errors are sticky, so only the final Flush and the
// attribute escaping are checked. Within an inline element no white
// space is added, even when indenting.
func (e *encoder) encode(el *Element, depth int, inline bool) error {
	if depth > recursionLimit {
		return errDeepXML
	}
	switch {
	case inline:
	case depth > 0:
		e.newline(depth)
	case e.pretty:
		e.w.WriteString(e.prefix)
	}
	e.w.WriteByte('<')
	e.w.WriteString(el.QName())
	for _, attr := range el.StartElement.Attr {
		e.w.WriteByte(' ')
		e.w.WriteString(qname(attr.Name))
		e.w.WriteString(`="`)
		if err := xml.EscapeText(e.w, []byte(attr.Value)); err != nil {
			return err
		}
		e.w.WriteByte('"')
	}
	indenting := e.pretty && !inline

	if len(el.Children) == 0 {
		text := el.Content
		if indenting {
			text = bytes.TrimSpace(text)
		}
		if len(text) == 0 {
			e.w.WriteString("/>")
			return nil
		}
		e.w.WriteByte('>')
		textEscaper.WriteString(e.w, string(text))
	} else {
		e.w.WriteByte('>')
		text := el.segments()
		if indenting && !isMixed(text) {
			for i := range el.Children {
				if err := e.encode(&el.Children[i], depth+1, false); err != nil {
					return err
				}
			}
			e.newline(depth)
		} else {
			last := len(text) - 1
			for i, seg := range text {
				if indenting && i == 0 {
					seg = bytes.TrimLeftFunc(seg, unicode.IsSpace)
				}
				if indenting && i == last {
					seg = bytes.TrimRightFunc(seg, unicode.IsSpace)
				}
				textEscaper.WriteString(e.w, string(seg))
				if i < len(el.Children) {
					if err := e.encode(&el.Children[i], depth+1, true); err != nil {
						return err
					}
				}
			}
		}
	}

	e.w.WriteString("</")
	e.w.WriteString(el.QName())
	e.w.WriteByte('>')
	return nil
}

// segments returns the text before each child, followed by the text
// after the last child. Trees whose children or content were changed
// after parsing have their content written before the first child.
func (el *Element) segments() [][]byte {
	if len(el.text) == len(el.Children)+1 && bytes.Equal(bytes.Join(el.text, nil), el.Content) {
		return el.text
	}
	text := make([][]byte, len(el.Children)+1)
	text[0] = bytes.TrimSpace(el.Content)
	return text
}

func isMixed(text [][]byte) bool {
	for _, seg := range text {
		if len(bytes.TrimSpace(seg)) > 0 {
			return true
		}
	}
	return false
}

func (e *encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.w.WriteByte('\n')
	e.w.WriteString(e.prefix)
	for i := 0; i < depth; i++ {
		e.w.WriteString(e.indent)
	}
}
