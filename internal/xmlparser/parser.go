// =============================================================================
// ublkit - XML Parser Adapter
// =============================================================================
//
// This module loads a UBL XML document into an in-memory element tree.
// Namespace prefixes are stripped so that flattening keys stay readable
// ("cbc:ID" becomes "ID"). Files are read with an encoding-priority fallback:
// the configured encoding is tried first, then the built-in defaults, and the
// content is transcoded to UTF-8 before parsing.
//
// The tree is owned exclusively by the conversion call that created it and is
// discarded after flattening.
//
// =============================================================================

package xmlparser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/sherozshaikh/ublkit/internal/types"
)

// DefaultEncodingPriority is the fallback order used when the configured
// encoding cannot decode a file.
var DefaultEncodingPriority = []string{"utf-8", "utf-16", "iso-8859-1", "cp1252"}

// =============================================================================
// ELEMENT TREE
// =============================================================================

// Attr is a single attribute on an element. Namespace declarations (xmlns)
// are dropped during parsing.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the parsed document tree.
type Element struct {
	// Tag is the local element name with any namespace prefix stripped.
	Tag string

	// Attrs holds the attributes in document order.
	Attrs []Attr

	// Text is the trimmed character data directly inside the element.
	// Empty when the element has no text or only whitespace.
	Text string

	// Children holds the child elements in document order.
	Children []*Element
}

// Empty reports whether the element carries no attributes, no text and no
// children. Empty elements produce no flattened rows.
func (e *Element) Empty() bool {
	return len(e.Attrs) == 0 && e.Text == "" && len(e.Children) == 0
}

// DocumentType returns the UBL document type of a parsed tree: the local tag
// name of the root element, independent of any namespace prefix.
func DocumentType(root *Element) string {
	if root == nil {
		return ""
	}
	return root.Tag
}

// =============================================================================
// PARSING
// =============================================================================

// Parse decodes raw XML bytes into an element tree. The input is expected to
// be UTF-8 (ReadFile transcodes); XML prologs declaring other charsets are
// accepted as-is for that reason. Malformed XML yields a *types.ParseError.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	// Content has already been transcoded to UTF-8, so a prolog that still
	// declares the original charset must not trigger a second conversion.
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var root *Element
	var stack []*Element
	var text []*strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &types.ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &types.ParseError{Err: fmt.Errorf("multiple root elements")}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})

		case xml.CharData:
			if len(stack) > 0 {
				text[len(text)-1].Write(t)
			}

		case xml.EndElement:
			el := stack[len(stack)-1]
			el.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, &types.ParseError{Err: fmt.Errorf("no root element")}
	}
	return root, nil
}

// ParseFile reads and parses one XML file using the given encoding priority.
// It returns the tree and the encoding that successfully decoded the file.
func ParseFile(path string, priority []string) (*Element, string, error) {
	data, enc, err := ReadFile(path, priority)
	if err != nil {
		return nil, "", err
	}
	root, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*types.ParseError); ok {
			pe.Path = path
		}
		return nil, enc, err
	}
	return root, enc, nil
}

// =============================================================================
// ENCODING-AWARE READING
// =============================================================================

// ReadFile reads an XML file, trying each encoding in priority order and
// transcoding the content to UTF-8. It returns the decoded bytes and the name
// of the encoding that succeeded. Duplicate entries in the priority list are
// skipped.
func ReadFile(path string, priority []string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &types.IOError{Op: "read", Path: path, Err: err}
	}

	if len(priority) == 0 {
		priority = DefaultEncodingPriority
	}

	seen := make(map[string]bool, len(priority))
	var lastErr error
	for _, name := range priority {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		decoded, err := decodeAs(name, data)
		if err != nil {
			lastErr = err
			continue
		}
		return decoded, name, nil
	}

	return nil, "", &types.IOError{
		Op:   "read",
		Path: path,
		Err:  fmt.Errorf("no supported encoding could decode the file (tried %s): %w", strings.Join(priority, ", "), lastErr),
	}
}

// decodeAs decodes data according to the named encoding, returning UTF-8
// bytes. Unknown names are an error so configuration typos surface early.
func decodeAs(name string, data []byte) ([]byte, error) {
	switch name {
	case "utf-8", "utf8":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("invalid UTF-8")
		}
		return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}), nil

	case "ascii":
		for _, b := range data {
			if b >= 0x80 {
				return nil, fmt.Errorf("non-ASCII byte 0x%02x", b)
			}
		}
		return data, nil

	case "utf-16", "utf16":
		// ExpectBOM makes decoding fail on BOM-less input instead of
		// guessing the byte order.
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data)

	case "iso-8859-1", "latin-1", "latin1":
		return decodeWith(charmap.ISO8859_1, data)

	case "cp1252", "windows-1252":
		return decodeWith(charmap.Windows1252, data)
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

func decodeWith(enc encoding.Encoding, data []byte) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return out, nil
}
