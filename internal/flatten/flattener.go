// =============================================================================
// ublkit - Tree Flattener
// =============================================================================
//
// This module walks a parsed element tree and produces the two output shapes:
//
//   Flatten  - an ordered sequence of (key-path, value) pairs for CSV/XLSX.
//   ToMap    - a nested map[string]any for JSON output.
//
// Key construction: depth-first, sibling order preserved. At each element the
// tag name is appended to the current path. Attributes emit "@name" segments,
// element text emits a trailing "value" segment, and empty elements emit
// nothing.
//
// Repeated-sibling disambiguation uses the unnumbered-first convention: the
// first occurrence of a tag among its siblings keeps the plain name, every
// later occurrence is suffixed with its 0-based occurrence index:
//
//   <Item/><Item/><Item/>  ->  Item, Item[1], Item[2]
//
// Downstream consumers depend on these exact key strings; the convention is
// asserted literally in the tests.
//
// =============================================================================

package flatten

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sherozshaikh/ublkit/internal/types"
	"github.com/sherozshaikh/ublkit/internal/xmlparser"
)

// =============================================================================
// FLATTENED PAIRS (CSV / XLSX MODE)
// =============================================================================

// Flatten walks the tree depth-first and returns the flattened record:
// one pair per attribute and per non-empty element text, in document order.
// Values are kept as raw strings; CSV-mode never coerces.
func Flatten(root *xmlparser.Element, sourceFile string) []types.KeyValuePair {
	if root == nil {
		return nil
	}
	var out []types.KeyValuePair
	walk(root, []string{root.Tag}, sourceFile, &out)
	return out
}

func walk(el *xmlparser.Element, path []string, sourceFile string, out *[]types.KeyValuePair) {
	for _, a := range el.Attrs {
		*out = append(*out, types.KeyValuePair{
			Key:        child(path, "@"+a.Name),
			Value:      a.Value,
			SourceFile: sourceFile,
		})
	}

	if el.Text != "" {
		*out = append(*out, types.KeyValuePair{
			Key:        child(path, "value"),
			Value:      el.Text,
			SourceFile: sourceFile,
		})
	}

	// Occurrence counters for sibling tags. The first occurrence keeps the
	// plain tag name, later ones get the [i] suffix.
	seen := make(map[string]int, len(el.Children))
	for _, c := range el.Children {
		idx := seen[c.Tag]
		seen[c.Tag] = idx + 1

		seg := c.Tag
		if idx > 0 {
			seg = c.Tag + "[" + strconv.Itoa(idx) + "]"
		}
		walk(c, child(path, seg), sourceFile, out)
	}
}

// child returns path + seg as a fresh slice. Paths are retained inside the
// emitted pairs, so sharing the parent's backing array would corrupt keys.
func child(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}

// =============================================================================
// NESTED MAPPING (JSON MODE)
// =============================================================================

// ToMap converts the tree into a JSON-compatible nested mapping, wrapped in
// the root element name:
//
//	{"Invoice": {"@currencyID": "EUR", "ID": {"value": "INV-001"}, ...}}
//
// Attributes become "@name" keys, element text becomes a "value" key, and
// children repeated under the same parent become arrays. Empty elements map
// to null. Scalars are coerced (JSON mode only).
func ToMap(root *xmlparser.Element) map[string]any {
	if root == nil {
		return nil
	}
	return map[string]any{root.Tag: elementToMap(root)}
}

func elementToMap(el *xmlparser.Element) any {
	m := make(map[string]any)

	for _, a := range el.Attrs {
		m["@"+a.Name] = Coerce(a.Value)
	}
	if el.Text != "" {
		m["value"] = Coerce(el.Text)
	}

	grouped := make(map[string][]any)
	var order []string
	for _, c := range el.Children {
		if _, ok := grouped[c.Tag]; !ok {
			order = append(order, c.Tag)
		}
		grouped[c.Tag] = append(grouped[c.Tag], elementToMap(c))
	}
	for _, tag := range order {
		vals := grouped[tag]
		if len(vals) == 1 {
			m[tag] = vals[0]
		} else {
			m[tag] = vals
		}
	}

	if len(m) == 0 {
		return nil
	}
	return m
}

// FlatMap flattens the tree into a single-level JSON object keyed by the
// joined key paths. Used when json.flatten is enabled; shares the key
// convention of Flatten so JSON and CSV keys line up.
func FlatMap(root *xmlparser.Element, separator string) map[string]any {
	pairs := Flatten(root, "")
	m := make(map[string]any, len(pairs))
	for _, p := range pairs {
		m[strings.Join(p.Key, separator)] = Coerce(p.Value)
	}
	return m
}

// =============================================================================
// SCALAR COERCION
// =============================================================================

// numberPattern accepts integers and plain decimals without leading-zero
// ambiguity ("007" stays a string) and without exponent forms.
var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Coerce maps a raw scalar string to its JSON-native value:
//
//	"true"/"false" (exact)       -> bool
//	integer or decimal           -> number (leading zeros stay strings)
//	empty or whitespace-only     -> null
//	everything else              -> the string, unchanged
//
// Only JSON mode calls this; CSV output preserves the raw string so the
// presentation/corruption rules keep working on the original text.
func Coerce(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if numberPattern.MatchString(s) {
		if !strings.Contains(s, ".") {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
