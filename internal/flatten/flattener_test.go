package flatten

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherozshaikh/ublkit/internal/xmlparser"
)

func parse(t *testing.T, doc string) *xmlparser.Element {
	t.Helper()
	root, err := xmlparser.Parse([]byte(doc))
	require.NoError(t, err)
	return root
}

func TestFlattenInvoiceExample(t *testing.T) {
	root := parse(t, `<Invoice><ID>INV-001</ID><Item><Name>A</Name></Item><Item><Name>B</Name></Item></Invoice>`)

	pairs := Flatten(root, "invoice.xml")
	require.Len(t, pairs, 3)

	// First occurrence unnumbered, second occurrence suffixed [1].
	assert.Equal(t, "Invoice | ID | value", strings.Join(pairs[0].Key, " | "))
	assert.Equal(t, "INV-001", pairs[0].Value)
	assert.Equal(t, "Invoice | Item | Name | value", strings.Join(pairs[1].Key, " | "))
	assert.Equal(t, "A", pairs[1].Value)
	assert.Equal(t, "Invoice | Item[1] | Name | value", strings.Join(pairs[2].Key, " | "))
	assert.Equal(t, "B", pairs[2].Value)

	for _, p := range pairs {
		assert.Equal(t, "invoice.xml", p.SourceFile)
	}
}

func TestFlattenRepeatedSiblingNumbering(t *testing.T) {
	root := parse(t, `<Order><Line>a</Line><Line>b</Line><Line>c</Line></Order>`)

	pairs := Flatten(root, "")
	require.Len(t, pairs, 3)
	assert.Equal(t, []string{"Order", "Line", "value"}, pairs[0].Key)
	assert.Equal(t, []string{"Order", "Line[1]", "value"}, pairs[1].Key)
	assert.Equal(t, []string{"Order", "Line[2]", "value"}, pairs[2].Key)
}

func TestFlattenAttributesBeforeTextBeforeChildren(t *testing.T) {
	root := parse(t, `<Invoice><Amount currencyID="EUR">100.00</Amount></Invoice>`)

	pairs := Flatten(root, "")
	require.Len(t, pairs, 2)
	assert.Equal(t, []string{"Invoice", "Amount", "@currencyID"}, pairs[0].Key)
	assert.Equal(t, "EUR", pairs[0].Value)
	assert.Equal(t, []string{"Invoice", "Amount", "value"}, pairs[1].Key)
	assert.Equal(t, "100.00", pairs[1].Value)
}

func TestFlattenEmptyElementProducesNoRow(t *testing.T) {
	root := parse(t, `<Invoice><ID>X</ID><Note></Note><Empty/></Invoice>`)

	pairs := Flatten(root, "")
	require.Len(t, pairs, 1)
	assert.Equal(t, []string{"Invoice", "ID", "value"}, pairs[0].Key)
}

func TestFlattenKeysAreUnique(t *testing.T) {
	root := parse(t, `<Invoice>
		<ID>1</ID>
		<Party name="x"><Name>ACME</Name><Name>ACME GmbH</Name></Party>
		<Party name="y"><Name>Other</Name></Party>
	</Invoice>`)

	pairs := Flatten(root, "")
	seen := make(map[string]bool)
	for _, p := range pairs {
		k := strings.Join(p.Key, " | ")
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestToMapNestedShape(t *testing.T) {
	root := parse(t, `<Invoice><ID>INV-001</ID><Item><Name>A</Name></Item><Item><Name>B</Name></Item><Empty/></Invoice>`)

	m := ToMap(root)
	require.Contains(t, m, "Invoice")
	inv, ok := m["Invoice"].(map[string]any)
	require.True(t, ok)

	id, ok := inv["ID"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INV-001", id["value"])

	// Repeated children become arrays.
	items, ok := inv["Item"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)

	// Empty elements map to null.
	assert.Nil(t, inv["Empty"])
}

func TestToMapCoercesScalars(t *testing.T) {
	root := parse(t, `<Invoice><Paid>true</Paid><Count>3</Count><Amount currencyID="EUR">19.99</Amount></Invoice>`)

	inv := ToMap(root)["Invoice"].(map[string]any)
	assert.Equal(t, true, inv["Paid"].(map[string]any)["value"])
	assert.Equal(t, int64(3), inv["Count"].(map[string]any)["value"])

	amount := inv["Amount"].(map[string]any)
	assert.Equal(t, 19.99, amount["value"])
	assert.Equal(t, "EUR", amount["@currencyID"])
}

func TestFlatMapJoinsKeys(t *testing.T) {
	root := parse(t, `<Invoice><ID>INV-001</ID><Item><Name>A</Name></Item><Item><Name>B</Name></Item></Invoice>`)

	m := FlatMap(root, "/")
	assert.Equal(t, "INV-001", m["Invoice/ID/value"])
	assert.Equal(t, "A", m["Invoice/Item/Name/value"])
	assert.Equal(t, "B", m["Invoice/Item[1]/Name/value"])
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"42", int64(42)},
		{"-5", int64(-5)},
		{"0", int64(0)},
		{"3.14", 3.14},
		{"-0.5", -0.5},
		{"007", "007"},     // leading zeros stay strings
		{"0012", "0012"},   // same
		{"1e5", "1e5"},     // exponent forms stay strings
		{"", nil},          // empty -> null
		{"   ", nil},       // whitespace-only -> null
		{"True", "True"},   // only exact true/false coerce
		{"INV-001", "INV-001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Coerce(tt.in), "Coerce(%q)", tt.in)
	}
}
