package csvwriter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/types"
)

func newWriter(method string, maxRecords int) *Writer {
	return NewWriter(config.CSVConfig{
		KeySeparator:       " | ",
		PreservationMethod: method,
		MaxRecordsPerFile:  maxRecords,
	})
}

func pair(segments ...string) types.KeyValuePair {
	return types.KeyValuePair{Key: segments[:len(segments)-1], Value: segments[len(segments)-1], SourceFile: "in.xml"}
}

// readShard reads one written shard back: it checks the BOM, strips it and
// returns header + rows.
func readShard(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteSingleFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "invoice.csv")

	pairs := []types.KeyValuePair{
		pair("Invoice", "ID", "value", "INV-001"),
		pair("Invoice", "Item", "Name", "value", "A"),
	}

	created, err := newWriter("none", 50000).Write(pairs, out)
	require.NoError(t, err)
	require.Equal(t, []string{out}, created)

	rows := readShard(t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Key", "Value", "Filename"}, rows[0])
	assert.Equal(t, []string{"Invoice | ID | value", "INV-001", "in.xml"}, rows[1])
	assert.Equal(t, []string{"Invoice | Item | Name | value", "A", "in.xml"}, rows[2])
}

func TestWriteSplitsAtThreshold(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "big.csv")

	var pairs []types.KeyValuePair
	for i := 0; i < 7; i++ {
		pairs = append(pairs, pair("R", fmt.Sprintf("F%d", i), "value", fmt.Sprintf("v%d", i)))
	}

	created, err := newWriter("none", 3).Write(pairs, out)
	require.NoError(t, err)

	// ceil(7/3) = 3 shards, named with 1-based zero-padded part numbers.
	require.Equal(t, []string{
		filepath.Join(dir, "big_part001.csv"),
		filepath.Join(dir, "big_part002.csv"),
		filepath.Join(dir, "big_part003.csv"),
	}, created)

	// Concatenating the shards' data rows reproduces the record in order.
	var values []string
	for _, p := range created {
		rows := readShard(t, p)
		assert.LessOrEqual(t, len(rows)-1, 3)
		for _, r := range rows[1:] {
			values = append(values, r[1])
		}
	}
	assert.Equal(t, []string{"v0", "v1", "v2", "v3", "v4", "v5", "v6"}, values)
}

func TestWriteExactMultipleKeepsBaseName(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fit.csv")

	pairs := []types.KeyValuePair{
		pair("R", "A", "value", "1"),
		pair("R", "B", "value", "2"),
		pair("R", "C", "value", "3"),
	}

	created, err := newWriter("none", 3).Write(pairs, out)
	require.NoError(t, err)
	assert.Equal(t, []string{out}, created)
}

func TestWriteEmptyRecordCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "empty.csv")

	created, err := newWriter("none", 10).Write(nil, out)
	require.NoError(t, err)
	assert.Empty(t, created)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPreserveMethods(t *testing.T) {
	assert.Equal(t, "0012", newWriter("none", 1).Preserve("0012"))
	assert.Equal(t, "'0012", newWriter("apostrophe", 1).Preserve("0012"))
	assert.Equal(t, `"0012"`, newWriter("quotes", 1).Preserve("0012"))
	assert.Equal(t, "[0012]", newWriter("brackets", 1).Preserve("0012"))
}

func TestPreserveEmptyValuePassesThrough(t *testing.T) {
	for _, method := range []string{"none", "apostrophe", "quotes", "brackets"} {
		assert.Equal(t, "", newWriter(method, 1).Preserve(""), "method %s", method)
	}
}

// quotes and brackets are reversible: stripping the wrapper recovers the
// original text exactly. apostrophe is append-only: the leading quote stays
// part of the cell and is never stripped back.
func TestPreserveReversibility(t *testing.T) {
	original := `a "quoted" 1/2 value`

	quoted := newWriter("quotes", 1).Preserve(original)
	assert.Equal(t, original, strings.TrimSuffix(strings.TrimPrefix(quoted, `"`), `"`))

	bracketed := newWriter("brackets", 1).Preserve(original)
	assert.Equal(t, original, strings.TrimSuffix(strings.TrimPrefix(bracketed, "["), "]"))

	apostrophed := newWriter("apostrophe", 1).Preserve(original)
	assert.Equal(t, "'"+original, apostrophed)
	assert.NotEqual(t, original, apostrophed)
}

// Values containing the CSV delimiter or quotes survive a write/read
// round-trip: CSV-level escaping is encoding/csv's job, independent of the
// preservation transform.
func TestWriteQuotesCSVSpecials(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "specials.csv")

	pairs := []types.KeyValuePair{
		pair("R", "A", "value", `x,y`),
		pair("R", "B", "value", `say "hi"`),
	}

	_, err := newWriter("none", 10).Write(pairs, out)
	require.NoError(t, err)

	rows := readShard(t, out)
	assert.Equal(t, `x,y`, rows[1][1])
	assert.Equal(t, `say "hi"`, rows[2][1])
}
