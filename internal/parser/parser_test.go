package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/fieldpath"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForFile(t *testing.T) {
	tests := []struct {
		file string
		want Format
	}{
		{"tu.json", FormatJSON},
		{"EX.YAML", FormatYAML},
		{"efx.yml", FormatYAML},
		{"report.xml", FormatXML},
		{"saved.htm", FormatHTML},
		{"saved.html", FormatHTML},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := FormatForFile(tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := FormatForFile("report.pdf")
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)

	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
}

func TestParse_JSONKeepsNumbers(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"balance": 1250.00, "accountNumber": 12345678901234567890, "open": true}`), FormatJSON)
	require.NoError(t, err)

	obj := doc.(map[string]any)
	assert.Equal(t, json.Number("1250.00"), obj["balance"])
	assert.Equal(t, json.Number("12345678901234567890"), obj["accountNumber"])
	assert.Equal(t, true, obj["open"])
}

func TestParse_JSONErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"a":`), FormatJSON)
	require.Error(t, err)

	_, err = Parse(strings.NewReader(`{"a":1} {"b":2}`), FormatJSON)
	require.Error(t, err)

	_, err = Parse(strings.NewReader(`{}`), Format("pdf"))
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestParse_YAML(t *testing.T) {
	src := `
tradelines:
  - creditorName: CAP ONE
    accountIdentifier: "...-4432"
    balance: 1250
    opened: 2019-04-01
    1: numeric key
`
	doc, err := Parse(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)

	v, ok := fieldpath.Lookup(doc, "tradelines[0].creditorName")
	require.True(t, ok)
	assert.Equal(t, "CAP ONE", v)

	v, ok = fieldpath.Lookup(doc, "tradelines[0].opened")
	require.True(t, ok)
	assert.Equal(t, "2019-04-01", model.FormatValue(v))

	_, ok = fieldpath.Lookup(doc, "tradelines[0].1")
	assert.True(t, ok)

	empty, err := Parse(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, empty)
}

func TestParse_XMLMISMO(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<CREDIT_RESPONSE MISMOVersionID="2.4">
  <CREDIT_LIABILITY _AccountIdentifier="517805XXXXXX4432" _AccountStatusType="Open">
    <_CREDITOR _Name="CAP ONE"/>
    <_LATE_COUNT _30Days="2" _60Days="0"/>
    <_COMMENT>Paid as agreed</_COMMENT>
  </CREDIT_LIABILITY>
  <_BORROWER>
    <_NAME>JOHN Q CONSUMER</_NAME>
    <_ALIAS>JOHN CONSUMER</_ALIAS>
    <_ALIAS>J Q CONSUMER</_ALIAS>
  </_BORROWER>
  <NOTE priority="low">mixed text</NOTE>
</CREDIT_RESPONSE>`

	doc, err := Parse(strings.NewReader(src), FormatXML)
	require.NoError(t, err)

	tests := []struct {
		path string
		want any
	}{
		{"CREDIT_RESPONSE.@MISMOVersionID", "2.4"},
		{"CREDIT_RESPONSE.CREDIT_LIABILITY[0].@_AccountIdentifier", "517805XXXXXX4432"},
		{"CREDIT_RESPONSE.CREDIT_LIABILITY[0]._CREDITOR.@_Name", "CAP ONE"},
		{"CREDIT_RESPONSE.CREDIT_LIABILITY[0]._LATE_COUNT.@_30Days", "2"},
		{"CREDIT_RESPONSE.CREDIT_LIABILITY[0]._COMMENT", "Paid as agreed"},
		{"CREDIT_RESPONSE._BORROWER._NAME", "JOHN Q CONSUMER"},
		{"CREDIT_RESPONSE._BORROWER._ALIAS[1]", "J Q CONSUMER"},
		{"CREDIT_RESPONSE.NOTE.#text", "mixed text"},
		{"CREDIT_RESPONSE.NOTE.@priority", "low"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := fieldpath.Lookup(doc, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_XMLErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(""), FormatXML)
	require.Error(t, err)

	_, err = Parse(strings.NewReader("<A><B></A>"), FormatXML)
	require.Error(t, err)
}

func TestParse_HTMLFields(t *testing.T) {
	src := `<html><body>
<form>
  <input type="text" name="personal.name" value="JOHN CONSUMER">
  <input type="text" name="tradelines[0].creditorName" value="CAP ONE">
  <input type="text" name="tradelines[0].accountNumber" value="...-4432">
  <input type="checkbox" name="tradelines[0].isCollection" value="Y" checked>
  <input type="checkbox" name="tradelines[0].isChargeoff" value="Y">
  <select name="tradelines[1].accountStatus">
    <option value="Current">Current</option>
    <option value="Collection" selected>Collection</option>
  </select>
  <textarea name="tradelines[1].remarks">  placed for
   collection </textarea>
  <input type="submit" name="go" value="Save">
</form>
<table><tr><td data-field="tradelines[1].creditorName">MIDLAND  CREDIT</td>
<td data-field="tradelines[1].balance" data-value="880">$880.00</td></tr></table>
<script>var x = "<input name='evil' value='1'>";</script>
</body></html>`

	doc, err := Parse(strings.NewReader(src), FormatHTML)
	require.NoError(t, err)

	tests := []struct {
		path string
		want any
	}{
		{"personal.name", "JOHN CONSUMER"},
		{"tradelines[0].creditorName", "CAP ONE"},
		{"tradelines[0].accountNumber", "...-4432"},
		{"tradelines[0].isCollection", "Y"},
		{"tradelines[1].accountStatus", "Collection"},
		{"tradelines[1].remarks", "placed for collection"},
		{"tradelines[1].creditorName", "MIDLAND CREDIT"},
		{"tradelines[1].balance", "880"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := fieldpath.Lookup(doc, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := fieldpath.Lookup(doc, "tradelines[0].isChargeoff")
	assert.False(t, ok)
	_, ok = fieldpath.Lookup(doc, "go")
	assert.False(t, ok)
	_, ok = fieldpath.Lookup(doc, "evil")
	assert.False(t, ok)
}

func TestParseFieldName(t *testing.T) {
	assert.Equal(t, []fieldStep{{key: "a", index: -1}, {index: 2}, {key: "b", index: -1}}, parseFieldName("a[2].b"))
	assert.Nil(t, parseFieldName("a[999999]"))
	assert.Nil(t, parseFieldName("..."))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experian.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tradelines":[{"creditorName":"Capital One"}]}`), 0o600))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	v, ok := fieldpath.Lookup(doc, "tradelines[0].creditorName")
	require.True(t, ok)
	assert.Equal(t, "Capital One", v)

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	_, err = ParseFile(filepath.Join(dir, "report.txt"))
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestParse_XMLLatin1(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><BORROWER _Name=\"Jos\xe9\"/>"

	doc, err := Parse(strings.NewReader(src), FormatXML)
	require.NoError(t, err)

	v, ok := fieldpath.Lookup(doc, "BORROWER.@_Name")
	require.True(t, ok)
	assert.Equal(t, "José", v)
}
