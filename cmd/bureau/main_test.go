package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/bureau-dispute-flow/internal/common"
	"github.com/Veraticus/bureau-dispute-flow/internal/model"
	"github.com/Veraticus/bureau-dispute-flow/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transUnionJSON = `{
  "tradelines": [
    {"creditorName": "CAP ONE", "accountIdentifier": "...-4432", "accountStatus": "Charge-Off", "balance": 1250}
  ]
}`

const experianJSON = `{
  "tradelines": [
    {"creditorName": "Capital One", "accountIdentifier": "XXXX4432", "accountStatus": "Current", "balance": 1250}
  ]
}`

const combinedJSON = `{
  "TransUnion": ` + transUnionJSON + `,
  "EXP": ` + experianJSON + `
}`

type testEnv struct {
	dir string
	db  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{dir: dir, db: filepath.Join(dir, "bureau.db")}
	env.write(t, "tu.json", transUnionJSON)
	env.write(t, "ex.json", experianJSON)
	env.write(t, "combined.json", combinedJSON)
	return env
}

func (e *testEnv) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0o600))
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

// run executes the CLI with fresh global state and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	appConfig = nil
	cfgFile = ""

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--db", e.db, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func (e *testEnv) runJSON(t *testing.T, out any, args ...string) {
	t.Helper()
	stdout, err := e.run(t, append(args, "--format", "json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), out), stdout)
}

func TestVersion(t *testing.T) {
	out, err := newTestEnv(t).run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bureau version dev\n", out)
}

func TestFlatten(t *testing.T) {
	env := newTestEnv(t)

	var result struct {
		Paths     []string `json:"paths"`
		Truncated bool     `json:"truncated"`
	}
	env.runJSON(t, &result, "flatten", env.path("tu.json"))

	assert.Equal(t, []string{
		"tradelines[*].accountIdentifier",
		"tradelines[*].accountStatus",
		"tradelines[*].balance",
		"tradelines[*].creditorName",
	}, result.Paths)
	assert.False(t, result.Truncated)

	out, err := env.run(t, "flatten", env.path("tu.json"), "--max-keys", "1")
	require.NoError(t, err)
	assert.Equal(t, "tradelines[*].accountIdentifier\n", out)
}

func TestGet(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "get", env.path("tu.json"), "tradelines[0].creditorName")
	require.NoError(t, err)
	assert.Equal(t, "CAP ONE\n", out)

	out, err = env.run(t, "get", env.path("tu.json"), "tradelines[*].balance")
	require.NoError(t, err)
	assert.Equal(t, "1250\n", out)

	_, err = env.run(t, "get", env.path("tu.json"), "tradelines[3].balance")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = env.run(t, "get", env.path("missing.pdf"), "x")
	require.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestClassify(t *testing.T) {
	env := newTestEnv(t)

	var verdict map[string]any
	env.runJSON(t, &verdict, "classify", "CREDIT_LIABILITY[*].@IsCollectionIndicator", "Y")

	assert.Equal(t, true, verdict["is_negative"])
	assert.Equal(t, "collections", verdict["category"])
	assert.Equal(t, "high", verdict["severity"])
}

func TestDisputes(t *testing.T) {
	env := newTestEnv(t)

	var items []map[string]any
	env.runJSON(t, &items, "disputes", env.path("tu.json"), "--bureau", "TU")
	require.Len(t, items, 1)
	assert.Equal(t, "transunion:tradelines[*].accountStatus", items[0]["id"])
	assert.Equal(t, "CAP ONE", items[0]["creditor_name"])

	env.runJSON(t, &items, "disputes", env.path("ex.json"), "--bureau", "experian")
	assert.Empty(t, items)

	_, err := env.run(t, "disputes", env.path("tu.json"), "--bureau", "innovis")
	require.Error(t, err)

	out, err := env.run(t, "disputes", env.path("tu.json"), "--bureau", "tu")
	require.NoError(t, err)
	assert.Contains(t, out, "Negative account status: Charge-Off")
}

func TestDisputes_MISMOSeverityFloor(t *testing.T) {
	env := newTestEnv(t)
	doc := testutil.NewReport().
		WithLiability(testutil.Liability{
			Creditor:   "MIDLAND CREDIT",
			AccountID:  "8820091",
			Status:     "Collection",
			Late30:     1,
			Collection: true,
		}).
		MISMO()
	path := testutil.WriteJSON(t, env.dir, "mismo.json", doc)

	var items []map[string]any
	env.runJSON(t, &items, "disputes", path, "--bureau", "equifax")
	assert.Len(t, items, 3)

	env.runJSON(t, &items, "disputes", path, "--bureau", "equifax", "--severity", "high")
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "high", item["severity"])
		assert.Equal(t, "MIDLAND CREDIT", item["creditor_name"])
	}
}

func TestDisputes_RejectsUnknownSeverity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "disputes", env.path("tu.json"), "--bureau", "tu", "--severity", "critical")
	require.ErrorIs(t, err, model.ErrUnknownSeverity)
	msg, ok := common.UserMessage(err)
	require.True(t, ok)
	assert.Contains(t, msg, "unknown severity")
}

func TestDiffAndAccounts(t *testing.T) {
	env := newTestEnv(t)

	var diffs []map[string]any
	env.runJSON(t, &diffs, "diff", "--transunion", env.path("tu.json"), "--experian", env.path("ex.json"))
	keys := make([]string, 0, len(diffs))
	for _, d := range diffs {
		keys = append(keys, d["canonical_key"].(string))
	}
	assert.Equal(t, []string{"accountidentifier", "accountstatus", "creditorname"}, keys)

	env.runJSON(t, &diffs, "diff", "--combined", env.path("combined.json"), "--all")
	assert.Len(t, diffs, 4)

	var groups []map[string]any
	env.runJSON(t, &groups, "accounts", "--combined", env.path("combined.json"), "--status", "derogatory")
	require.Len(t, groups, 1)
	assert.Equal(t, "capitalone:4432", groups[0]["match_key"])
	assert.EqualValues(t, 100, groups[0]["score"])
	assert.NotNil(t, groups[0]["transunion"])
	assert.NotNil(t, groups[0]["experian"])
	assert.Nil(t, groups[0]["equifax"])

	env.runJSON(t, &groups, "accounts", "--combined", env.path("combined.json"), "--status", "clean")
	assert.Empty(t, groups)

	_, err := env.run(t, "accounts", "--combined", env.path("combined.json"), "--status", "spicy")
	require.Error(t, err)

	_, err = env.run(t, "diff")
	require.ErrorIs(t, err, common.ErrNoReports)
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t)

	var report struct {
		Bureaus []struct {
			Bureau    string `json:"bureau"`
			ItemCount int    `json:"item_count"`
		} `json:"bureaus"`
		DisputeItems  []map[string]any `json:"dispute_items"`
		AccountGroups []map[string]any `json:"account_groups"`
	}
	env.runJSON(t, &report, "analyze", "--combined", env.path("combined.json"))

	require.Len(t, report.Bureaus, 2)
	assert.Equal(t, "transunion", report.Bureaus[0].Bureau)
	assert.Equal(t, 1, report.Bureaus[0].ItemCount)
	assert.Len(t, report.DisputeItems, 1)
	assert.Len(t, report.AccountGroups, 1)

	out, err := env.run(t, "analyze", "--transunion", env.path("tu.json"), "--experian", env.path("ex.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Mismatched fields: 3")
}

func TestSelections(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "select", "accountstatus", "experian", "--report", "march", "--notes", "paid in full")
	require.NoError(t, err)
	_, err = env.run(t, "select", "balance", "tu", "--report", "march")
	require.NoError(t, err)

	var selections []map[string]any
	env.runJSON(t, &selections, "selections", "--report", "march")
	require.Len(t, selections, 2)
	assert.Equal(t, "accountstatus", selections[0]["canonical_key"])
	assert.Equal(t, "experian", selections[0]["bureau"])
	assert.Equal(t, "paid in full", selections[0]["notes"])

	_, err = env.run(t, "selections", "delete", "balance", "--report", "march")
	require.NoError(t, err)
	env.runJSON(t, &selections, "selections", "--report", "march")
	assert.Len(t, selections, 1)

	_, err = env.run(t, "selections", "delete", "balance", "--report", "march")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = env.run(t, "select", "balance", "innovis")
	require.Error(t, err)
}

func TestLetterQueue(t *testing.T) {
	env := newTestEnv(t)
	itemID := "transunion:tradelines[*].accountStatus"

	out, err := env.run(t, "letter", "add", itemID, "--transunion", env.path("tu.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Queued CAP ONE")

	_, err = env.run(t, "letter", "add", "transunion:nope", "--transunion", env.path("tu.json"))
	require.ErrorIs(t, err, common.ErrNotFound)

	var items []map[string]any
	env.runJSON(t, &items, "letter", "list")
	require.Len(t, items, 1)
	assert.Equal(t, itemID, items[0]["item_id"])
	assert.Equal(t, "CAP ONE — Negative account status: Charge-Off: accountStatus: Charge-Off", items[0]["summary"])

	env.runJSON(t, &items, "letter", "list", "--bureau", "experian")
	assert.Empty(t, items)

	out, err = env.run(t, "letter", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 queued items")
}
