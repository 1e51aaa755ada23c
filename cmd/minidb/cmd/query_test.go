package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ssargent/minidb/internal/testutil"
	"github.com/ssargent/minidb/pkg/api"
	"github.com/ssargent/minidb/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactsFile(t *testing.T) string {
	t.Helper()
	return testutil.Contacts().WriteFile(t, "contacts.mdb")
}

func sensorsFile(t *testing.T) string {
	t.Helper()
	return testutil.Sensors().WriteFile(t, "sensors.mdb")
}

func TestRowCommand(t *testing.T) {
	file := contactsFile(t)

	stdout, _, err := run(t, "row", file, "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Row 1 (offset")
	assert.Contains(t, stdout, "id")
	assert.Contains(t, stdout, "Uint8")
	assert.Contains(t, stdout, "bob@chicago.com")

	stdout, _, err = run(t, "--format", "json", "row", file, "1")
	require.NoError(t, err)

	var row api.RowResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &row))
	assert.Equal(t, 1, row.Index)
	assert.Equal(t, "2", row.Fields[0].Value)
	assert.Equal(t, "bob@chicago.com", row.Fields[1].Value)
}

func TestRowCommand_Errors(t *testing.T) {
	file := contactsFile(t)

	_, _, err := run(t, "row", file, "3")
	assert.ErrorIs(t, err, store.ErrRowNotFound)

	_, _, err = run(t, "row", "--", file, "-1")
	assert.ErrorIs(t, err, store.ErrRowNotFound)

	_, _, err = run(t, "row", file, "one")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid index")

	_, _, err = run(t, "row", file+".missing", "0")
	assert.ErrorIs(t, err, store.ErrFileUnavailable)

	_, _, err = run(t, "row", file)
	assert.Error(t, err)
}

func TestFindCommand(t *testing.T) {
	stdout, _, err := run(t, "find", contactsFile(t), "email", "bob@chicago.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Row 1 (offset")

	sensors := sensorsFile(t)

	// first match wins
	stdout, _, err = run(t, "find", "--", sensors, "delta", "-5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "boiler")
	assert.NotContains(t, stdout, "valve")

	stdout, _, err = run(t, "find", "--", sensors, "reading", "-0.250000")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pump")

	_, _, err = run(t, "find", sensors, "reading", "3.14")
	assert.ErrorIs(t, err, store.ErrRowNotFound)

	_, _, err = run(t, "find", sensors, "Reading", "3.140000")
	assert.ErrorIs(t, err, store.ErrColumnNotFound)
}

func TestColumnCommand(t *testing.T) {
	file := contactsFile(t)

	stdout, _, err := run(t, "column", file, "email")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "email", lines[0])
	assert.Equal(t, "  1  ann@x.com", lines[1])
	assert.Equal(t, "  3  cid@y.com", lines[3])

	stdout, _, err = run(t, "column", file, "id", "--limit", "2")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "  3  ")

	stdout, _, err = run(t, "--format", "json", "column", file, "email")
	require.NoError(t, err)
	var listing api.ColumnValuesResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &listing))
	require.Len(t, listing.Values, 3)
	assert.Equal(t, api.ColumnValueResponse{Index: 0, Value: "ann@x.com"}, listing.Values[0])
	assert.Contains(t, stdout, `"index": 2`)

	_, _, err = run(t, "column", file, "phone")
	assert.ErrorIs(t, err, store.ErrColumnNotFound)
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := run(t, "schema", sensorsFile(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version: v1.1")
	assert.Contains(t, stdout, "Columns: 6")
	assert.Contains(t, stdout, " B)")
	assert.Contains(t, stdout, "Float64")
	assert.Contains(t, stdout, "reading")

	broken := testutil.WriteFile(t, "broken.mdb", []byte{0x11, 0x00})
	_, _, err = run(t, "schema", broken)
	assert.ErrorIs(t, err, store.ErrFormat)
}

func TestDumpCommand(t *testing.T) {
	file := testutil.WriteFile(t, "abc.mdb", []byte("abc\x00"))

	stdout, _, err := run(t, "dump", file, "--width", "4")
	require.NoError(t, err)
	assert.Equal(t, "61 62 63 00  | abc.\n", stdout)

	_, _, err = run(t, "dump", file+".missing")
	assert.ErrorIs(t, err, store.ErrFileUnavailable)
}
