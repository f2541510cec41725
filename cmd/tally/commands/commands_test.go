// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/db"
	"github.com/ltungv/poll/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeBallots(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ballots.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileCommand(t *testing.T) {
	path := writeBallots(t, `[
		["bob", "bill", "sue"],
		["sue", "bob", "bill"],
		["bill", "sue", "bob"],
		["bob", "bill", "sue"],
		["sue", "bob", "bill"]
	]`)

	out, err := run(t, "file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Ballots: 5")
	assert.Contains(t, out, "1st round")
	assert.Contains(t, out, "eliminated: bill")
	assert.Contains(t, out, "2nd round")
	assert.Contains(t, out, "Winner: sue (sue)")
}

func TestFileCommandOutcomes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", `[]`, "No winner"},
		{"tie", `[["a"], ["b"]]`, "Tied: a, b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "file", writeBallots(t, tt.body))
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFileCommandErrors(t *testing.T) {
	_, err := run(t, "file", writeBallots(t, `{"not": "ballots"}`))
	assert.Error(t, err)

	_, err = run(t, "file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "file")
	assert.Error(t, err)
}

func TestAdminKeyCommand(t *testing.T) {
	t.Setenv("ADMIN_KEY_SALT", "")

	out, err := run(t, "admin-key", "--admin-salt", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, auth.GenerateAdminKey(auth.AdminScope, "s3cret")+"\n", out)

	_, err = run(t, "admin-key")
	assert.Error(t, err)
}

func TestResultCommandMemory(t *testing.T) {
	out, err := run(t, "result", "-t", "memory", "--admin-salt", "s")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered: 0")
	assert.Contains(t, out, "Ballots: 0")
	assert.Contains(t, out, "No winner")
}

func TestResultCommandCountsRegisteredBallots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poll.db")
	conn, err := db.Open(context.Background(), db.TypeSQLite, path)
	require.NoError(t, err)

	bob := testutil.CreateTestItem(t, conn, "bob")
	sue := testutil.CreateTestItem(t, conn, "sue")
	testutil.CreateTestVoter(t, conn, bob.ID, sue.ID)
	testutil.CreateTestVoter(t, conn, bob.ID)
	testutil.CreateTestBallot(t, conn)
	require.NoError(t, conn.Close())

	out, err := run(t, "result", "-t", "sqlite", "-d", path, "--admin-salt", "s")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered: 3")
	assert.Contains(t, out, "Ballots: 2")
	assert.Contains(t, out, "Winner: bob ("+bob.ID+")")
}

func TestReplaceCommandUnknownBallot(t *testing.T) {
	_, err := run(t, "replace", "not-a-uuid", "-t", "memory", "--admin-salt", "s")
	assert.Error(t, err)
}
