package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGetCmd(t *testing.T) {
	s := testStore(t)

	seq, err := s.AddCmd(`range 0 5 | len`)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	text, err := s.Cmd(seq)
	require.NoError(t, err)
	assert.Equal(t, `range 0 5 | len`, text)

	next, err := s.NextCmdSeq()
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

func TestCmdNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Cmd(42)
	assert.ErrorIs(t, err, ErrNoMatchingCmd)
}

func TestCmdsWithSeq(t *testing.T) {
	s := testStore(t)
	texts := []string{`\ 1`, `\ 2`, `\ 3`, `\ 4`}
	for _, text := range texts {
		_, err := s.AddCmd(text)
		require.NoError(t, err)
	}

	cmds, err := s.CmdsWithSeq(2, 4)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, Cmd{Text: `\ 2`, Seq: 2}, cmds[0])
	assert.Equal(t, Cmd{Text: `\ 3`, Seq: 3}, cmds[1])
}

func TestPrevCmd(t *testing.T) {
	s := testStore(t)
	_, err := s.AddCmd(`\ 1`)
	require.NoError(t, err)
	_, err = s.AddCmd(`\ 2`)
	require.NoError(t, err)

	cmd, err := s.PrevCmd(2)
	require.NoError(t, err)
	assert.Equal(t, Cmd{Text: `\ 1`, Seq: 1}, cmd)

	// Beyond the last entry, the last one is returned.
	cmd, err = s.PrevCmd(100)
	require.NoError(t, err)
	assert.Equal(t, Cmd{Text: `\ 2`, Seq: 2}, cmd)

	empty := testStore(t)
	_, err = empty.PrevCmd(1)
	assert.ErrorIs(t, err, ErrNoMatchingCmd)
}
