package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "taskio", "session.json"))
}

func TestStore_RoundTrip(t *testing.T) {
	s := newStore(t)

	_, err := s.Load()
	require.ErrorIs(t, err, ErrNoSession)

	want := &Session{UserID: "u1", Email: "a@b.c", AccessToken: "at", RefreshToken: "rt"}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(s.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestStore_UpdateTokensKeepsIdentity(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(&Session{UserID: "u1", Email: "a@b.c", AccessToken: "old", RefreshToken: "old-r"}))

	require.NoError(t, s.UpdateTokens("new", "new-r"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "new", got.AccessToken)
	assert.Equal(t, "new-r", got.RefreshToken)
}

func TestStore_Clear(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Clear(), "clearing a missing session is fine")

	require.NoError(t, s.Save(&Session{AccessToken: "at"}))
	require.NoError(t, s.Clear())

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_CorruptFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, err := s.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
