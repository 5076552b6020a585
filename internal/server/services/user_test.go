package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/dmitrijs2005/taskio/internal/server/auth"
	"github.com/dmitrijs2005/taskio/internal/server/config"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *memStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, &fakeRepoManager{store: store}, cfg, logging.Nop{}), store, mock
}

func TestSignup_Validation(t *testing.T) {
	s, _, _ := newUserService(t)

	tests := []struct {
		name                      string
		username, email, password string
	}{
		{name: "missing username", email: "a@b.c", password: "secret1"},
		{name: "missing email", username: "alice", password: "secret1"},
		{name: "missing password", username: "alice", email: "a@b.c"},
		{name: "email without at", username: "alice", email: "alice.example.com", password: "secret1"},
		{name: "short password", username: "alice", email: "a@b.c", password: "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Signup(context.Background(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestSignup_HashesPasswordAndRejectsDuplicates(t *testing.T) {
	s, store, _ := newUserService(t)
	ctx := context.Background()

	u, err := s.Signup(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, []byte("secret1"), store.users[u.ID].PasswordHash)

	_, err = s.Signup(ctx, "alice2", "alice@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	_, err = s.Signup(ctx, "alice", "other@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	u, err := s.Signup(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	pair, err := s.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, pair.UserID)
	assert.NotEmpty(t, pair.RefreshToken)

	uid, err := s.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)

	_, err = s.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_UnknownEmailStillChecksPassword(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	var hashes [][]byte
	orig := checkPassword
	checkPassword = func(hash []byte, password string) (bool, error) {
		hashes = append(hashes, hash)
		return orig(hash, password)
	}
	t.Cleanup(func() { checkPassword = orig })

	_, err := s.Signup(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Len(t, hashes, 1, "bcrypt runs for unknown emails too")
	assert.Equal(t, auth.DummyHash(), hashes[0])

	_, err = s.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Len(t, hashes, 2)
	assert.NotEqual(t, auth.DummyHash(), hashes[1])
}

func TestLogin_StorageErrorIsInternal(t *testing.T) {
	s, store, _ := newUserService(t)
	store.fail["users.GetByEmail"] = errors.New("db error: timeout")

	_, err := s.Login(context.Background(), "a@b.c", "secret1")
	assert.Equal(t, common.ErrorInternal, err)
}

func TestRefreshToken_Rotates(t *testing.T) {
	s, store, mock := newUserService(t)
	ctx := context.Background()

	_, err := s.Signup(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	pair, err := s.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	expectTx(mock, 1)
	next, err := s.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.Equal(t, pair.UserID, next.UserID)

	_, stillThere := store.tokens[pair.RefreshToken]
	assert.False(t, stillThere, "old refresh token must be consumed")

	_, err = s.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Expired(t *testing.T) {
	s, store, _ := newUserService(t)
	store.tokens["old"] = &models.RefreshToken{UserID: "u1", Token: "old", Expires: time.Now().Add(-time.Minute)}

	_, err := s.RefreshToken(context.Background(), "old")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefreshToken_RollbackOnCreateError(t *testing.T) {
	s, store, mock := newUserService(t)
	ctx := context.Background()

	u, err := s.Signup(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	store.tokens["r"] = &models.RefreshToken{UserID: u.ID, Token: "r", Expires: time.Now().Add(time.Hour)}
	store.fail["tokens.Create"] = errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = s.RefreshToken(ctx, "r")
	assert.ErrorIs(t, err, common.ErrorInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfile(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	u, err := s.Signup(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	got, err := s.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Nil(t, got.PasswordHash)

	_, err = s.Profile(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthenticate_Invalid(t *testing.T) {
	s, _, _ := newUserService(t)
	_, err := s.Authenticate("garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestPurgeExpiredTokens(t *testing.T) {
	s, store, _ := newUserService(t)
	now := time.Now()
	store.tokens["a"] = &models.RefreshToken{Token: "a", Expires: now.Add(-time.Hour)}
	store.tokens["b"] = &models.RefreshToken{Token: "b", Expires: now.Add(time.Hour)}

	n, err := s.PurgeExpiredTokens(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, store.tokens, "b")
}
