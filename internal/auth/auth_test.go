package auth

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/mediatheque/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(db))
	return db
}

func TestIssueAndParseToken(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	token, err := svc.IssueToken("user-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := NewService([]byte("key-a"), time.Hour).IssueToken("user-1", "alice")
	require.NoError(t, err)

	_, err = NewService([]byte("key-b"), time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	svc := NewService([]byte("test-secret"), -time.Minute)

	token, err := svc.IssueToken("user-1", "alice")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	svc := NewService([]byte("test-secret"), time.Hour)

	_, err := svc.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserStore_CreateAndAuthenticate(t *testing.T) {
	store := NewUserStore(setupTestDB(t))

	u, err := store.Create("alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	got, err := store.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = store.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	store := NewUserStore(setupTestDB(t))

	_, err := store.Create("alice", "s3cret")
	require.NoError(t, err)

	_, err = store.Create("alice", "other")
	assert.True(t, errors.Is(err, ErrDuplicateUser), "err = %v", err)
}

func TestUserStore_Count(t *testing.T) {
	store := NewUserStore(setupTestDB(t))

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = store.Create("alice", "s3cret")
	require.NoError(t, err)

	n, err = store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
