package auth

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/librarian-server/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"))

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	a, err := HashPassword("secret123")
	require.NoError(t, err)
	b, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Limits(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = HashPassword(strings.Repeat("x", maxPasswordLength+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{"", "plain", "$bcrypt$v=1$x$y$z", "$argon2id$v=19$m=1,t=1,p=1$!!$!!"} {
		assert.False(t, VerifyPassword(hash, "anything"), hash)
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	// Second call reads the same key back.
	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrGenerateKey_RejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, keyFileName), []byte("abc"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

func newTestTokenService(t *testing.T, d time.Duration) *TokenService {
	t.Helper()
	key, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	svc, err := NewTokenService(hex.EncodeToString(key), d)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_KeyLength(t *testing.T) {
	_, err := NewTokenService("abcd", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(strings.Repeat("zz", keyLength), time.Hour)
	assert.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	account := &domain.Account{ID: "acct-1", Username: "desk", Role: domain.AccountRoleAdmin}

	token, err := svc.GenerateAccessToken(account)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "acct-1", claims.Subject)
	assert.Equal(t, "desk", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)
	token, err := svc.GenerateAccessToken(&domain.Account{ID: "acct-1"})
	require.NoError(t, err)

	later := time.Now().Add(2 * time.Minute)
	svc.now = func() time.Time { return later }

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignKey(t *testing.T) {
	issuer := newTestTokenService(t, time.Hour)
	other := newTestTokenService(t, time.Hour)

	token, err := issuer.GenerateAccessToken(&domain.Account{ID: "acct-1"})
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)

	_, err = issuer.VerifyAccessToken("not-a-token")
	assert.Error(t, err)
}
