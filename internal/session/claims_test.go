package session

import (
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func signedToken(t *testing.T, userID, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     time.Now().Unix(),
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("any-key"))
	require.NoError(t, err)
	return signed
}

func TestDecodeClaims(t *testing.T) {
	token := signedToken(t, "stf_1001", domain.RoleAdmin, time.Now().Add(time.Hour))

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "stf_1001", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.False(t, claims.Expired())
}

func TestDecodeClaims_ExpiredStillDecodes(t *testing.T) {
	// Decoding is display-only: an expired token must still yield claims,
	// since admission never depends on expiry client-side.
	token := signedToken(t, "stf_1001", domain.RoleFloor, time.Now().Add(-time.Hour))

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.True(t, claims.Expired())
}

func TestDecodeClaims_Malformed(t *testing.T) {
	_, err := DecodeClaims("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}
