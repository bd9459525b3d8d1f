package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdcasedi/competenceo/internal/models"
)

var testSecret = []byte("test-session-secret")

func TestIssueDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.NewString()

	token, err := Issue(testSecret, userID, models.RoleTeacher, 30*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Decode(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	token, err := Issue(testSecret, uuid.NewString(), models.RoleStudent, -time.Minute)
	require.NoError(t, err)

	claims, err := Decode(token, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Issue(testSecret, uuid.NewString(), models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := Decode(token, []byte("some-other-secret"))
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestDecode_Garbage(t *testing.T) {
	t.Parallel()

	claims, err := Decode("not-a-jwt", testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
