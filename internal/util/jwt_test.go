package util_test

import (
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-of-sufficient-length"

func testUser() *model.User {
	u := &model.User{
		Name:  "Sanne Jansen",
		Email: "sanne@school.example",
		Role:  model.Teacher,
	}
	u.ID = 42
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := util.GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
	assert.Equal(t, "sanne@school.example", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := util.GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = util.ParseJWT(token, "a-different-secret-also-long-enough")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, err := util.GenerateJWT(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = util.ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := util.ParseJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
