package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmptyKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestSignAndParse(t *testing.T) {
	j, err := New("test-signature-secret")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	token, err := j.SignToken(&User{ID: 42, Expires: expires})
	require.NoError(t, err)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, expires, user.Expires)
}

func TestParseRejectsExpired(t *testing.T) {
	j, err := New("test-signature-secret")
	require.NoError(t, err)

	token, err := j.SignToken(&User{ID: 42, Expires: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)

	_, err = j.ParseUser(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongKey(t *testing.T) {
	j1, err := New("key-one")
	require.NoError(t, err)
	j2, err := New("key-two")
	require.NoError(t, err)

	token, err := j1.SignToken(&User{ID: 42, Expires: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	_, err = j2.ParseUser(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	j, err := New("test-signature-secret")
	require.NoError(t, err)

	for _, input := range []string{"", "none", "aaa.bbb.ccc"} {
		_, err := j.ParseUser(input)
		assert.Error(t, err)
	}
}
