package mailer

import (
	"testing"

	"news-backend/app/server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBodyRegisterConfirm(t *testing.T) {
	subject, body, err := buildBody(models.TokenTypeRegisterConfirm, "alice", "https://news.example.com", "rawtoken123")
	require.NoError(t, err)

	assert.Equal(t, "Confirm your registration", subject)
	assert.Contains(t, body, "Hello alice")
	assert.Contains(t, body, "https://news.example.com/register/confirm/rawtoken123")
}

func TestBuildBodyPasswordReset(t *testing.T) {
	subject, body, err := buildBody(models.TokenTypePasswordReset, "alice", "https://news.example.com", "rawtoken123")
	require.NoError(t, err)

	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, body, "https://news.example.com/password/reset/rawtoken123")
}

func TestBuildBodyUnknownKind(t *testing.T) {
	_, _, err := buildBody("newsletter", "alice", "https://news.example.com", "rawtoken123")
	assert.Error(t, err)
}
