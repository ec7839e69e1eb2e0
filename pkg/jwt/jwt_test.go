package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, "u1", "c1", "produccion-api", 60)
	require.NoError(t, err)

	userID, companyID, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "c1", companyID)
}

func TestParse_Rechazos(t *testing.T) {
	expired, err := Generate(secret, "u1", "c1", "", -1)
	require.NoError(t, err)
	_, _, err = Parse(secret, expired)
	assert.Error(t, err)

	tok, err := Generate(secret, "u1", "c1", "", 60)
	require.NoError(t, err)
	_, _, err = Parse("otro", tok)
	assert.Error(t, err)

	noCompany, err := Generate(secret, "u1", "", "", 60)
	require.NoError(t, err)
	_, _, err = Parse(secret, noCompany)
	assert.Error(t, err)

	_, err = Generate("", "u1", "c1", "", 60)
	assert.Error(t, err)
}
