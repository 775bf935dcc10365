package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	jwtutil "github.com/rbodarve/old-books/util/jwt"
)

const secret = "test-secret"

func TestIssueAndParse(t *testing.T) {
	tok, err := jwtutil.Issue(secret, 42, "manager")
	require.NoError(t, err)

	claims, err := jwtutil.ParseAuth("Bearer "+tok, secret)
	require.NoError(t, err)
	require.Equal(t, "manager", claims["role"])

	id, err := jwtutil.SubjectID(claims)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestParseAuth_BareToken(t *testing.T) {
	tok, err := jwtutil.Issue(secret, 1, "user")
	require.NoError(t, err)

	_, err = jwtutil.ParseAuth(tok, secret)
	require.NoError(t, err)
}

func TestParseAuth_WrongSecret(t *testing.T) {
	tok, err := jwtutil.Issue(secret, 1, "user")
	require.NoError(t, err)

	_, err = jwtutil.ParseAuth("Bearer "+tok, "other-secret")
	require.Error(t, err)
}

func TestParseAuth_Missing(t *testing.T) {
	_, err := jwtutil.ParseAuth("", secret)
	require.Error(t, err)

	_, err = jwtutil.ParseAuth("Bearer   ", secret)
	require.Error(t, err)
}

func TestSubjectID_Missing(t *testing.T) {
	_, err := jwtutil.SubjectID(map[string]any{"role": "user"})
	require.Error(t, err)
}
