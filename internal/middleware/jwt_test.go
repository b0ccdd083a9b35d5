package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/authd/internal/pkg/jwt"
)

var testSecret = []byte("test-secret")

func runJWTAuth(t *testing.T, authorization string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/api/profile", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	JWTAuth(testSecret)(c)
	return c, recorder
}

func TestJWTAuthMissingHeader(t *testing.T) {
	c, recorder := runJWTAuth(t, "")
	require.True(t, c.IsAborted())
	require.Equal(t, 401, recorder.Code)
}

func TestJWTAuthBadScheme(t *testing.T) {
	c, recorder := runJWTAuth(t, "Basic dXNlcjpwYXNz")
	require.True(t, c.IsAborted())
	require.Equal(t, 401, recorder.Code)
}

func TestJWTAuthForgedToken(t *testing.T) {
	token, err := jwt.GenerateToken(42, []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	c, recorder := runJWTAuth(t, "Bearer "+token)
	require.True(t, c.IsAborted())
	require.Equal(t, 401, recorder.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	token, err := jwt.GenerateToken(42, testSecret, time.Hour)
	require.NoError(t, err)

	c, _ := runJWTAuth(t, "Bearer "+token)
	require.False(t, c.IsAborted())
	value, ok := c.Get(ContextUserIDKey)
	require.True(t, ok)
	require.Equal(t, int64(42), value)
}
