package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamermajilis/tournaments-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", NewAuthenticator(testSigningKey).VerifyJWT(), func(ctx *gin.Context) {
		userID := ctx.GetUint(ContextKeyUserID)
		ctx.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return router
}

func TestVerifyJWT(t *testing.T) {
	router := newAuthTestRouter()

	token, err := jwthelper.GenerateToken(testSigningKey, 42, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestVerifyJWTRejects(t *testing.T) {
	router := newAuthTestRouter()

	expired, err := jwthelper.GenerateToken(testSigningKey, 42, -time.Hour)
	require.NoError(t, err)

	wrongKey, err := jwthelper.GenerateToken("another-key", 42, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{
			name:   "missing header",
			header: "",
		},
		{
			name:   "not a bearer token",
			header: "Basic abc123",
		},
		{
			name:   "malformed token",
			header: "Bearer not.a.token",
		},
		{
			name:   "expired token",
			header: "Bearer " + expired,
		},
		{
			name:   "wrong signing key",
			header: "Bearer " + wrongKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
