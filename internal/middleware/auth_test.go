package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cms-backend/internal/models"
	"cms-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResolver struct {
	user     *models.User
	err      error
	gotToken string
}

func (s *fakeResolver) Register(_ context.Context, _, _ string) (*models.User, error) {
	panic("not used")
}

func (s *fakeResolver) Login(_ context.Context, _, _ string) (string, error) {
	panic("not used")
}

func (s *fakeResolver) ResolveToken(_ context.Context, token string) (*models.User, error) {
	s.gotToken = token
	return s.user, s.err
}

func newMiddlewareRouter(svc *fakeResolver) (*gin.Engine, *bool, **models.User) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	reached := false
	var seen *models.User
	router.GET("/protected", AuthMiddleware(svc, zap.NewNop()), func(c *gin.Context) {
		reached = true
		seen = c.MustGet(UserKey).(*models.User)
		c.JSON(http.StatusOK, gin.H{})
	})
	return router, &reached, &seen
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	router, reached, _ := newMiddlewareRouter(&fakeResolver{})

	w := get(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.False(t, *reached)
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	router, reached, _ := newMiddlewareRouter(&fakeResolver{})

	w := get(router, "Basic dXNlcjpwdw==")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	// Every token failure mode gets the same generic response.
	for _, err := range []error{
		service.ErrTokenExpired,
		service.ErrTokenMalformed,
		service.ErrInvalidSignature,
		service.ErrMissingNameClaim,
		service.ErrUserNotFound,
	} {
		router, reached, _ := newMiddlewareRouter(&fakeResolver{err: err})

		w := get(router, "Bearer some.token")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Could not validate credentials")
		assert.False(t, *reached)
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	svc := &fakeResolver{user: &models.User{ID: 1, Name: "bob"}}
	router, reached, seen := newMiddlewareRouter(svc)

	w := get(router, "Bearer some.token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "some.token", svc.gotToken)
	assert.True(t, *reached)
	require.NotNil(t, *seen)
	assert.Equal(t, "bob", (*seen).Name)
}
