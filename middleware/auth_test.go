package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshop/middleware"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, isAdmin bool, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  "u1",
		"isAdmin": isAdmin,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthGuard(testSecret, middleware.AdminOnly))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/api/v1/products", ok)
	r.POST("/api/v1/products", ok)
	r.OPTIONS("/api/v1/products", ok)
	r.DELETE("/api/v1/products/:id", ok)
	r.GET("/api/v1/categories", ok)
	r.POST("/api/v1/categories", ok)
	r.POST("/api/v1/users/login", ok)
	r.GET("/public/uploads/img.png", ok)
	return r
}

func request(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	r := guardedRouter()

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/products", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodOptions, "/api/v1/products", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/categories", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/public/uploads/img.png", "").Code)
	// user-account paths are open for every method
	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/v1/users/login", "").Code)
}

func TestMutatingRoutesRejectMissingToken(t *testing.T) {
	r := guardedRouter()

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/products", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodDelete, "/api/v1/products/abc", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/categories", "").Code)
}

func TestNonAdminTokenIsRevokedOnWrites(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, testSecret, false, time.Now().Add(time.Hour))

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/products", token).Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodDelete, "/api/v1/products/abc", token).Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/categories", token).Code)

	// the same token is fine on every public read route
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/products", token).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/categories", token).Code)
}

func TestAdminTokenPassesWrites(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, testSecret, true, time.Now().Add(time.Hour))

	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/v1/products", token).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodDelete, "/api/v1/products/abc", token).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/v1/categories", token).Code)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, testSecret, true, time.Now().Add(-time.Hour))

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/products", token).Code)
}

func TestWrongSecretIsRejected(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, []byte("other-secret"), true, time.Now().Add(time.Hour))

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/products", token).Code)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	r := guardedRouter()

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/v1/products", "not.a.jwt").Code)
}

func TestAdminOnlyPolicy(t *testing.T) {
	assert.False(t, middleware.AdminOnly(jwt.MapClaims{"isAdmin": true}))
	assert.True(t, middleware.AdminOnly(jwt.MapClaims{"isAdmin": false}))
	assert.True(t, middleware.AdminOnly(jwt.MapClaims{}))
	// a non-boolean claim counts as not admin
	assert.True(t, middleware.AdminOnly(jwt.MapClaims{"isAdmin": "yes"}))
}
