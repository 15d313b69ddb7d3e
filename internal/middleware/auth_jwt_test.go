package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "u1",
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(15 * time.Minute).Unix(),
	}
}

func newProtectedEcho(extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	cfg := config.Config{JWTSecret: testSecret}

	mws := append([]echo.MiddlewareFunc{middleware.AuthJWT(cfg)}, extra...)
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get(middleware.CtxUserIDKey),
			"role":    c.Get(middleware.CtxUserRoleKey),
		})
	}, mws...)
	return e
}

func get(e *echo.Echo, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_ValidToken(t *testing.T) {
	e := newProtectedEcho()
	token := signToken(t, validClaims("USER"), jwt.SigningMethodHS256, testSecret)

	rec := get(e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"u1"`)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	e := newProtectedEcho()
	rec := get(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	e := newProtectedEcho()
	token := signToken(t, validClaims("USER"), jwt.SigningMethodHS256, testSecret)

	for _, authz := range []string{token, "Basic " + token, "Bearer "} {
		rec := get(e, authz)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "authz=%q", authz)
	}
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	e := newProtectedEcho()
	token := signToken(t, validClaims("USER"), jwt.SigningMethodHS256, "other_secret")

	rec := get(e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	e := newProtectedEcho()
	claims := validClaims("USER")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, claims, jwt.SigningMethodHS256, testSecret)

	rec := get(e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingClaims(t *testing.T) {
	e := newProtectedEcho()

	noSub := validClaims("USER")
	delete(noSub, "sub")
	rec := get(e, "Bearer "+signToken(t, noSub, jwt.SigningMethodHS256, testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	noRole := validClaims("USER")
	delete(noRole, "role")
	rec = get(e, "Bearer "+signToken(t, noRole, jwt.SigningMethodHS256, testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	e := newProtectedEcho(middleware.AdminRoleGuard())

	adminToken := signToken(t, validClaims("ADMIN"), jwt.SigningMethodHS256, testSecret)
	rec := get(e, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	userToken := signToken(t, validClaims("USER"), jwt.SigningMethodHS256, testSecret)
	rec = get(e, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
