package authjwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidora/vidora-api/internal/types"
)

func generateKeyPair(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	return privateKey, string(publicPEM)
}

func signToken(t *testing.T, privateKey *ecdsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	signed, err := token.SignedString(privateKey)
	require.NoError(t, err)
	return signed
}

func newTestApp(publicKey string) *fiber.App {
	app := fiber.New()
	app.Use(New(Config{
		PublicKey:   publicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	}))
	app.Get("/protected", func(c *fiber.Ctx) error {
		user := c.Locals(types.UserCtxName).(types.UserContext)
		return c.JSON(fiber.Map{"uid": user.UserID.String(), "username": user.Username})
	})
	return app
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)
	app := newTestApp(publicPEM)

	userID := uuid.Must(uuid.NewV4())
	tokenString := signToken(t, privateKey, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"claim": map[string]interface{}{
			"uid":         userID.String(),
			"username":    "alice@example.com",
			"displayName": "Alice",
		},
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(types.HeaderAuthorization, types.BearerPrefix+tokenString)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	_, publicPEM := generateKeyPair(t)
	app := newTestApp(publicPEM)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)
	app := newTestApp(publicPEM)

	tokenString := signToken(t, privateKey, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
		"claim": map[string]interface{}{
			"uid": uuid.Must(uuid.NewV4()).String(),
		},
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(types.HeaderAuthorization, types.BearerPrefix+tokenString)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsWrongSigningMethod(t *testing.T) {
	_, publicPEM := generateKeyPair(t)
	app := newTestApp(publicPEM)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":   time.Now().Add(time.Hour).Unix(),
		"claim": map[string]interface{}{"uid": uuid.Must(uuid.NewV4()).String()},
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(types.HeaderAuthorization, types.BearerPrefix+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareReadsTokenFromCookie(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)
	app := newTestApp(publicPEM)

	tokenString := signToken(t, privateKey, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"claim": map[string]interface{}{
			"uid": uuid.Must(uuid.NewV4()).String(),
		},
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tokenString})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func newOptionalTestApp(publicKey string) *fiber.App {
	app := fiber.New()
	app.Use(NewOptional(Config{
		PublicKey:   publicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	}))
	app.Get("/public", func(c *fiber.Ctx) error {
		uid := ""
		if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
			uid = user.UserID.String()
		}
		return c.JSON(fiber.Map{"uid": uid})
	})
	return app
}

func optionalUID(t *testing.T, app *fiber.App, req *http.Request) string {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["uid"]
}

func TestOptionalMiddlewarePopulatesUserFromToken(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)
	app := newOptionalTestApp(publicPEM)

	userID := uuid.Must(uuid.NewV4())
	tokenString := signToken(t, privateKey, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"claim": map[string]interface{}{
			"uid":      userID.String(),
			"username": "alice@example.com",
		},
	})

	req := httptest.NewRequest("GET", "/public", nil)
	req.Header.Set(types.HeaderAuthorization, types.BearerPrefix+tokenString)

	assert.Equal(t, userID.String(), optionalUID(t, app, req))
}

func TestOptionalMiddlewareAllowsAnonymous(t *testing.T) {
	_, publicPEM := generateKeyPair(t)
	app := newOptionalTestApp(publicPEM)

	req := httptest.NewRequest("GET", "/public", nil)

	assert.Equal(t, "", optionalUID(t, app, req))
}

func TestOptionalMiddlewareIgnoresInvalidToken(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)
	app := newOptionalTestApp(publicPEM)

	expired := signToken(t, privateKey, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
		"claim": map[string]interface{}{
			"uid": uuid.Must(uuid.NewV4()).String(),
		},
	})

	req := httptest.NewRequest("GET", "/public", nil)
	req.Header.Set(types.HeaderAuthorization, types.BearerPrefix+expired)

	// An expired token degrades to an anonymous request instead of a 401.
	assert.Equal(t, "", optionalUID(t, app, req))
}

func TestValidateToken(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)

	userID := uuid.Must(uuid.NewV4())
	tokenString := signToken(t, privateKey, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"claim": map[string]interface{}{
			"uid":      userID.String(),
			"username": "bob@example.com",
			"role":     types.UserRole,
		},
	})

	userCtx, err := ValidateToken(tokenString, publicPEM, "claim")
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.UserID)
	assert.Equal(t, "bob@example.com", userCtx.Username)
	assert.Equal(t, types.UserRole, userCtx.SystemRole)
}

func TestValidateTokenRejectsMissingUID(t *testing.T) {
	privateKey, publicPEM := generateKeyPair(t)

	tokenString := signToken(t, privateKey, jwt.MapClaims{
		"exp":   time.Now().Add(time.Hour).Unix(),
		"claim": map[string]interface{}{"username": "nobody"},
	})

	_, err := ValidateToken(tokenString, publicPEM, "claim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uid")
}
