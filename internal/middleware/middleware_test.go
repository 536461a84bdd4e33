package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vn-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := models.Claims{
		Name: "도훈",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTVerifier(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("Valid token", func(t *testing.T) {
		claims, err := verifier.VerifyToken(ctx, signToken(t, testSecret, accountID.String(), time.Now().Add(time.Hour)))
		require.NoError(t, err)
		got, err := claims.AccountID()
		require.NoError(t, err)
		assert.Equal(t, accountID, got)
	})

	t.Run("Expired token", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, signToken(t, testSecret, accountID.String(), time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, signToken(t, "other", accountID.String(), time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("Subject is not a uuid", func(t *testing.T) {
		_, err := verifier.VerifyToken(ctx, signToken(t, testSecret, "42", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("Empty secret rejected", func(t *testing.T) {
		_, err := NewJWTVerifier("", nil)
		assert.Error(t, err)
	})
}

func TestGinAuth(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)
	accountID := uuid.New()

	router := gin.New()
	router.GET("/me", GinAuth(verifier, zap.NewNop()), func(c *gin.Context) {
		fromGin, _ := c.Get(models.AccountIDGinKey)
		fromCtx, ok := models.GetAccountIDFromContext(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, fromGin, fromCtx)
		c.String(http.StatusOK, fromCtx.String())
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := do("Bearer " + signToken(t, testSecret, accountID.String(), time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID.String(), rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer abc.def.ghi").Code)

	expired := do("Bearer " + signToken(t, testSecret, accountID.String(), time.Now().Add(-time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, expired.Code)
	assert.Contains(t, expired.Body.String(), "Token expired")
}

func TestGinZapLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := gin.New()
	router.Use(GinZapLogger(zap.New(core)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/scenes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, 0, logs.Len())

	req := httptest.NewRequest(http.MethodGet, "/scenes/missing?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Client error", entry.Message)
	assert.Equal(t, "/scenes/missing?x=1", entry.ContextMap()["path"])
	assert.Equal(t, "req-1", entry.ContextMap()["request_id"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scenes/other", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRateLimit_PerAccount(t *testing.T) {
	store := NewRateLimitStore(nil, time.Minute, 2)
	first, second := uuid.New(), uuid.New()

	router := gin.New()
	router.POST("/saves/:slot",
		func(c *gin.Context) {
			id, _ := uuid.Parse(c.GetHeader("X-Account"))
			c.Set(models.AccountIDGinKey, id)
		},
		RateLimit(store, zap.NewNop()),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	call := func(account uuid.UUID) int {
		req := httptest.NewRequest(http.MethodPost, "/saves/1", nil)
		req.Header.Set("X-Account", account.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call(first))
	assert.Equal(t, http.StatusNoContent, call(first))
	assert.Equal(t, http.StatusTooManyRequests, call(first))
	assert.Equal(t, http.StatusNoContent, call(second))
}
