package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vn-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error)
}

// JWTVerifier verifies HMAC-signed access tokens.
type JWTVerifier struct {
	jwtSecret []byte
	logger    *zap.Logger
}

var _ TokenVerifier = (*JWTVerifier)(nil)

// NewJWTVerifier создает верификатор. Пустой секрет считается ошибкой конфигурации.
func NewJWTVerifier(jwtSecret string, logger *zap.Logger) (*JWTVerifier, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JWTVerifier{
		jwtSecret: []byte(jwtSecret),
		logger:    logger.Named("JWTVerifier"),
	}, nil
}

// VerifyToken validates the signature and expiry and requires an account id subject.
func (v *JWTVerifier) VerifyToken(_ context.Context, tokenString string) (*models.Claims, error) {
	log := v.logger.With(zap.String("tokenSnippet", tokenSnippet(tokenString)))
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Только HMAC, токены с другим alg отклоняются
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			log.Warn("Unexpected signing method", zap.Any("alg", token.Header["alg"]))
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.jwtSecret, nil
	})
	if err != nil {
		log.Warn("Failed to parse or verify token", zap.Error(err))
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, models.ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	// sub должен быть UUID аккаунта
	if _, err := claims.AccountID(); err != nil {
		log.Warn("Token subject is not an account id", zap.String("sub", claims.Subject))
		return nil, err
	}
	return claims, nil
}

// tokenSnippet возвращает начало токена для логов. Токен целиком не логируется.
func tokenSnippet(tokenString string) string {
	const limit = 15
	if len(tokenString) > limit {
		return tokenString[:limit] + "..."
	}
	return tokenString
}

// GinAuth rejects requests without a valid bearer token and stores the account id
// on both the gin context and the request context.
func GinAuth(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.With(zap.String("path", c.Request.URL.Path))

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Authorization header missing")
			abortUnauthorized(c, "Unauthorized: Missing token")
			return
		}
		// Ожидаем "Bearer <token>", схема без учета регистра
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			log.Warn("Malformed Authorization header")
			abortUnauthorized(c, "Unauthorized: Malformed token header")
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			switch {
			case errors.Is(err, models.ErrTokenExpired):
				abortUnauthorized(c, "Unauthorized: Token expired")
			case errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrTokenInvalid):
				abortUnauthorized(c, "Unauthorized: Invalid token")
			default:
				log.Error("Unexpected token verification error", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error during token verification"})
			}
			return
		}

		accountID, err := claims.AccountID()
		if err != nil {
			abortUnauthorized(c, "Unauthorized: Invalid token")
			return
		}

		// Кладем ID и в gin-контекст для обработчиков, и в context.Context для сервисов
		c.Set(models.AccountIDGinKey, accountID)
		c.Request = c.Request.WithContext(models.WithAccountID(c.Request.Context(), accountID))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
}
