// Package middleware はBearerトークン認証用のGinミドルウェアを提供します。
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/feature/auth/transport/http/dto"
	"journal_backend/internal/feature/auth/usecase"
	"journal_backend/internal/platform/jwks"
)

// ContextAuthToken is the gin context key the authenticated token is stored under.
const ContextAuthToken = "authToken"

// TokenVerifier は署名付きトークンの検証を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwks）ではなくコンシューマー（middleware）が定義します。
type TokenVerifier interface {
	// Verify は署名と有効期限を検証し、デコード済みクレームを返します。
	Verify(ctx context.Context, token string) (*jwks.Claims, error)
}

// Authorizer は検証済みクレームから認証済みユーザーへの解決を抽象化します。
type Authorizer interface {
	// Authorize はクレームのsubjectに対応するユーザーを読み込みます。
	Authorize(ctx context.Context, claims *jwks.Claims) (*entity.AuthToken, error)
}

// RequireAuth returns a Gin middleware that verifies the bearer token and
// loads the corresponding user before the handler runs. The resulting
// AuthToken is stored in the request context for FromContext.
func RequireAuth(verifier TokenVerifier, authorizer Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Details: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := verifier.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			slog.Warn("token verification failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Details: verifyFailureDetails(err)})
			return
		}

		token, err := authorizer.Authorize(c.Request.Context(), claims)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				slog.Warn("authorization failed: unknown subject", "sub", claims.Subject, "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Details: "user not found"})
				return
			}
			slog.Error("authorization failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
			return
		}

		c.Set(ContextAuthToken, token)
		c.Next()
	}
}

// verifyFailureDetails maps the verification taxonomy to client-facing
// messages. Internal error detail never reaches the response body.
func verifyFailureDetails(err error) string {
	switch {
	case errors.Is(err, jwks.ErrUnknownKey):
		return "JWK public key not found"
	case errors.Is(err, jwks.ErrTokenExpired):
		return "Session expired"
	default:
		return "JWK invalid"
	}
}

// FromContext は認証ミドルウェアが格納したAuthTokenを取り出します。
func FromContext(c *gin.Context) (*entity.AuthToken, bool) {
	v, ok := c.Get(ContextAuthToken)
	if !ok {
		return nil, false
	}
	token, ok := v.(*entity.AuthToken)
	return token, ok
}
