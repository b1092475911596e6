package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// AccountResolver looks up the account behind a token subject.
type AccountResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*user.Ref, error)
}

// JWTAuthMiddleware accepts "Authorization: Bearer <token>" signed with HS256
// and stores the token subject under ContextUserID. With a non-nil accounts,
// tokens of unknown or deactivated users are refused before they expire.
func JWTAuthMiddleware(secret []byte, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "code": "UNAUTHORIZED"})
			return
		}

		claims := &jwt.StandardClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "code": "UNAUTHORIZED"})
			return
		}

		if accounts != nil {
			id, err := uuid.FromString(claims.Subject)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "code": "UNAUTHORIZED"})
				return
			}
			ref, err := accounts.Resolve(c.Request.Context(), id)
			switch {
			case errors.Is(err, apperr.ErrNotFound), err == nil && !ref.Active:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is not active", "code": "UNAUTHORIZED"})
				return
			case err != nil:
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": apperr.CodeOf(err)})
				return
			}
		}

		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}
