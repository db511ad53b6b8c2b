package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	domainerr "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/dto"
)

const actorContextKey = "actor"

// AccessClaims is the token payload the identity gateway issues. The
// subject carries the user id.
type AccessClaims struct {
	ProfileID uint64 `json:"profileId"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// AuthRequired verifies the bearer token and attaches the acting user to
// the request context. Token issuance happens elsewhere; this service only
// verifies.
func AuthRequired(secret, issuer string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		claims := &AccessClaims{}
		parserOpts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		}
		if issuer != "" {
			parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
		}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, parserOpts...)
		if err != nil || !token.Valid {
			logger.Warn("Rejected bearer token", map[string]any{
				"path":  c.Request.URL.Path,
				"error": errString(err),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid or expired token",
			})
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil || !entity.IsValidRole(claims.Role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid token claims",
			})
			return
		}

		c.Set(actorContextKey, entity.Actor{
			UserID:    userID,
			ProfileID: claims.ProfileID,
			Role:      entity.Role(claims.Role),
			Name:      claims.Name,
		})

		c.Next()
	}
}

// ActorFromContext returns the authenticated actor attached by AuthRequired
func ActorFromContext(c *gin.Context) (entity.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return entity.Actor{}, false
	}
	actor, ok := value.(entity.Actor)
	return actor, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
