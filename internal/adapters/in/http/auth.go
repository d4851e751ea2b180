package http

import (
	"net/http"
	"strings"
	"time"

	"refill/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// actorContextKey is the echo context key the authenticated actor is stored
// under.
const actorContextKey = "actor"

// Claims carries the authenticated caller's identity and role.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 token for the actor. Used by the
// identity boundary and by tests.
func GenerateToken(secret []byte, actor kernel.Actor, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: actor.ID().String(),
		Role:   actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "refill",
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// AuthMiddleware validates the bearer token and stores the resulting actor in
// the request context. Requests without a valid token are rejected with 401.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return c.JSON(http.StatusUnauthorized, errorBody("missing bearer token"))
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token"))
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token claims"))
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// actorFromClaims rebuilds the domain actor from verified token claims.
func actorFromClaims(claims *Claims) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return kernel.Actor{}, err
	}

	role, err := kernel.RoleFromString(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(id, role)
}

// currentActor returns the actor placed in the context by AuthMiddleware.
func currentActor(c echo.Context) (kernel.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}
