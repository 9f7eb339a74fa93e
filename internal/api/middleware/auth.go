package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// Auth validates the bearer token and injects the claims into context.
// Claims are trusted as-is until expiry; role changes take effect at the
// next login, not mid-token.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := bearerClaims(c, jwtSecret)
			if err != nil {
				return err
			}
			if claims == nil {
				return domain.ErrMissingToken
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth injects claims when a bearer token is present and valid, and
// lets anonymous requests through untouched. A present-but-invalid token is
// still rejected so a client never silently degrades to anonymous.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := bearerClaims(c, jwtSecret)
			if err != nil {
				return err
			}
			if claims != nil {
				setClaims(c, claims)
			}
			return next(c)
		}
	}
}

// bearerClaims parses the Authorization header. Returns (nil, nil) when the
// header is absent.
func bearerClaims(c echo.Context, jwtSecret string) (*ports.Claims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, domain.ErrInvalidToken
	}

	claims := &ports.Claims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func setClaims(c echo.Context, claims *ports.Claims) {
	c.Set("user_id", claims.Subject)
	c.Set("role", claims.Role)
	c.Set("email", claims.Email)
	c.Set("username", claims.Username)
}
