package middleware

import (
	"errors"
	"strings"

	"github.com/Triaksa-Space/cookie-notice/pkg/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

// AccessTokenCookie is read when no Authorization header is sent, so the
// settings page works from a plain browser session.
const AccessTokenCookie = "access_token"

// JWTMiddleware validates an HS256 token and stores the Principal it names.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c)
			if tokenString == "" {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenMissing, "Missing or invalid token")
			}
			if len(strings.Split(tokenString, ".")) != 3 {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenMalformed, "Malformed token")
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return apperrors.NewUnauthorized(apperrors.ErrCodeTokenExpired, "Token expired")
				}
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token claims")
			}
			userID, err := cast.ToInt64E(claims["user_id"])
			if err != nil || userID <= 0 {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token claims")
			}
			// a missing role must not read as the zero role, which is super admin
			rawRole, ok := claims["role_id"]
			if !ok || rawRole == nil {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token claims")
			}
			roleID, err := cast.ToInt64E(rawRole)
			if err != nil {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token claims")
			}

			SetPrincipal(c, Principal{UserID: userID, RoleID: roleID})
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		if !strings.HasPrefix(h, "Bearer ") {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
