package middleware

import (
	"errors"
	"strings"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/model"
	"flowershop-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const actorKey = "actor"

// Auth resolves a bearer token to the calling user. The admin flag is read
// from the store on every request, not from the token, so a revoked role
// takes effect immediately.
func Auth(secret string, userRepo repository.UserRepository) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperror.Unauthenticated("missing authorization header")
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return apperror.Unauthenticated("authorization header must be a bearer token")
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return key, nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				return apperror.Unauthenticated("invalid or expired token")
			}

			user, err := userRepo.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.Unauthenticated("invalid or expired token")
				}
				return apperror.Persistence(err)
			}

			c.Set(actorKey, model.Actor{UserID: user.ID, IsAdmin: user.IsAdmin})
			return next(c)
		}
	}
}

// AdminOnly gates a route to actors with the admin flag. Must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ActorFrom(c).IsAdmin {
				return apperror.Forbidden("admin access required")
			}
			return next(c)
		}
	}
}

// ActorFrom returns the actor set by Auth; zero value on unauthenticated
// routes.
func ActorFrom(c echo.Context) model.Actor {
	actor, _ := c.Get(actorKey).(model.Actor)
	return actor
}
