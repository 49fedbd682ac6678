package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ftl/internal/core/domain/model/account"
	"ftl/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const userKey = "ftl.user"

// UserLookup resolves the owner of an API token digest.
type UserLookup interface {
	GetByTokenDigest(ctx context.Context, digest string) (*account.User, error)
}

// publicPaths are served without a token.
var publicPaths = []string{"/health", "/metrics", "/docs"}

// tokenAuth accepts "Authorization: Token <token>" and stores the owning user
// in the echo context.
func tokenAuth(users UserLookup) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(ctx echo.Context) bool {
			path := ctx.Request().URL.Path
			for _, public := range publicPaths {
				if path == public || strings.HasPrefix(path, public+"/") {
					return true
				}
			}
			return false
		},
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Token",
		Validator: func(token string, ctx echo.Context) (bool, error) {
			user, err := users.GetByTokenDigest(ctx.Request().Context(), account.DigestToken(token))
			if errors.Is(err, errs.ErrObjectNotFound) {
				return false, nil
			}
			if err != nil {
				return false, lookupError{err}
			}
			ctx.Set(userKey, user)
			return true, nil
		},
		ErrorHandler: func(err error, _ echo.Context) error {
			var lookup lookupError
			if errors.As(err, &lookup) {
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot verify token").SetInternal(lookup.err)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token").SetInternal(err)
		},
	})
}

// lookupError marks a store failure while resolving a token, as opposed to an
// unknown token.
type lookupError struct {
	err error
}

func (e lookupError) Error() string { return e.err.Error() }

// currentUser returns the user stored by tokenAuth.
func currentUser(ctx echo.Context) (*account.User, error) {
	user, ok := ctx.Get(userKey).(*account.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}
	return user, nil
}

// requireAdmin refuses non-admin callers with 403.
func requireAdmin(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
	}
	return nil
}
