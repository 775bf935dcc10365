// app/echoServer/authz.go
package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/rbodarve/old-books/app/echoServer/jwtx"
	"github.com/rbodarve/old-books/model"
	userrepo "github.com/rbodarve/old-books/repository/user"
	jwtutil "github.com/rbodarve/old-books/util/jwt"
)

// TokenAuth verifies the bearer token through util/jwt. Every failure
// mode, including a missing header, answers 401 rather than echo-jwt's
// default 400.
func TokenAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtutil.ParseAuth(auth, secret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		},
	})
}

// AttachUser resolves the token subject against storage, so a deleted
// account stops working even while its token is still within its TTL.
func AttachUser(ur userrepo.Repo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			id, err := jwtutil.SubjectID(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			u, err := ur.ByID(c.Request().Context(), id)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}
			if u == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			jwtx.Set(c, u)
			return next(c)
		}
	}
}

// RequireRole gates a route to the listed roles. Runs after AttachUser.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := jwtx.CurrentUser(c)
			if u == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if !allowed[u.Role] {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Insufficient permissions.")
			}
			return next(c)
		}
	}
}
