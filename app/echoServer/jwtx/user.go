// app/echoServer/jwtx/user.go
package jwtx

import (
	"github.com/labstack/echo/v4"

	"github.com/rbodarve/old-books/model"
)

const userKey = "currentUser"

// Set stores the resolved user on the request context.
func Set(c echo.Context, u *model.User) { c.Set(userKey, u) }

// CurrentUser returns the user the auth middleware attached, or nil for
// unauthenticated requests.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}
