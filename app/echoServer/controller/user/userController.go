package user

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	userrepo "github.com/rbodarve/old-books/repository/user"
)

type Controller struct {
	Repo userrepo.Repo
	Log  *slog.Logger
}

// UserRow mirrors the stored record, password hash included. The admin
// console consumes this shape as-is.
type UserRow struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// List all users
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserRow
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/users [get]
func (ct *Controller) List(c echo.Context) error {
	users, err := ct.Repo.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("user list error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]UserRow, 0, len(users))
	for _, u := range users {
		out = append(out, UserRow{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Password:  u.PasswordHash,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
