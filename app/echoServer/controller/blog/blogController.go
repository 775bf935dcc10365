package blog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rbodarve/old-books/app/echoServer/jwtx"
	blogsvc "github.com/rbodarve/old-books/service/blog"
)

type Controller struct {
	Svc blogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreatePostReq struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// GET /api/blog
func (ct *Controller) List(c echo.Context) error {
	rows, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("blog list error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/blog/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	p, err := ct.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if blogsvc.Code(err) == blogsvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		ct.Log.Error("blog detail error", "err", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, p)
}

// POST /api/blog  (manager or admin)
func (ct *Controller) Create(c echo.Context) error {
	var req CreatePostReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content are required")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content are required")
	}

	p, err := ct.Svc.Create(c.Request().Context(), req.Title, req.Content, jwtx.CurrentUser(c))
	if err != nil {
		if blogsvc.Code(err) == blogsvc.ErrBadInput {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		ct.Log.Error("blog create error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Blog post created successfully",
		"post":    p,
	})
}
