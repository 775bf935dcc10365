package article

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rbodarve/old-books/app/echoServer/jwtx"
	articlesvc "github.com/rbodarve/old-books/service/article"
)

type Controller struct {
	Svc articlesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateArticleReq struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
}

type UpdateArticleReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// GET /api/articles
func (ct *Controller) List(c echo.Context) error {
	rows, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("article list error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/articles/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid article ID")
	}

	a, err := ct.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if articlesvc.Code(err) == articlesvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		ct.Log.Error("article detail error", "err", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, a)
}

// POST /api/articles  (manager or admin)
func (ct *Controller) Create(c echo.Context) error {
	var req CreateArticleReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content required")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content required")
	}

	a, err := ct.Svc.Create(c.Request().Context(), articlesvc.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}, jwtx.CurrentUser(c))
	if err != nil {
		if articlesvc.Code(err) == articlesvc.ErrBadInput {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		ct.Log.Error("article create error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Article created successfully",
		"article": a,
	})
}

// PUT /api/articles/:id  (admin)
func (ct *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid article ID")
	}

	var req UpdateArticleReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	a, err := ct.Svc.Update(c.Request().Context(), id, articlesvc.UpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		switch articlesvc.Code(err) {
		case articlesvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case articlesvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		default:
			ct.Log.Error("article update error", "err", err, "id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Article updated successfully",
		"article": a,
	})
}

// DELETE /api/articles/:id  (admin)
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid article ID")
	}

	if err := ct.Svc.Delete(c.Request().Context(), id); err != nil {
		if articlesvc.Code(err) == articlesvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		ct.Log.Error("article delete error", "err", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Article deleted successfully"})
}
