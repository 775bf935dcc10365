package comment

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rbodarve/old-books/app/echoServer/jwtx"
	"github.com/rbodarve/old-books/model"
	commentsvc "github.com/rbodarve/old-books/service/comment"
)

type Controller struct {
	Svc commentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateCommentReq struct {
	ContentType string `json:"contentType" validate:"required"`
	ContentID   int64  `json:"contentId" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

type WarningReq struct {
	Warning string `json:"warning"`
}

// GET /api/comments  (admin)
func (ct *Controller) ListAll(c echo.Context) error {
	rows, err := ct.Svc.ListAll(c.Request().Context())
	if err != nil {
		ct.Log.Error("comment list-all error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/comments/:contentType/:contentId
func (ct *Controller) ListByTarget(c echo.Context) error {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil || contentID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid content ID")
	}

	rows, err := ct.Svc.List(c.Request().Context(), model.ContentType(c.Param("contentType")), contentID)
	if err != nil {
		if commentsvc.Code(err) == commentsvc.ErrInvalidContentType {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid content type")
		}
		ct.Log.Error("comment list error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/comments/:postId
//
// Predates the contentType/contentId pair; matches on content id alone.
func (ct *Controller) ListByPostID(c echo.Context) error {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || postID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	rows, err := ct.Svc.ListByContentID(c.Request().Context(), postID)
	if err != nil {
		ct.Log.Error("comment legacy list error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /api/comments  (authenticated)
func (ct *Controller) Create(c echo.Context) error {
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Content and contentId are required")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Content and contentId are required")
	}

	cm, err := ct.Svc.Create(c.Request().Context(),
		model.ContentType(req.ContentType), req.ContentID, req.Content, jwtx.CurrentUser(c))
	if err != nil {
		switch commentsvc.Code(err) {
		case commentsvc.ErrInvalidContentType:
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid content type")
		case commentsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case commentsvc.ErrTargetNotFound:
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case commentsvc.ErrDisabled:
			return echo.NewHTTPError(http.StatusForbidden, "Comments are disabled for this content")
		default:
			ct.Log.Error("comment create error", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusCreated, cm)
}

// DELETE /api/comments/:commentId  (owner, manager or admin)
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if err := ct.Svc.Delete(c.Request().Context(), id, jwtx.CurrentUser(c)); err != nil {
		switch commentsvc.Code(err) {
		case commentsvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		case commentsvc.ErrForbidden:
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this comment")
		default:
			ct.Log.Error("comment delete error", "err", err, "id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}

// PUT /api/comments/:commentId/warning  (manager or admin)
func (ct *Controller) AddWarning(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req WarningReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Warning message is required")
	}

	cm, err := ct.Svc.AddWarning(c.Request().Context(), id, req.Warning, jwtx.CurrentUser(c))
	if err != nil {
		switch commentsvc.Code(err) {
		case commentsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, "Warning message is required")
		case commentsvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		default:
			ct.Log.Error("comment warning error", "err", err, "id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Warning added to comment",
		"comment": cm,
	})
}

// PUT /api/comments/:contentType/:contentId/toggle-disable  (manager or admin)
func (ct *Controller) ToggleDisabled(c echo.Context) error {
	contentID, err := strconv.ParseInt(c.Param("contentId"), 10, 64)
	if err != nil || contentID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid content ID")
	}

	out, err := ct.Svc.ToggleDisabled(c.Request().Context(), model.ContentType(c.Param("contentType")), contentID)
	if err != nil {
		switch commentsvc.Code(err) {
		case commentsvc.ErrInvalidContentType:
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid content type")
		case commentsvc.ErrTargetNotFound:
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			ct.Log.Error("comment toggle error", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	verb := "enabled"
	if out.Disabled {
		verb = "disabled"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":          fmt.Sprintf("Comments %s for %s", verb, out.ContentType),
		"commentsDisabled": out.Disabled,
	})
}
