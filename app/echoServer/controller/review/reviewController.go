package review

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rbodarve/old-books/app/echoServer/jwtx"
	reviewsvc "github.com/rbodarve/old-books/service/review"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateReviewReq struct {
	BookID  int64  `json:"bookId" validate:"required"`
	Rating  int    `json:"rating"`
	Content string `json:"content" validate:"required"`
}

type WarningReq struct {
	Warning string `json:"warning"`
}

// POST /api/reviews  (authenticated)
func (ct *Controller) Create(c echo.Context) error {
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Book ID, rating (1-5), and review content are required.")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Book ID, rating (1-5), and review content are required.")
	}

	rv, err := ct.Svc.Create(c.Request().Context(), req.BookID, req.Rating, req.Content, jwtx.CurrentUser(c))
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case reviewsvc.ErrBookNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		case reviewsvc.ErrDisabled:
			return echo.NewHTTPError(http.StatusForbidden, "Reviews are disabled for this book")
		default:
			ct.Log.Error("review create error", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Review created successfully",
		"review":  rv,
	})
}

// GET /api/reviews/book/:bookId
func (ct *Controller) ListByBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	rows, err := ct.Svc.ListByBook(c.Request().Context(), bookID)
	if err != nil {
		ct.Log.Error("review list error", "err", err, "book_id", bookID)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/reviews/book/:bookId/stats
func (ct *Controller) Stats(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	stats, err := ct.Svc.Stats(c.Request().Context(), bookID)
	if err != nil {
		ct.Log.Error("review stats error", "err", err, "book_id", bookID)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, stats)
}

// DELETE /api/reviews/:reviewId  (owner, manager or admin)
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}

	if err := ct.Svc.Delete(c.Request().Context(), id, jwtx.CurrentUser(c)); err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		case reviewsvc.ErrForbidden:
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this review")
		default:
			ct.Log.Error("review delete error", "err", err, "id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted successfully"})
}

// PUT /api/reviews/:reviewId/warning  (manager or admin)
func (ct *Controller) AddWarning(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}

	var req WarningReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Warning message is required")
	}

	rv, err := ct.Svc.AddWarning(c.Request().Context(), id, req.Warning, jwtx.CurrentUser(c))
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, "Warning message is required")
		case reviewsvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		default:
			ct.Log.Error("review warning error", "err", err, "id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Warning added to review",
		"review":  rv,
	})
}

// PUT /api/reviews/:bookId/toggle-disable  (manager or admin)
func (ct *Controller) ToggleDisabled(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	out, err := ct.Svc.ToggleDisabled(c.Request().Context(), bookID)
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		default:
			ct.Log.Error("review toggle error", "err", err, "book_id", bookID)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	verb := "enabled"
	if out.Disabled {
		verb = "disabled"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":         "Reviews " + verb + " for this book",
		"reviewsDisabled": out.Disabled,
	})
}
