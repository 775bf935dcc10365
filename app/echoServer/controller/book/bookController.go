package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rbodarve/old-books/app/echoServer/jwtx"
	booksvc "github.com/rbodarve/old-books/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// List books
// @Summary      List books with optional filters
// @Tags         books
// @Produce      json
// @Param        category   query  string  false  "exact category"
// @Param        condition  query  string  false  "exact condition"
// @Param        search     query  string  false  "substring over title/author/isbn"
// @Param        minPrice   query  number  false  "minimum price"
// @Param        maxPrice   query  number  false  "maximum price"
// @Success      200  {array}   model.Book
// @Failure      400  {object}  map[string]any "invalid price range"
// @Router       /api/books [get]
func (ct *Controller) List(c echo.Context) error {
	f := booksvc.Filter{
		Category:  c.QueryParam("category"),
		Condition: c.QueryParam("condition"),
		Search:    c.QueryParam("search"),
		MinPrice:  parsePrice(c.QueryParam("minPrice")),
		MaxPrice:  parsePrice(c.QueryParam("maxPrice")),
	}

	books, err := ct.Svc.List(c.Request().Context(), f)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrBadInput {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		ct.Log.Error("book list error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, books)
}

// parsePrice ignores values that do not parse as numbers, matching the
// filter's lenient treatment of junk query params.
func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Get one book
// @Summary      Book detail
// @Tags         books
// @Produce      json
// @Param        id  path  int  true  "book id"
// @Success      200  {object}  model.Book
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/books/{id} [get]
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	b, err := ct.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		ct.Log.Error("book detail error", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, b)
}

// Create a book
// @Summary      Create book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  CreateBookReq  true  "Book payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "validation or duplicate isbn"
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/books [post]
func (ct *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All required fields must be provided")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All required fields must be provided")
	}

	pubDate, _ := parseDate(req.PublicationDate)
	in := booksvc.CreateInput{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationDate: pubDate,
		Description:     req.Description,
		Category:        req.Category,
		Condition:       req.Condition,
		Price:           req.Price,
		Quantity:        req.Quantity,
		CoverImage:      req.CoverImage,
	}

	b, err := ct.Svc.Create(c.Request().Context(), in, jwtx.CurrentUser(c))
	if err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBadInput, booksvc.ErrDuplicateISBN:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			ct.Log.Error("book create error", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Book created successfully",
		"book":    b,
	})
}

// Update a book
// @Summary      Update book (partial)
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int            true  "book id"
// @Param        payload  body  UpdateBookReq  true  "Fields to change"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/books/{id} [put]
func (ct *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	var req UpdateBookReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := booksvc.UpdateInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CoverImage:  req.CoverImage,
	}
	if t, ok := parseDate(req.PublicationDate); ok {
		in.PublicationDate = &t
	}

	b, err := ct.Svc.Update(c.Request().Context(), id, in)
	if err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case booksvc.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		default:
			ct.Log.Error("book update error", "err", err, "id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Book updated successfully",
		"book":    b,
	})
}

// Delete a book
// @Summary      Delete book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "book id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/books/{id} [delete]
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	if err := ct.Svc.Delete(c.Request().Context(), id); err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		ct.Log.Error("book delete error", "err", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Book deleted successfully"})
}
