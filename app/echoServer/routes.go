package echoServer

import (
	"github.com/labstack/echo/v4"

	articlectrl "github.com/rbodarve/old-books/app/echoServer/controller/article"
	authctrl "github.com/rbodarve/old-books/app/echoServer/controller/auth"
	blogctrl "github.com/rbodarve/old-books/app/echoServer/controller/blog"
	bookctrl "github.com/rbodarve/old-books/app/echoServer/controller/book"
	commentctrl "github.com/rbodarve/old-books/app/echoServer/controller/comment"
	reviewctrl "github.com/rbodarve/old-books/app/echoServer/controller/review"
	userctrl "github.com/rbodarve/old-books/app/echoServer/controller/user"
	"github.com/rbodarve/old-books/model"
	userrepo "github.com/rbodarve/old-books/repository/user"
)

type C struct {
	Auth    *authctrl.Controller
	Book    *bookctrl.Controller
	Article *articlectrl.Controller
	Blog    *blogctrl.Controller
	Comment *commentctrl.Controller
	Review  *reviewctrl.Controller
	User    *userctrl.Controller

	Users     userrepo.Repo
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	pub.GET("/books", c.Book.List)
	pub.GET("/books/:id", c.Book.Detail)

	pub.GET("/articles", c.Article.List)
	pub.GET("/articles/:id", c.Article.Detail)

	pub.GET("/blog", c.Blog.List)
	pub.GET("/blog/:id", c.Blog.Detail)

	pub.GET("/comments/:contentType/:contentId", c.Comment.ListByTarget)
	pub.GET("/comments/:postId", c.Comment.ListByPostID)

	pub.GET("/reviews/book/:bookId", c.Review.ListByBook)
	pub.GET("/reviews/book/:bookId/stats", c.Review.Stats)

	// Authenticated
	authed := e.Group("/api", TokenAuth(c.JWTSecret), AttachUser(c.Users))
	authed.POST("/comments", c.Comment.Create)
	authed.DELETE("/comments/:commentId", c.Comment.Delete)
	authed.POST("/reviews", c.Review.Create)
	authed.DELETE("/reviews/:reviewId", c.Review.Delete)

	// Manager or admin
	mod := e.Group("/api", TokenAuth(c.JWTSecret), AttachUser(c.Users),
		RequireRole(model.RoleManager, model.RoleAdmin))
	mod.POST("/articles", c.Article.Create)
	mod.POST("/blog", c.Blog.Create)
	mod.PUT("/comments/:commentId/warning", c.Comment.AddWarning)
	mod.PUT("/comments/:contentType/:contentId/toggle-disable", c.Comment.ToggleDisabled)
	mod.PUT("/reviews/:reviewId/warning", c.Review.AddWarning)
	mod.PUT("/reviews/:bookId/toggle-disable", c.Review.ToggleDisabled)

	// Admin only
	admin := e.Group("/api", TokenAuth(c.JWTSecret), AttachUser(c.Users),
		RequireRole(model.RoleAdmin))
	admin.POST("/books", c.Book.Create)
	admin.PUT("/books/:id", c.Book.Update)
	admin.DELETE("/books/:id", c.Book.Delete)
	admin.PUT("/articles/:id", c.Article.Update)
	admin.DELETE("/articles/:id", c.Article.Delete)
	admin.GET("/comments", c.Comment.ListAll)
	admin.GET("/users", c.User.List)
}
