// Package main bookstore API.
//
// @title           Old Books API
// @version         1.0
// @description     Bookstore backend (catalog, articles, blog, comments, reviews, users).
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/rbodarve/old-books/app/echoServer"
	articlectrl "github.com/rbodarve/old-books/app/echoServer/controller/article"
	authctrl "github.com/rbodarve/old-books/app/echoServer/controller/auth"
	blogctrl "github.com/rbodarve/old-books/app/echoServer/controller/blog"
	bookctrl "github.com/rbodarve/old-books/app/echoServer/controller/book"
	commentctrl "github.com/rbodarve/old-books/app/echoServer/controller/comment"
	reviewctrl "github.com/rbodarve/old-books/app/echoServer/controller/review"
	userctrl "github.com/rbodarve/old-books/app/echoServer/controller/user"
	"github.com/rbodarve/old-books/app/echoServer/validation"
	"github.com/rbodarve/old-books/config"
	_ "github.com/rbodarve/old-books/docs"
	articlerepo "github.com/rbodarve/old-books/repository/article"
	blogrepo "github.com/rbodarve/old-books/repository/blog"
	bookrepo "github.com/rbodarve/old-books/repository/book"
	commentrepo "github.com/rbodarve/old-books/repository/comment"
	reviewrepo "github.com/rbodarve/old-books/repository/review"
	userrepo "github.com/rbodarve/old-books/repository/user"
	articlesvc "github.com/rbodarve/old-books/service/article"
	authsvc "github.com/rbodarve/old-books/service/auth"
	blogsvc "github.com/rbodarve/old-books/service/blog"
	booksvc "github.com/rbodarve/old-books/service/book"
	commentsvc "github.com/rbodarve/old-books/service/comment"
	reviewsvc "github.com/rbodarve/old-books/service/review"
	"github.com/rbodarve/old-books/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	ar := articlerepo.New(db)
	pr := blogrepo.New(db)
	cr := commentrepo.New(db)
	rr := reviewrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	ars := articlesvc.New(ar)
	ps := blogsvc.New(pr)
	cs := commentsvc.New(db, cr, ar, pr)
	rs := reviewsvc.New(db, rr, br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	articleC := &articlectrl.Controller{Svc: ars, V: v, Log: log}
	blogC := &blogctrl.Controller{Svc: ps, V: v, Log: log}
	commentC := &commentctrl.Controller{Svc: cs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	userC := &userctrl.Controller{Repo: ur, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, cfg.CORSOrigins)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Article: articleC,
		Blog:    blogC,
		Comment: commentC,
		Review:  reviewC,
		User:    userC,

		Users:     ur,
		JWTSecret: cfg.JWTSecret,
	})

	addr := ":" + cfg.Port
	slog.Info("starting server", "addr", addr, "env", cfg.Env, "https", cfg.UseHTTPS)

	if cfg.UseHTTPS {
		e.Logger.Fatal(e.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile))
	}
	e.Logger.Fatal(e.Start(addr))
}
