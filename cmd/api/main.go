package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"memories/cmd/app"
	"memories/internal/config"
	handlers "memories/internal/handler"
	"memories/internal/logger"
	"memories/internal/middleware"
)

func main() {
	// setting up config
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	logger.Init(cfg)

	application := app.NewApp(cfg)
	defer application.Close()

	handler := handlers.NewHandlers(application.Services, cfg)

	var limiter *middleware.RateLimiter
	if application.Redis != nil {
		limiter = middleware.NewRateLimiter(application.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	router := setupRouter(handler, limiter)

	handlerChain := middleware.Chain(
		router,
		middleware.Authenticate(application.Services.Token),
		middleware.CORSMiddleware(cfg.CORSOrigin),
		middleware.LoggingMiddleware,
		chimw.Recoverer,
		middleware.TrustedProxyHeaders(cfg.TrustProxy),
		chimw.RequestID,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":        srv.Addr,
			"environment": cfg.Environment,
		}).Info("Server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}

func setupRouter(h *handlers.Handlers, limiter *middleware.RateLimiter) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.InstrumentHandler)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Ready).Methods(http.MethodGet)
	router.HandleFunc("/health/live", h.Live).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	user := router.PathPrefix("/user").Subrouter()
	user.HandleFunc("/signin", h.Signin).Methods(http.MethodPost)
	user.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	user.HandleFunc("/google", h.GoogleSignIn).Methods(http.MethodPost)

	posts := router.PathPrefix("/posts").Subrouter()
	if limiter != nil {
		posts.Use(limiter.Middleware)
	}
	posts.HandleFunc("", h.GetPosts).Methods(http.MethodGet)
	posts.HandleFunc("", h.CreatePost).Methods(http.MethodPost)
	posts.HandleFunc("/search", h.GetPostsBySearch).Methods(http.MethodGet)
	posts.HandleFunc("/creator", h.GetPostsByCreator).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", h.GetPost).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", h.UpdatePost).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}", h.DeletePost).Methods(http.MethodDelete)
	posts.HandleFunc("/{id}/likePost", h.LikePost).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}/commentPost", h.CommentPost).Methods(http.MethodPost)
	posts.HandleFunc("/{id}/comments/{commentId}", h.EditComment).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}/comments/{commentId}", h.DeleteComment).Methods(http.MethodDelete)
	posts.HandleFunc("/{id}/comments/{commentId}/replies", h.AddReply).Methods(http.MethodPost)
	posts.HandleFunc("/{id}/comments/{commentId}/replies/{replyId}", h.EditReply).Methods(http.MethodPatch)
	posts.HandleFunc("/{id}/comments/{commentId}/replies/{replyId}", h.DeleteReply).Methods(http.MethodDelete)

	return router
}
