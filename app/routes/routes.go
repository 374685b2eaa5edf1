package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"vera/app/config"
	"vera/app/controllers"
	"vera/app/middleware"
	"vera/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SetupRoutes defines the board's web pages and JSON API and returns a router.
func SetupRoutes(board controllers.Board, cfg *config.Config, logger *zap.Logger) (*mux.Router, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := views.New(cfg.Board.ExcerptLength)
	if err != nil {
		return nil, err
	}

	postController := controllers.NewPostController(board, renderer, logger)
	ratingController := controllers.NewRatingController(board, renderer, logger)
	commentController := controllers.NewCommentController(board, renderer, logger)
	eventController := controllers.NewEventController(board, logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger.Named("http")))
	router.Use(middleware.Recoverer(logger.Named("http")))
	router.Use(limiter.Middleware)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(views.Static()))))

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/ratings", ratingController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/delete", postController.ConfirmDelete).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/delete", postController.Delete).Methods("POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("", postController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")
	apiPosts.HandleFunc("/{id:[0-9]+}/ratings", ratingController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id:[0-9]+}/comments", commentController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")

	api.HandleFunc("/events", eventController.Stream).Methods("GET")

	return router, nil
}

// StartServer listens on addr and serves until ctx is done.
func StartServer(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler, shutdownTimeout, logger)
}

// Serve serves handler on ln until ctx is done, then shuts down gracefully. In-flight requests
// get up to shutdownTimeout to finish; open event streams are ended at once.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
