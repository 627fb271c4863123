package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AsukaFurukawa/MyBlog/internal/blog"
	"github.com/AsukaFurukawa/MyBlog/internal/config"
	"github.com/AsukaFurukawa/MyBlog/internal/handlers"
	appmiddleware "github.com/AsukaFurukawa/MyBlog/internal/middleware"
	"github.com/AsukaFurukawa/MyBlog/internal/storage"
)

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return storage.OpenSQLite(cfg.SQLitePath)
	case "postgres":
		return storage.OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		return storage.OpenFile(cfg.DataDir)
	}
}

func main() {
	cfg := config.Load()

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage init failed (%s): %v", cfg.StorageDriver, err)
	}
	defer store.Close()

	posts := blog.NewPosts(store)
	comments := blog.NewComments(store)

	postsHandler := handlers.NewPostsHandler(posts)
	commentsHandler := handlers.NewCommentsHandler(comments)
	uploadsHandler := handlers.NewUploadsHandler(cfg.UploadDir)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appmiddleware.AdminHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", handlers.Health)

	// Uploaded images are served straight back from disk.
	uploadsFS := http.StripPrefix(handlers.UploadURLPrefix,
		http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get(handlers.UploadURLPrefix+"*", uploadsFS.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		publicLimiter := appmiddleware.NewRateLimiter(60, time.Minute)
		r.With(publicLimiter.Limit).Get("/posts", postsHandler.List)
		r.With(publicLimiter.Limit).Get("/posts/search", postsHandler.Search)
		r.Get("/post/{slug}", postsHandler.GetBySlug)
		r.Get("/comments", commentsHandler.List)

		// 10 new comments per minute per IP is plenty for humans.
		commentLimiter := appmiddleware.NewRateLimiter(10, time.Minute)
		r.With(commentLimiter.Limit).Post("/comments", commentsHandler.Create)

		// Every mutation sits behind the shared-secret admin gate.
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.AdminGate(cfg.AdminPassword))
			r.Post("/posts", postsHandler.Create)
			r.Put("/posts", postsHandler.Update)
			r.Delete("/posts", postsHandler.Delete)
			r.Delete("/comments", commentsHandler.Delete)
			r.Post("/uploads", uploadsHandler.Upload)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s (storage=%s)", cfg.Port, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
