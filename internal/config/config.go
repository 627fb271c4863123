package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	StorageDriver      string // "file", "sqlite" or "postgres"
	DataDir            string // file backend: directory for posts.json/comments.json
	SQLitePath         string
	DatabaseURL        string
	UploadDir          string
	AdminPassword      string
	CorsAllowedOrigins []string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", "file")),
		DataDir:            getEnv("DATA_DIR", "data"),
		SQLitePath:         getEnv("SQLITE_PATH", "data/blog.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		UploadDir:          getEnv("UPLOAD_DIR", "public/uploads"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.StorageDriver {
	case "file", "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is required with STORAGE_DRIVER=postgres")
		}
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
