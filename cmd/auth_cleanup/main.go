package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"todoapp/internal/database"
	"todoapp/internal/repository"
)

// Removes refresh-token rows whose validity window closed more than the
// retention period ago. The refresh flow itself never deletes; expired
// rows are rejected at read time, so this is pure housekeeping.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	retention := 30 * 24 * time.Hour
	if v := os.Getenv("REFRESH_TOKEN_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid REFRESH_TOKEN_RETENTION %q: %v", v, err)
		}
		retention = d
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	repo := repository.NewRefreshTokenRepository(db)
	deleted, err := repo.DeleteExpired(context.Background(), time.Now().Add(-retention))
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d", deleted)
}
