package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todoapp/internal/database"
	"todoapp/internal/domain"
	"todoapp/internal/repository"
)

// Seeds the baseline roles and, when ADMIN_EMAIL/ADMIN_PASSWORD are set, an
// admin account carrying the admin role.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)

	for _, name := range []string{"admin", "user"} {
		if err := roleRepo.Create(ctx, &domain.Role{Name: name}); err != nil {
			if errors.Is(err, repository.ErrDuplicateRole) {
				continue
			}
			log.Fatalf("seed role %q failed: %v", name, err)
		}
		log.Printf("seeded role %q", name)
	}

	adminEmail := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	admin, err := userRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("admin lookup failed: %v", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash admin password failed: %v", err)
		}

		admin = &domain.User{
			Email:        adminEmail,
			Username:     "admin",
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("create admin failed: %v", err)
		}
		log.Printf("seeded admin account %s", adminEmail)
	}

	adminRole, err := roleRepo.GetByName(ctx, "admin")
	if err != nil {
		log.Fatalf("admin role lookup failed: %v", err)
	}
	if err := roleRepo.AssignToUser(ctx, admin, adminRole); err != nil {
		log.Fatalf("assign admin role failed: %v", err)
	}

	log.Println("seed completed")
}
