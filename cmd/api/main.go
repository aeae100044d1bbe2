package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"todoapp/internal/config"
	"todoapp/internal/database"
	"todoapp/internal/middleware"
	"todoapp/internal/modules/auth"
	"todoapp/internal/modules/rbac"
	"todoapp/internal/modules/tasks"
	jwtsvc "todoapp/internal/pkg/jwt"
	"todoapp/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, refreshRepo, j, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	taskService := tasks.NewService(taskRepo)
	taskHandler := tasks.NewHandler(taskService)

	rbacService := rbac.NewService(userRepo, roleRepo, authService)
	rbacHandler := rbac.NewHandler(rbacService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			taskHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			rbacHandler.RegisterRoutes(admin)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
