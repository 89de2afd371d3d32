package main

import (
	"log"

	"github.com/iCodeLakshay/fit-tracker-backend/config"
	"github.com/iCodeLakshay/fit-tracker-backend/middlewares"
	"github.com/iCodeLakshay/fit-tracker-backend/routes"
	"github.com/iCodeLakshay/fit-tracker-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(cfg.Mode)

	if err := middlewares.InitLogger("logs"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	authSvc := services.NewAuthService(db, cfg.JWTSecret)
	userSvc := services.NewUserService(db)
	workoutSvc := services.NewWorkoutService(db)
	aiSvc := services.NewAIService(db, cfg.GeminiAPIKey, cfg.GeminiModel)

	r := routes.SetupRouter(cfg, authSvc, userSvc, workoutSvc, aiSvc)

	addr := ":" + cfg.Port
	log.Printf("Server is listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
