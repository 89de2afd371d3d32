package routes

import (
	"net/http"

	"github.com/iCodeLakshay/fit-tracker-backend/config"
	"github.com/iCodeLakshay/fit-tracker-backend/controllers"
	"github.com/iCodeLakshay/fit-tracker-backend/middlewares"
	"github.com/iCodeLakshay/fit-tracker-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the HTTP surface. All dependencies arrive explicitly;
// nothing in here reads ambient state.
func SetupRouter(
	cfg *config.Config,
	auth *services.AuthService,
	users *services.UserService,
	workouts *services.WorkoutService,
	ai *services.AIService,
) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestLogger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	authCtrl := controllers.NewAuthController(auth)
	userCtrl := controllers.NewUserController(users)
	workoutCtrl := controllers.NewWorkoutController(workouts)
	aiCtrl := controllers.NewAIController(ai, cfg.Production())

	requireAuth := middlewares.AuthMiddleware(auth)
	requireAdmin := middlewares.AdminOnly(cfg.AdminAPIKey)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
	}

	userGroup := api.Group("/user")
	{
		userGroup.GET("/profile", requireAuth, userCtrl.GetProfile)
		userGroup.GET("/:id", requireAuth, userCtrl.GetProfile)
		userGroup.POST("", requireAdmin, userCtrl.CreateUser)
		userGroup.PATCH("/:id", userCtrl.UpdateBodyMetrics)
	}

	workoutGroup := api.Group("/workout")
	workoutGroup.Use(requireAuth)
	{
		workoutGroup.GET("/all-workouts", workoutCtrl.GetAllWorkouts)
		workoutGroup.POST("", workoutCtrl.CreateWorkout)
		workoutGroup.PUT("/:id", workoutCtrl.UpdateWorkout)
		workoutGroup.DELETE("/:id", workoutCtrl.DeleteWorkout)
	}

	aiGroup := api.Group("/ai")
	aiGroup.Use(requireAuth)
	{
		aiGroup.POST("/chat", aiCtrl.Chat)
		aiGroup.GET("/suggestions", aiCtrl.Suggestions)
	}

	return r
}

// corsConfig allows only the configured origins; requests without an
// Origin header pass through untouched.
func corsConfig(allowedOrigins []string) cors.Config {
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Admin-Key"},
		AllowCredentials: true,
	}
}
