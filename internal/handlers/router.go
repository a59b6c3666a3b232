package handlers

import (
	"github.com/AlexBrence/TODO-list-app/internal/config"
	"github.com/AlexBrence/TODO-list-app/internal/middleware"
	"github.com/AlexBrence/TODO-list-app/internal/services"
	"github.com/AlexBrence/TODO-list-app/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RouterDeps struct {
	DB              *gorm.DB
	Config          *config.Config
	Log             *logrus.Logger
	AuthService     services.AuthService
	RegisterService services.RegisterService
	TaskService     services.TaskService
}

// NewRouter assembles the middleware chain and the full route table.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Log != nil {
		router.Use(middleware.RequestLogger(deps.Log))
	}
	router.Use(middleware.SecurityHeaders())
	if len(deps.Config.CORS.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = deps.Config.CORS.AllowedOrigins
		corsConfig.AllowCredentials = true
		router.Use(cors.New(corsConfig))
	}
	router.Use(middleware.Session(deps.AuthService))
	router.SetHTMLTemplate(web.Templates())

	authHandler := NewAuthHandler(deps.DB, deps.AuthService, deps.Config)
	registerHandler := NewRegisterHandler(deps.DB, deps.RegisterService, deps.AuthService, deps.Config)
	logoutHandler := NewLogoutHandler(deps.Config)
	taskHandler := NewTaskHandler(deps.DB, deps.TaskService)

	// Credential endpoints carry the brute-force limiter.
	credentials := router.Group("/")
	if deps.Config.RateLimit.Enabled {
		credentials.Use(middleware.NewRateLimiter(deps.Config).Middleware())
	}
	credentials.GET("/login/", authHandler.LoginPage)
	credentials.POST("/login/", authHandler.Login)
	credentials.GET("/register/", registerHandler.RegisterPage)
	credentials.POST("/register/", registerHandler.Register)

	protected := router.Group("/")
	protected.Use(middleware.RequireLogin())
	protected.GET("/logout/", logoutHandler.Logout)
	protected.POST("/logout/", logoutHandler.Logout)
	protected.GET("", taskHandler.List)
	protected.GET("/create/", taskHandler.CreateForm)
	protected.POST("/create/", taskHandler.Create)
	protected.GET("/:id/", taskHandler.Detail)
	protected.GET("/:id/edit", taskHandler.UpdateForm)
	protected.POST("/:id/edit", taskHandler.Update)
	protected.GET("/:id/delete", taskHandler.ConfirmDelete)
	protected.POST("/:id/delete", taskHandler.Delete)

	router.NoRoute(renderNotFound)

	return router
}
