package handler

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/authd/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Health    *HealthHandler
	JWTSecret []byte
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(nil))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", deps.Health.Index)
	router.GET("/health", deps.Health.Health)
	router.GET("/test-db", deps.Health.TestDB)

	api := router.Group("/api")
	api.POST("/register", deps.Auth.Register)
	api.POST("/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/profile", deps.Profile.Get)

	return router
}
