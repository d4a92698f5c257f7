package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/litellm-chat/service"
)

// NewRouter wires every route around a single generator.
func NewRouter(generator service.Generator) *gin.Engine {
	corsHandler := NewCorsHandler()
	generateHandler := NewGenerateHandler(generator)
	wsService := service.NewWebSocketService(generator)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger, corsHandler.CorsMiddleware)

	router.GET("/health", HandleHealth)
	router.POST("/generate", generateHandler.HandleGenerate)
	router.POST("/chat", generateHandler.HandleGenerate)
	router.GET("/ws", gin.WrapF(wsService.HandleGenerate))

	return router
}
