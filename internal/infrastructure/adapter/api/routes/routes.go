package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/config"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authCfg config.AuthConfig,
	transactionHandler *handler.TransactionHandler,
	mpesaHandler *handler.MpesaHandler,
	userHandler *handler.UserHandler,
	logger coreport.Logger,
) {
	api := router.Group("/api")

	// Open endpoints: registration and the payment gateway webhook
	api.POST("/users/register", userHandler.Register)
	api.POST("/mpesa/callback", mpesaHandler.Callback)

	// Everything else requires a verified bearer token
	authed := api.Group("")
	authed.Use(middleware.AuthRequired(authCfg.JWTSecret, authCfg.Issuer, logger))
	{
		authed.GET("/transactions", transactionHandler.List)
		authed.POST("/transactions", transactionHandler.Create)
		authed.GET("/transactions/:id", transactionHandler.Get)
		authed.POST("/transactions/:id/complete", transactionHandler.Complete)
		authed.GET("/receipts/:id", transactionHandler.DownloadReceipt)
		authed.GET("/stats", transactionHandler.Stats)

		authed.GET("/users/profile", userHandler.Me)
		authed.PUT("/users/profile", userHandler.UpdateMe)
		authed.GET("/users/users", userHandler.List)
		authed.PATCH("/users/users/:id/role", userHandler.UpdateRole)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
