package handlers

import (
	portssvc "github.com/prog-thiagomartins/finance-control/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, transactionService portssvc.TransactionSvcFacade) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, transactionService)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, transactionService portssvc.TransactionSvcFacade) {
	v1 := r.Group("/api/v1")

	registerTransactionRoutes(v1, transactionService)
}
