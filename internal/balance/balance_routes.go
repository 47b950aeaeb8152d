package balance

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", handler.GetMyRemaining)
		balances.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetRemaining)
	}
}
