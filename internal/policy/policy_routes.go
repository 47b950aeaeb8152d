package policy

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	policies := r.Group("/policy")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("/years", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.ListYears)
		policies.GET("/years/:year", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.GetYear)
		policies.GET("/leave-types", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.ListLeaveTypes)
		policies.GET("/carry-forward-window", middleware.RBACAuthorize(rbacService, "policy", "read"), handler.CarryForwardWindow)
	}
}
