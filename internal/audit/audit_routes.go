package audit

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	logs := r.Group("/audit")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetRecent)
		logs.GET("/leaves/:leaveId", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetByLeave)
	}
}
