package app

import (
	"database/sql"
	"path/filepath"

	"leavedesk/internal/audit"
	"leavedesk/internal/balance"
	"leavedesk/internal/employee"
	"leavedesk/internal/leave"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/orgchart"
	"leavedesk/internal/policy"
	"leavedesk/internal/rbac"
	"leavedesk/internal/rbac/infra"
	"leavedesk/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	orgchartRepo := orgchart.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	policyRepo := policy.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	balanceService := balance.NewService(balanceRepo)
	policyCatalog := policy.NewCatalog(policyRepo)
	leaveService := leave.NewServiceWithOutbox(
		db,
		leaveRepo,
		balanceService,
		policyCatalog,
		employeeRepo,
		orgchartRepo,
		counterRepo,
		outboxRepo,
	)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService)
	balanceHandler := balance.NewHandlerWithRedis(balanceService, rdb)
	employeeHandler := employee.NewHandler(employeeRepo)
	leaveHandler := leave.NewHandler(leaveService)
	policyHandler := policy.NewHandler(policyCatalog)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		audit.RegisterRoutes(api, auditHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		policy.RegisterRoutes(api, policyHandler, rbacService)
	}

	return nil
}
