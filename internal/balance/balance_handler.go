package balance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const balanceCacheTTL = 30 * time.Second

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis caches balance reads briefly; dashboards poll this
// endpoint on every page load.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetRemaining(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("employeeId")

	year := time.Now().UTC().Year()
	if q := c.Query("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year must be a number", nil)
			return
		}
		year = y
	}

	cacheKey := fmt.Sprintf("balance:%s:%d", employeeID, year)
	if h.rdb != nil {
		if val, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached BalanceResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				response.Success(c, http.StatusOK, cached, nil)
				return
			}
		}
	}

	resp, err := h.service.Remaining(ctx, employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			h.rdb.Set(ctx, cacheKey, payload, balanceCacheTTL)
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetMyRemaining resolves the caller from the auth context.
func (h *Handler) GetMyRemaining(c *gin.Context) {
	c.Params = append(c.Params, gin.Param{Key: "employeeId", Value: c.GetString("employee_id")})
	h.GetRemaining(c)
}
