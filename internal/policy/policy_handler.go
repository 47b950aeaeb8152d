package policy

import (
	"net/http"
	"strconv"
	"time"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewHandler(catalog Catalog, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("policy.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.handler")
	}
	return &Handler{catalog: catalog, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("policy request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListYears(c *gin.Context) {
	years, err := h.catalog.ListPolicyYears(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]PolicyYearResponse, len(years))
	for i, p := range years {
		resp[i] = mapPolicyYearResponse(p)
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year must be a number", nil)
		return
	}

	p, err := h.catalog.PolicyYear(c.Request.Context(), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapPolicyYearResponse(p), nil)
}

func (h *Handler) ListLeaveTypes(c *gin.Context) {
	rules, err := h.catalog.ListLeaveTypes(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]LeaveTypeResponse, len(rules))
	for i, r := range rules {
		resp[i] = mapLeaveTypeResponse(r)
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// CarryForwardWindow reports whether the carry-forward window is open today.
func (h *Handler) CarryForwardWindow(c *gin.Context) {
	now := time.Now().UTC()
	year := now.Year()
	if q := c.Query("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year must be a number", nil)
			return
		}
		year = y
	}

	open, err := h.catalog.CarryForwardWindowOpen(c.Request.Context(), now, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"year": year, "open": open}, nil)
}
