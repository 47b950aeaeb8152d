package employee

import (
	"errors"
	"net/http"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfileResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Grade      int     `json:"grade"`
	ContractID *string `json:"contract_id,omitempty"`
}

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{repo: repo, logger: l}
}

// Me returns the authenticated caller's profile snapshot.
func (h *Handler) Me(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	e, err := h.repo.FindByID(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpErr := apperror.ToHTTP(apperror.ErrNotFound)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
		h.logger.Error("profile lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp := ProfileResponse{
		ID:       e.ID.String(),
		FullName: e.FullName,
		Email:    e.Email,
		Role:     e.Role,
		Grade:    e.Grade,
	}
	if e.ContractID != nil {
		v := e.ContractID.String()
		resp.ContractID = &v
	}
	response.Success(c, http.StatusOK, resp, nil)
}
