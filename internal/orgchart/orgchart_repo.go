package orgchart

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=orgchart_repo.go -destination=mock/orgchart_repo_mock.go -package=mock
type Repository interface {
	FindByEmployee(ctx context.Context, employeeID string) (*ApprovalChain, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*ApprovalChain, error) {
	var chain ApprovalChain
	err := r.db.WithContext(ctx).
		First(&chain, "employee_id = ?", employeeID).Error
	return &chain, err
}
