package orgchart

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalChain is the per-employee routing configuration maintained by the
// org-chart collaborator. Any slot may be empty; the leave router treats an
// empty resolved slot as a hard configuration error.
type ApprovalChain struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	LineManagerID    *uuid.UUID `gorm:"type:uuid"`
	GeneralManagerID *uuid.UUID `gorm:"type:uuid"`
	BackupApproverID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
