package contracts

import (
	"appointmed-service/internal/app/models"
	"context"
)

type RoleRepository interface {
	// FindByUID returns nil when the uid has no assignment. Callers must treat
	// a missing assignment as unauthorized; there is no fallback role.
	FindByUID(ctx context.Context, uid string) (*models.RoleAssignment, error)
	Assign(ctx context.Context, assignment *models.RoleAssignment) error
}
