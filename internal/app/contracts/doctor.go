package contracts

import (
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/dto/responses"
	"context"
)

type DoctorUsecase interface {
	// FindAll returns one page of the active doctor directory plus the total
	// number of matching doctors.
	FindAll(ctx context.Context, specialty string, page, pageSize int) ([]responses.Doctor, int, error)
	FindByID(ctx context.Context, doctorID string) (*responses.Doctor, error)
}

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindAll(ctx context.Context, specialty string, skip, limit int64) ([]models.Doctor, error)
	Count(ctx context.Context, specialty string) (int64, error)
}
