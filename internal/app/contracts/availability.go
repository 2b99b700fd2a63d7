package contracts

import (
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/dto/requests"
	"appointmed-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type AvailabilityUsecase interface {
	CreateBulk(ctx context.Context, request *requests.BulkAvailability) (*responses.BulkAvailabilityOutcome, error)
	CreateSingle(ctx context.Context, request *requests.SingleAvailability) (*responses.AvailabilityWindow, error)
	DeleteAllForDoctor(ctx context.Context, doctorID string) (int64, error)
	ResolveDaySlots(ctx context.Context, doctorID string, day time.Time) ([]responses.DaySlot, error)
}

type AvailabilityRepository interface {
	Insert(ctx context.Context, window *models.AvailabilityWindow) (string, error)
	FindByDoctorAndDateRange(ctx context.Context, doctorID string, start, end time.Time) ([]models.AvailabilityWindow, error)
	DeleteAllForDoctor(ctx context.Context, doctorID string) (int64, error)
}
