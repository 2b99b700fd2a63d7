package contracts

import (
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/dto/requests"
	"appointmed-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, request *requests.BookAppointment) (*responses.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error)
	FindByDoctorAndDateRange(ctx context.Context, doctorID string, start, end time.Time) ([]responses.Appointment, error)
	FindByPatientAndDateRange(ctx context.Context, patientID string, start, end time.Time) ([]responses.Appointment, error)
}

type AppointmentRepository interface {
	// Insert persists the appointment. A duplicate-key conflict on the
	// (doctor_id, start_time) unique guard is translated to a
	// slot-unavailable error; that translation is the booking race arbiter.
	Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByDoctorAndDateRange(ctx context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error)
	FindByPatientAndDateRange(ctx context.Context, patientID string, start, end time.Time) ([]models.Appointment, error)
	FindScheduledInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, status string) error
}
