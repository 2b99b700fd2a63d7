package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/app/services/core/availability"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/requests"
	"appointmed-service/internal/pkg/dto/responses"
	"appointmed-service/internal/pkg/exceptions"
	"appointmed-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const bookingLockExpiration = 10 * time.Second

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

type appointmentUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	AvailabilityRepository contracts.AvailabilityRepository
	PatientRepository      contracts.PatientRepository
	DoctorRepository       contracts.DoctorRepository
	WhatsAppService        contracts.WhatsAppService
	LockerService          contracts.LockerService
	Log                    *zap.Logger
	ClinicLocation         *time.Location
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	availabilityRepository contracts.AvailabilityRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	whatsAppService contracts.WhatsAppService,
	lockerService contracts.LockerService,
	logger *zap.Logger,
	clinicLocation *time.Location,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository:  appointmentRepository,
			AvailabilityRepository: availabilityRepository,
			PatientRepository:      patientRepository,
			DoctorRepository:       doctorRepository,
			WhatsAppService:        whatsAppService,
			LockerService:          lockerService,
			Log:                    logger,
			ClinicLocation:         clinicLocation,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) Book(ctx context.Context, request *requests.BookAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", request.DoctorID))
	}

	slotStart, err := time.Parse(time.RFC3339, request.SlotStart)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	slotEnd, err := time.Parse(time.RFC3339, request.SlotEnd)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	slotStart = slotStart.UTC()
	slotEnd = slotEnd.UTC()
	if slotEnd.Sub(slotStart) != time.Duration(constvars.SlotUnitMinutes)*time.Minute {
		return nil, exceptions.ErrSlotDurationInvalid(nil)
	}

	patient, err := uc.resolvePatient(ctx, request)
	if err != nil {
		return nil, err
	}

	dayStart := utils.StartOfDay(slotStart, uc.ClinicLocation).UTC()
	dayEnd := dayStart.AddDate(0, 0, 1)

	if err := uc.checkSlotIsOffered(ctx, request.DoctorID, slotStart, dayStart, dayEnd); err != nil {
		return nil, err
	}

	// The per-doctor day lock narrows the race window for the occupancy
	// pre-check. It is advisory only: the unique index on the appointment
	// insert is the authoritative guard, so a missed lock never blocks the
	// booking path.
	lockKey := fmt.Sprintf("booking:%s:%s", request.DoctorID, dayStart.Format("2006-01-02"))
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, bookingLockExpiration)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.Book could not acquire booking lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if acquired {
		defer func() {
			if unlockErr := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); unlockErr != nil {
				uc.Log.Warn("appointmentUsecase.Book failed releasing booking lock",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(unlockErr),
				)
			}
		}()
	}

	if err := uc.checkSlotIsFree(ctx, request.DoctorID, slotStart, slotEnd, dayStart, dayEnd); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		DoctorID:        request.DoctorID,
		PatientID:       patient.ID,
		StartTime:       slotStart,
		DurationMinutes: constvars.SlotUnitMinutes,
		Status:          constvars.AppointmentStatusScheduled,
		Specialty:       request.Specialty,
		Notes:           request.Notes,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
	created, err := uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, created.ID),
		zap.String(constvars.LoggingDoctorIDKey, created.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, created.PatientID),
	)

	// fire-and-forget: the booking is already committed, delivery failures
	// only get logged
	go uc.dispatchBookingNotifications(context.WithoutCancel(ctx), created, doctor, patient)

	return buildAppointmentResponse(created, doctor, patient), nil
}

func (uc *appointmentUsecase) resolvePatient(ctx context.Context, request *requests.BookAppointment) (*models.Patient, error) {
	if request.NewPatient != nil {
		existing, err := uc.PatientRepository.FindByNationalID(ctx, request.NewPatient.NationalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, exceptions.ErrDuplicateIdentity(fmt.Errorf("national id already registered"))
		}
		return uc.PatientRepository.Create(ctx, &models.Patient{
			NationalID: request.NewPatient.NationalID,
			FullName:   request.NewPatient.FullName,
			Phone:      request.NewPatient.Phone,
			Email:      request.NewPatient.Email,
			CreatedAt:  time.Now().UTC(),
		})
	}

	if request.PatientID == "" {
		return nil, exceptions.ErrPatientIdentityRequired(nil)
	}
	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(fmt.Errorf("patient %s not found", request.PatientID))
	}
	return patient, nil
}

// checkSlotIsOffered verifies the requested slot is one of the candidates the
// doctor's availability windows produce for that day.
func (uc *appointmentUsecase) checkSlotIsOffered(ctx context.Context, doctorID string, slotStart, dayStart, dayEnd time.Time) error {
	windows, err := uc.AvailabilityRepository.FindByDoctorAndDateRange(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return err
	}
	for _, window := range windows {
		for _, candidate := range availability.SplitWindow(window, constvars.SlotUnitMinutes) {
			if candidate.StartTime.Equal(slotStart) {
				return nil
			}
		}
	}
	return exceptions.ErrSlotOutsideAvailability(fmt.Errorf("no window offers slot at %s", slotStart))
}

// checkSlotIsFree re-resolves occupancy right before insert. The subsequent
// insert remains the source of truth; this pre-check only produces a cleaner
// error for the common case.
func (uc *appointmentUsecase) checkSlotIsFree(ctx context.Context, doctorID string, slotStart, slotEnd, dayStart, dayEnd time.Time) error {
	appointments, err := uc.AppointmentRepository.FindByDoctorAndDateRange(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return err
	}
	candidate := []models.BookableSlot{{StartTime: slotStart, EndTime: slotEnd}}
	resolved := availability.ResolveOccupancy(candidate, appointments, uc.Log)
	if resolved[0].Occupied {
		return exceptions.ErrSlotUnavailable(fmt.Errorf("slot at %s already occupied", slotStart))
	}
	return nil
}

func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("next_status", request.Status),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	if !appointment.CanTransitionTo(request.Status) {
		return nil, exceptions.ErrAppointmentStatusTransition(fmt.Errorf("cannot move %s to %s", appointment.Status, request.Status))
	}

	err = uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, request.Status)
	if err != nil {
		return nil, err
	}
	appointment.Status = request.Status

	uc.Log.Info("appointmentUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("status", request.Status),
	)
	return buildAppointmentResponse(appointment, nil, nil), nil
}

func (uc *appointmentUsecase) FindByDoctorAndDateRange(ctx context.Context, doctorID string, start, end time.Time) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByDoctorAndDateRange called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	appointments, err := uc.AppointmentRepository.FindByDoctorAndDateRange(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}
	return buildAppointmentListResponse(appointments), nil
}

func (uc *appointmentUsecase) FindByPatientAndDateRange(ctx context.Context, patientID string, start, end time.Time) ([]responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByPatientAndDateRange called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	appointments, err := uc.AppointmentRepository.FindByPatientAndDateRange(ctx, patientID, start, end)
	if err != nil {
		return nil, err
	}
	return buildAppointmentListResponse(appointments), nil
}

func (uc *appointmentUsecase) dispatchBookingNotifications(ctx context.Context, appointment *models.Appointment, doctor *models.Doctor, patient *models.Patient) {
	localStart := appointment.StartTime.In(uc.ClinicLocation)

	if patient.Phone != "" {
		message := &requests.WhatsAppMessage{
			To:      patient.Phone,
			Message: buildPatientConfirmationMessage(doctor.FullName, localStart),
		}
		if err := uc.WhatsAppService.SendWhatsAppMessage(ctx, message); err != nil {
			uc.Log.Warn("appointmentUsecase.dispatchBookingNotifications patient notification failed",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
		}
	}

	if doctor.Phone != "" {
		message := &requests.WhatsAppMessage{
			To:      doctor.Phone,
			Message: buildDoctorConfirmationMessage(patient.FullName, localStart),
		}
		if err := uc.WhatsAppService.SendWhatsAppMessage(ctx, message); err != nil {
			uc.Log.Warn("appointmentUsecase.dispatchBookingNotifications doctor notification failed",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
		}
	}
}
