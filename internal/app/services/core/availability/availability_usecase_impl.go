package availability

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/requests"
	"appointmed-service/internal/pkg/dto/responses"
	"appointmed-service/internal/pkg/exceptions"
	"appointmed-service/internal/pkg/utils"

	"go.uber.org/zap"
)

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

type availabilityUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	AppointmentRepository  contracts.AppointmentRepository
	DoctorRepository       contracts.DoctorRepository
	Log                    *zap.Logger
	ClinicLocation         *time.Location
}

func NewAvailabilityUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	logger *zap.Logger,
	clinicLocation *time.Location,
) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		instance := &availabilityUsecase{
			AvailabilityRepository: availabilityRepository,
			AppointmentRepository:  appointmentRepository,
			DoctorRepository:       doctorRepository,
			Log:                    logger,
			ClinicLocation:         clinicLocation,
		}
		availabilityUsecaseInstance = instance
	})
	return availabilityUsecaseInstance
}

func (uc *availabilityUsecase) CreateBulk(ctx context.Context, request *requests.BulkAvailability) (*responses.BulkAvailabilityOutcome, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.CreateBulk called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	startDay, err := utils.ParseDateOnly(request.StartDate, uc.ClinicLocation)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	endDay, err := utils.ParseDateOnly(request.EndDate, uc.ClinicLocation)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if startDay.After(endDay) {
		return nil, exceptions.ErrDateRangeInvalid(nil)
	}

	startH, startM, err := utils.ParseClock(request.DailyStart)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	endH, endM, err := utils.ParseClock(request.DailyEnd)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	startMinutes := startH*60 + startM
	endMinutes := endH*60 + endM
	if startMinutes >= endMinutes {
		return nil, exceptions.ErrClockOrderInvalid(nil)
	}
	if endMinutes-startMinutes < constvars.MinWindowDurationMinutes {
		return nil, exceptions.ErrWindowTooShort(nil)
	}

	weekdays := make(map[time.Weekday]bool, len(request.Weekdays))
	for _, wd := range request.Weekdays {
		weekdays[time.Weekday(wd)] = true
	}

	windows := GenerateWindows(request.DoctorID, startDay, endDay, weekdays, startH, startM, endH, endM, uc.ClinicLocation)

	// each window is inserted independently; one bad day must not abort the batch
	outcome := &responses.BulkAvailabilityOutcome{}
	for i := range windows {
		windows[i].CreatedAt = time.Now().UTC()
		windowID, err := uc.AvailabilityRepository.Insert(ctx, &windows[i])
		if err != nil {
			day := windows[i].StartTime.In(uc.ClinicLocation).Format("2006-01-02")
			uc.Log.Error("availabilityUsecase.CreateBulk error inserting window",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
				zap.String("day", day),
				zap.Error(err),
			)
			outcome.FailedDays = append(outcome.FailedDays, day)
			continue
		}
		outcome.Created = append(outcome.Created, responses.AvailabilityWindow{
			ID:        windowID,
			DoctorID:  windows[i].DoctorID,
			StartTime: windows[i].StartTime,
			EndTime:   windows[i].EndTime,
		})
	}

	uc.Log.Info("availabilityUsecase.CreateBulk succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.Int("created_count", len(outcome.Created)),
		zap.Int("failed_count", len(outcome.FailedDays)),
	)
	return outcome, nil
}

func (uc *availabilityUsecase) CreateSingle(ctx context.Context, request *requests.SingleAvailability) (*responses.AvailabilityWindow, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.CreateSingle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	startTime, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	endTime, err := time.Parse(time.RFC3339, request.EndTime)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if !endTime.After(startTime) {
		return nil, exceptions.ErrClockOrderInvalid(nil)
	}
	if endTime.Sub(startTime) < time.Duration(constvars.MinWindowDurationMinutes)*time.Minute {
		return nil, exceptions.ErrWindowTooShort(nil)
	}

	window := &models.AvailabilityWindow{
		DoctorID:  request.DoctorID,
		StartTime: startTime.UTC(),
		EndTime:   endTime.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	windowID, err := uc.AvailabilityRepository.Insert(ctx, window)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("availabilityUsecase.CreateSingle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWindowIDKey, windowID),
	)
	return &responses.AvailabilityWindow{
		ID:        windowID,
		DoctorID:  window.DoctorID,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
	}, nil
}

func (uc *availabilityUsecase) DeleteAllForDoctor(ctx context.Context, doctorID string) (int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.DeleteAllForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	count, err := uc.AvailabilityRepository.DeleteAllForDoctor(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	uc.Log.Info("availabilityUsecase.DeleteAllForDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int64("deleted_count", count),
	)
	return count, nil
}

func (uc *availabilityUsecase) ResolveDaySlots(ctx context.Context, doctorID string, day time.Time) ([]responses.DaySlot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.ResolveDaySlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}

	dayStart := utils.StartOfDay(day, uc.ClinicLocation)
	dayEnd := dayStart.AddDate(0, 0, 1)

	windows, err := uc.AvailabilityRepository.FindByDoctorAndDateRange(ctx, doctorID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, err
	}
	appointments, err := uc.AppointmentRepository.FindByDoctorAndDateRange(ctx, doctorID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, err
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].StartTime.Before(windows[j].StartTime)
	})

	// occupancy is always recomputed from the appointment store, never read
	// from a stored flag
	var out []responses.DaySlot
	for _, window := range windows {
		slots := ResolveOccupancy(SplitWindow(window, constvars.SlotUnitMinutes), appointments, uc.Log)
		for _, slot := range slots {
			out = append(out, responses.DaySlot{
				ParentWindowID: slot.ParentWindowID,
				StartTime:      slot.StartTime,
				EndTime:        slot.EndTime,
				Occupied:       slot.Occupied,
				PatientID:      slot.PatientID,
			})
		}
	}

	uc.Log.Info("availabilityUsecase.ResolveDaySlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int("slot_count", len(out)),
	)
	return out, nil
}
