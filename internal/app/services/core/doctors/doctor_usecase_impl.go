package doctors

import (
	"context"
	"fmt"
	"sync"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/responses"
	"appointmed-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Log              *zap.Logger
}

func NewDoctorUsecase(doctorRepository contracts.DoctorRepository, logger *zap.Logger) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		instance := &doctorUsecase{
			DoctorRepository: doctorRepository,
			Log:              logger,
		}
		doctorUsecaseInstance = instance
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) FindAll(ctx context.Context, specialty string, page, pageSize int) ([]responses.Doctor, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("specialty", specialty),
		zap.Int("page", page),
		zap.Int("page_size", pageSize),
	)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > constvars.AppMaxPageSize {
		pageSize = constvars.AppDefaultPageSize
	}

	total, err := uc.DoctorRepository.Count(ctx, specialty)
	if err != nil {
		return nil, 0, err
	}

	skip := int64(page-1) * int64(pageSize)
	doctors, err := uc.DoctorRepository.FindAll(ctx, specialty, skip, int64(pageSize))
	if err != nil {
		return nil, 0, err
	}

	out := make([]responses.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		out = append(out, buildDoctorResponse(&doctor))
	}
	return out, int(total), nil
}

func (uc *doctorUsecase) FindByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindByID called",
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

	response := buildDoctorResponse(doctor)
	return &response, nil
}

func buildDoctorResponse(doctor *models.Doctor) responses.Doctor {
	return responses.Doctor{
		ID:        doctor.ID,
		FullName:  doctor.FullName,
		Specialty: doctor.Specialty,
		Phone:     doctor.Phone,
	}
}
