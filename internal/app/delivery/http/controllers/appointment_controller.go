package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/requests"
	"appointmed-service/internal/pkg/exceptions"
	"appointmed-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	ClinicLocation     *time.Location
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, clinicLocation *time.Location) *AppointmentController {
	onceAppointmentController.Do(func() {
		instance := &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
			ClinicLocation:     clinicLocation,
		}
		appointmentControllerInstance = instance
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) Book(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AppointmentController.Book requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AppointmentController.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.BookAppointment{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	if request.NewPatient != nil {
		if err := utils.ValidateStruct(request.NewPatient); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.Book(ctx, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.Book error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SuccessBookAppointment, result)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AppointmentController.UpdateStatus requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")
	ctrl.Log.Info("AppointmentController.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	request := &requests.UpdateAppointmentStatus{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.UpdateStatus(ctx, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.UpdateStatus error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessUpdateAppointment, result)
}

// FindAll lists appointments filtered by doctor_id or patient_id plus an
// optional from/to date range (defaults to the next 30 days).
func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AppointmentController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AppointmentController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctorID := r.URL.Query().Get("doctor_id")
	patientID := r.URL.Query().Get("patient_id")
	if doctorID == "" && patientID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(nil))
		return
	}

	start, end, err := ctrl.parseRange(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseDate(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var result interface{}
	if doctorID != "" {
		result, err = ctrl.AppointmentUsecase.FindByDoctorAndDateRange(ctx, doctorID, start, end)
	} else {
		result, err = ctrl.AppointmentUsecase.FindByPatientAndDateRange(ctx, patientID, start, end)
	}
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindAll error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetData, result)
}

func (ctrl *AppointmentController) parseRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := now
	end := now.AddDate(0, 0, 30)

	if from := r.URL.Query().Get("from"); from != "" {
		day, err := utils.ParseDateOnly(from, ctrl.ClinicLocation)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = day.UTC()
	}
	if to := r.URL.Query().Get("to"); to != "" {
		day, err := utils.ParseDateOnly(to, ctrl.ClinicLocation)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = day.AddDate(0, 0, 1).UTC()
	}
	return start, end, nil
}
