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

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	ClinicLocation      *time.Location
}

var (
	availabilityControllerInstance *AvailabilityController
	onceAvailabilityController     sync.Once
)

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, clinicLocation *time.Location) *AvailabilityController {
	onceAvailabilityController.Do(func() {
		instance := &AvailabilityController{
			Log:                 logger,
			AvailabilityUsecase: availabilityUsecase,
			ClinicLocation:      clinicLocation,
		}
		availabilityControllerInstance = instance
	})
	return availabilityControllerInstance
}

func (ctrl *AvailabilityController) CreateBulk(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AvailabilityController.CreateBulk requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AvailabilityController.CreateBulk called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.BulkAvailability{}
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

	result, err := ctrl.AvailabilityUsecase.CreateBulk(ctx, request)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.CreateBulk error from usecase",
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

	ctrl.Log.Info("AvailabilityController.CreateBulk succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("created_count", len(result.Created)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SuccessCreateAvailability, result)
}

func (ctrl *AvailabilityController) CreateSingle(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AvailabilityController.CreateSingle requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AvailabilityController.CreateSingle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.SingleAvailability{}
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

	result, err := ctrl.AvailabilityUsecase.CreateSingle(ctx, request)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.CreateSingle error from usecase",
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

	ctrl.Log.Info("AvailabilityController.CreateSingle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWindowIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SuccessCreateAvailability, result)
}

func (ctrl *AvailabilityController) DeleteAllForDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AvailabilityController.DeleteAllForDoctor requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	doctorID := chi.URLParam(r, "doctorID")
	ctrl.Log.Info("AvailabilityController.DeleteAllForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := ctrl.AvailabilityUsecase.DeleteAllForDoctor(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.DeleteAllForDoctor error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AvailabilityController.DeleteAllForDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("deleted_count", count),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessDeleteAvailability, map[string]int64{"deleted": count})
}

func (ctrl *AvailabilityController) FindDaySlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AvailabilityController.FindDaySlots requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	doctorID := chi.URLParam(r, "doctorID")
	ctrl.Log.Info("AvailabilityController.FindDaySlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	day, err := utils.ParseDateOnly(r.URL.Query().Get("date"), ctrl.ClinicLocation)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseDate(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.ResolveDaySlots(ctx, doctorID, day)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.FindDaySlots error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AvailabilityController.FindDaySlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("slot_count", len(result)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetData, result)
}
