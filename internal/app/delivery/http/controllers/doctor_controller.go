package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"
	"appointmed-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

var (
	doctorControllerInstance *DoctorController
	onceDoctorController     sync.Once
)

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	onceDoctorController.Do(func() {
		instance := &DoctorController{
			Log:           logger,
			DoctorUsecase: doctorUsecase,
		}
		doctorControllerInstance = instance
	})
	return doctorControllerInstance
}

func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DoctorController.FindAll requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DoctorController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = constvars.AppDefaultPageSize
	}

	result, total, err := ctrl.DoctorUsecase.FindAll(ctx, r.URL.Query().Get("specialty"), page, pageSize)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindAll error from usecase",
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

	ctrl.Log.Info("DoctorController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("doctor_count", len(result)),
		zap.Int("total", total),
	)
	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessPaginatedResponse(w, constvars.StatusOK, constvars.SuccessGetData, result, pagination)
}

func (ctrl *DoctorController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DoctorController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	doctorID := chi.URLParam(r, "doctorID")
	ctrl.Log.Info("DoctorController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.DoctorUsecase.FindByID(ctx, doctorID)
	if err != nil {
		ctrl.Log.Error("DoctorController.FindByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessGetData, result)
}
