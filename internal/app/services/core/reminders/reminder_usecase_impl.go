package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/requests"

	"go.uber.org/zap"
)

// leadTimes pairs each ledger label with its offset before the appointment.
// Scan order is longest lead first so a freshly booked appointment near two
// boundaries gets the earlier-wording reminder first.
var leadTimes = []struct {
	Label  string
	Offset time.Duration
}{
	{constvars.ReminderLead48h, 48 * time.Hour},
	{constvars.ReminderLead24h, 24 * time.Hour},
	{constvars.ReminderLead4h, 4 * time.Hour},
}

var (
	reminderUsecaseInstance contracts.ReminderUsecase
	onceReminderUsecase     sync.Once
)

type reminderUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PatientRepository     contracts.PatientRepository
	DoctorRepository      contracts.DoctorRepository
	Ledger                contracts.ReminderLedger
	WhatsAppService       contracts.WhatsAppService
	Log                   *zap.Logger
	ClinicLocation        *time.Location
	MatchWindow           time.Duration
}

func NewReminderUsecase(
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	ledger contracts.ReminderLedger,
	whatsAppService contracts.WhatsAppService,
	logger *zap.Logger,
	clinicLocation *time.Location,
	matchWindow time.Duration,
) contracts.ReminderUsecase {
	onceReminderUsecase.Do(func() {
		instance := &reminderUsecase{
			AppointmentRepository: appointmentRepository,
			PatientRepository:     patientRepository,
			DoctorRepository:      doctorRepository,
			Ledger:                ledger,
			WhatsAppService:       whatsAppService,
			Log:                   logger,
			ClinicLocation:        clinicLocation,
			MatchWindow:           matchWindow,
		}
		reminderUsecaseInstance = instance
	})
	return reminderUsecaseInstance
}

func (uc *reminderUsecase) RunScan(ctx context.Context, now time.Time) error {
	uc.Log.Info("reminderUsecase.RunScan called", zap.Time("scan_time", now))

	for _, lead := range leadTimes {
		target := now.Add(lead.Offset)
		windowStart := target.Add(-uc.MatchWindow)
		windowEnd := target.Add(uc.MatchWindow)

		appointments, err := uc.AppointmentRepository.FindScheduledInWindow(ctx, windowStart.UTC(), windowEnd.UTC())
		if err != nil {
			uc.Log.Error("reminderUsecase.RunScan error querying appointments",
				zap.String(constvars.LoggingLeadTimeKey, lead.Label),
				zap.Error(err),
			)
			continue
		}

		for i := range appointments {
			uc.dispatchOne(ctx, &appointments[i], lead.Label, lead.Offset)
		}
	}

	uc.Log.Info("reminderUsecase.RunScan succeeded", zap.Time("scan_time", now))
	return nil
}

// dispatchOne sends at most one reminder per (appointment, lead time). Every
// failure is isolated: logged, and the scan moves on.
func (uc *reminderUsecase) dispatchOne(ctx context.Context, appointment *models.Appointment, leadLabel string, leadOffset time.Duration) {
	recorded, err := uc.Ledger.TryRecord(ctx, appointment.ID, leadLabel)
	if err != nil {
		uc.Log.Error("reminderUsecase.dispatchOne error recording ledger entry",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingLeadTimeKey, leadLabel),
			zap.Error(err),
		)
		return
	}
	if !recorded {
		uc.Log.Info("reminderUsecase.dispatchOne reminder already sent, skipping",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingLeadTimeKey, leadLabel),
		)
		return
	}

	patient, err := uc.PatientRepository.FindByID(ctx, appointment.PatientID)
	if err != nil || patient == nil {
		uc.Log.Warn("reminderUsecase.dispatchOne patient lookup failed, skipping",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingPatientIDKey, appointment.PatientID),
			zap.Error(err),
		)
		return
	}
	if patient.Phone == "" {
		uc.Log.Warn("reminderUsecase.dispatchOne patient has no phone, skipping",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
		)
		return
	}

	doctorName := ""
	doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID)
	if err == nil && doctor != nil {
		doctorName = doctor.FullName
	}

	message := &requests.WhatsAppMessage{
		To:      patient.Phone,
		Message: buildReminderMessage(leadLabel, doctorName, appointment.StartTime.In(uc.ClinicLocation)),
	}
	if err := uc.WhatsAppService.SendWhatsAppMessage(ctx, message); err != nil {
		uc.Log.Warn("reminderUsecase.dispatchOne notification failed",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingLeadTimeKey, leadLabel),
			zap.Error(err),
		)
		return
	}

	uc.Log.Info("reminderUsecase.dispatchOne reminder sent",
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingLeadTimeKey, leadLabel),
	)
}

const reminderTimeLayout = "Monday, 02 Jan 2006 at 15:04"

func buildReminderMessage(leadLabel, doctorName string, start time.Time) string {
	with := ""
	if doctorName != "" {
		with = fmt.Sprintf(" with %s", doctorName)
	}
	when := start.Format(reminderTimeLayout)
	switch leadLabel {
	case constvars.ReminderLead48h:
		return fmt.Sprintf("Reminder: you have an appointment%s in two days, on %s.", with, when)
	case constvars.ReminderLead24h:
		return fmt.Sprintf("Reminder: your appointment%s is tomorrow, %s.", with, when)
	case constvars.ReminderLead4h:
		return fmt.Sprintf("Your appointment%s is today, %s. See you soon.", with, when)
	default:
		return fmt.Sprintf("Reminder: you have an appointment%s on %s.", with, when)
	}
}
