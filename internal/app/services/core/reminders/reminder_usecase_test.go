package reminders

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAppointmentRepository struct {
	appointments []models.Appointment
}

func (r *fakeAppointmentRepository) Insert(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	r.appointments = append(r.appointments, *appointment)
	return appointment, nil
}

func (r *fakeAppointmentRepository) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID {
			found := r.appointments[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepository) FindByDoctorAndDateRange(context.Context, string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepository) FindByPatientAndDateRange(context.Context, string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepository) FindScheduledInWindow(_ context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appointment := range r.appointments {
		active := appointment.Status == constvars.AppointmentStatusScheduled || appointment.Status == constvars.AppointmentStatusConfirmed
		if active && !appointment.StartTime.Before(windowStart) && !appointment.StartTime.After(windowEnd) {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepository) UpdateStatus(context.Context, string, string) error {
	return nil
}

type fakePatientRepository struct {
	patients map[string]*models.Patient
}

func (r *fakePatientRepository) FindByID(_ context.Context, patientID string) (*models.Patient, error) {
	patient, ok := r.patients[patientID]
	if !ok {
		return nil, nil
	}
	found := *patient
	return &found, nil
}

func (r *fakePatientRepository) FindByNationalID(context.Context, string) (*models.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepository) Create(_ context.Context, patient *models.Patient) (*models.Patient, error) {
	return patient, nil
}

type fakeDoctorRepository struct {
	doctors map[string]*models.Doctor
}

func (r *fakeDoctorRepository) FindByID(_ context.Context, doctorID string) (*models.Doctor, error) {
	doctor, ok := r.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	found := *doctor
	return &found, nil
}

func (r *fakeDoctorRepository) FindAll(context.Context, string, int64, int64) ([]models.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepository) Count(context.Context, string) (int64, error) {
	return 0, nil
}

// fakeLedger mirrors the unique index behavior: the first TryRecord for a pair
// wins, every later one reports already-recorded.
type fakeLedger struct {
	recorded map[string]bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{recorded: make(map[string]bool)}
}

func (l *fakeLedger) TryRecord(_ context.Context, appointmentID, leadTime string) (bool, error) {
	key := appointmentID + "|" + leadTime
	if l.recorded[key] {
		return false, nil
	}
	l.recorded[key] = true
	return true, nil
}

type fakeWhatsAppService struct {
	sent       []requests.WhatsAppMessage
	failPhones map[string]bool
}

func (s *fakeWhatsAppService) SendWhatsAppMessage(_ context.Context, request *requests.WhatsAppMessage) error {
	if s.failPhones[request.To] {
		return fmt.Errorf("broker unreachable")
	}
	s.sent = append(s.sent, *request)
	return nil
}

type scanFixture struct {
	usecase      *reminderUsecase
	appointments *fakeAppointmentRepository
	patients     *fakePatientRepository
	ledger       *fakeLedger
	whatsapp     *fakeWhatsAppService
}

func newScanFixture() *scanFixture {
	appointmentRepo := &fakeAppointmentRepository{}
	patientRepo := &fakePatientRepository{patients: map[string]*models.Patient{
		"pat-1": {ID: "pat-1", FullName: "Ana Vera", Phone: "+593991234567"},
		"pat-2": {ID: "pat-2", FullName: "Carlos Pinto", Phone: "+593998887766"},
	}}
	doctorRepo := &fakeDoctorRepository{doctors: map[string]*models.Doctor{
		"doc-1": {ID: "doc-1", FullName: "Dr. Luis Mora", Active: true},
	}}
	ledger := newFakeLedger()
	whatsapp := &fakeWhatsAppService{failPhones: make(map[string]bool)}

	usecase := &reminderUsecase{
		AppointmentRepository: appointmentRepo,
		PatientRepository:     patientRepo,
		DoctorRepository:      doctorRepo,
		Ledger:                ledger,
		WhatsAppService:       whatsapp,
		Log:                   zap.NewNop(),
		ClinicLocation:        time.UTC,
		MatchWindow:           15 * time.Minute,
	}
	return &scanFixture{usecase: usecase, appointments: appointmentRepo, patients: patientRepo, ledger: ledger, whatsapp: whatsapp}
}

func scheduledAppointment(id, patientID string, start time.Time) models.Appointment {
	return models.Appointment{
		ID:              id,
		DoctorID:        "doc-1",
		PatientID:       patientID,
		StartTime:       start,
		DurationMinutes: 60,
		Status:          constvars.AppointmentStatusScheduled,
	}
}

func TestRunScan(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)

	t.Run("sends the matching lead reminder once", func(t *testing.T) {
		fixture := newScanFixture()
		fixture.appointments.appointments = []models.Appointment{
			scheduledAppointment("apt-1", "pat-1", now.Add(24*time.Hour)),
		}

		assert.NoError(t, fixture.usecase.RunScan(ctx, now))
		assert.Len(t, fixture.whatsapp.sent, 1)
		assert.Equal(t, "+593991234567", fixture.whatsapp.sent[0].To)
		assert.Contains(t, fixture.whatsapp.sent[0].Message, "tomorrow")
		assert.Contains(t, fixture.whatsapp.sent[0].Message, "Dr. Luis Mora")
	})

	t.Run("a repeated scan over the same window sends nothing new", func(t *testing.T) {
		fixture := newScanFixture()
		fixture.appointments.appointments = []models.Appointment{
			scheduledAppointment("apt-1", "pat-1", now.Add(24*time.Hour)),
		}

		assert.NoError(t, fixture.usecase.RunScan(ctx, now))
		assert.NoError(t, fixture.usecase.RunScan(ctx, now))
		assert.NoError(t, fixture.usecase.RunScan(ctx, now.Add(5*time.Minute)))

		assert.Len(t, fixture.whatsapp.sent, 1, "the ledger must suppress duplicate reminders")
	})

	t.Run("each lead time carries its own wording", func(t *testing.T) {
		wordings := []struct {
			offset   time.Duration
			fragment string
		}{
			{48 * time.Hour, "in two days"},
			{24 * time.Hour, "tomorrow"},
			{4 * time.Hour, "today"},
		}
		for _, wording := range wordings {
			t.Run(wording.fragment, func(t *testing.T) {
				fixture := newScanFixture()
				fixture.appointments.appointments = []models.Appointment{
					scheduledAppointment("apt-1", "pat-1", now.Add(wording.offset)),
				}

				assert.NoError(t, fixture.usecase.RunScan(ctx, now))
				assert.Len(t, fixture.whatsapp.sent, 1)
				assert.Contains(t, fixture.whatsapp.sent[0].Message, wording.fragment)
			})
		}
	})

	t.Run("an appointment near no lead boundary stays quiet", func(t *testing.T) {
		fixture := newScanFixture()
		fixture.appointments.appointments = []models.Appointment{
			scheduledAppointment("apt-1", "pat-1", now.Add(10*time.Hour)),
		}

		assert.NoError(t, fixture.usecase.RunScan(ctx, now))
		assert.Empty(t, fixture.whatsapp.sent)
	})

	t.Run("cancelled appointments get no reminder", func(t *testing.T) {
		fixture := newScanFixture()
		cancelled := scheduledAppointment("apt-1", "pat-1", now.Add(24*time.Hour))
		cancelled.Status = constvars.AppointmentStatusCancelled
		fixture.appointments.appointments = []models.Appointment{cancelled}

		assert.NoError(t, fixture.usecase.RunScan(ctx, now))
		assert.Empty(t, fixture.whatsapp.sent)
	})

	t.Run("confirmed appointments still get reminders", func(t *testing.T) {
		fixture := newScanFixture()
		confirmed := scheduledAppointment("apt-1", "pat-1", now.Add(4*time.Hour))
		confirmed.Status = constvars.AppointmentStatusConfirmed
		fixture.appointments.appointments = []models.Appointment{confirmed}

		assert.NoError(t, fixture.usecase.RunScan(ctx, now))
		assert.Len(t, fixture.whatsapp.sent, 1)
	})

	t.Run("one failing delivery does not block the rest", func(t *testing.T) {
		fixture := newScanFixture()
		fixture.whatsapp.failPhones["+593991234567"] = true
		fixture.appointments.appointments = []models.Appointment{
			scheduledAppointment("apt-1", "pat-1", now.Add(24*time.Hour)),
			scheduledAppointment("apt-2", "pat-2", now.Add(24*time.Hour)),
		}

		assert.NoError(t, fixture.usecase.RunScan(ctx, now), "delivery failures are isolated, never bubbled")
		assert.Len(t, fixture.whatsapp.sent, 1)
		assert.Equal(t, "+593998887766", fixture.whatsapp.sent[0].To)
	})

	t.Run("a patient with no phone is skipped", func(t *testing.T) {
		fixture := newScanFixture()
		fixture.patients.patients["pat-3"] = &models.Patient{ID: "pat-3", FullName: "Sin Telefono"}
		fixture.appointments.appointments = []models.Appointment{
			scheduledAppointment("apt-1", "pat-3", now.Add(24*time.Hour)),
		}

		assert.NoError(t, fixture.usecase.RunScan(ctx, now))
		assert.Empty(t, fixture.whatsapp.sent)
	})
}

func TestBuildReminderMessage(t *testing.T) {
	start := time.Date(2026, time.September, 8, 10, 0, 0, 0, time.UTC)

	t.Run("omits the doctor clause when the name is unknown", func(t *testing.T) {
		message := buildReminderMessage(constvars.ReminderLead24h, "", start)
		assert.False(t, strings.Contains(message, " with "), "no doctor name, no with-clause")
		assert.Contains(t, message, "Tuesday, 08 Sep 2026 at 10:00")
	})

	t.Run("formats the start in the given location", func(t *testing.T) {
		jakarta, err := time.LoadLocation("Asia/Jakarta")
		assert.NoError(t, err)
		message := buildReminderMessage(constvars.ReminderLead4h, "Dr. Luis Mora", start.In(jakarta))
		assert.Contains(t, message, "17:00")
	})
}
