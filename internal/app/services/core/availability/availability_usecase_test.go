package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/dto/requests"
	"appointmed-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAvailabilityRepository struct {
	windows  []models.AvailabilityWindow
	failDays map[string]bool
	nextID   int
}

func (r *fakeAvailabilityRepository) Insert(_ context.Context, window *models.AvailabilityWindow) (string, error) {
	if r.failDays[window.StartTime.Format("2006-01-02")] {
		return "", exceptions.ErrMongoDBInsertDocument(fmt.Errorf("write concern error"))
	}
	r.nextID++
	stored := *window
	stored.ID = fmt.Sprintf("win-%d", r.nextID)
	r.windows = append(r.windows, stored)
	return stored.ID, nil
}

func (r *fakeAvailabilityRepository) FindByDoctorAndDateRange(_ context.Context, doctorID string, start, end time.Time) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, window := range r.windows {
		if window.DoctorID == doctorID && !window.StartTime.Before(start) && window.StartTime.Before(end) {
			out = append(out, window)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepository) DeleteAllForDoctor(_ context.Context, doctorID string) (int64, error) {
	var kept []models.AvailabilityWindow
	var deleted int64
	for _, window := range r.windows {
		if window.DoctorID == doctorID {
			deleted++
			continue
		}
		kept = append(kept, window)
	}
	r.windows = kept
	return deleted, nil
}

type fakeAppointmentRepository struct {
	appointments []models.Appointment
}

func (r *fakeAppointmentRepository) Insert(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	r.appointments = append(r.appointments, *appointment)
	return appointment, nil
}

func (r *fakeAppointmentRepository) FindByID(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepository) FindByDoctorAndDateRange(_ context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appointment := range r.appointments {
		if appointment.DoctorID == doctorID && !appointment.StartTime.Before(start) && appointment.StartTime.Before(end) {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepository) FindByPatientAndDateRange(context.Context, string, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepository) FindScheduledInWindow(context.Context, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepository) UpdateStatus(context.Context, string, string) error {
	return nil
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

type availabilityFixture struct {
	usecase      *availabilityUsecase
	windows      *fakeAvailabilityRepository
	appointments *fakeAppointmentRepository
}

func newAvailabilityFixture() *availabilityFixture {
	windows := &fakeAvailabilityRepository{failDays: make(map[string]bool)}
	appointments := &fakeAppointmentRepository{}
	doctors := &fakeDoctorRepository{doctors: map[string]*models.Doctor{
		"doc-1": {ID: "doc-1", FullName: "Dr. Luis Mora", Specialty: "cardiology", Active: true},
	}}

	usecase := &availabilityUsecase{
		AvailabilityRepository: windows,
		AppointmentRepository:  appointments,
		DoctorRepository:       doctors,
		Log:                    zap.NewNop(),
		ClinicLocation:         time.UTC,
	}
	return &availabilityFixture{usecase: usecase, windows: windows, appointments: appointments}
}

func bulkRequest() *requests.BulkAvailability {
	// 2024-01-01 is a Monday
	return &requests.BulkAvailability{
		DoctorID:   "doc-1",
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-07",
		Weekdays:   []int{1, 3, 5},
		DailyStart: "09:00",
		DailyEnd:   "12:00",
	}
}

func TestCreateBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one window per matching weekday", func(t *testing.T) {
		fixture := newAvailabilityFixture()

		outcome, err := fixture.usecase.CreateBulk(ctx, bulkRequest())

		assert.NoError(t, err)
		assert.Len(t, outcome.Created, 3)
		assert.Empty(t, outcome.FailedDays)
		assert.Equal(t, time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), outcome.Created[0].StartTime)
		for _, created := range outcome.Created {
			assert.NotEmpty(t, created.ID)
		}
	})

	t.Run("a failing day is reported without aborting the batch", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		fixture.windows.failDays["2024-01-03"] = true

		outcome, err := fixture.usecase.CreateBulk(ctx, bulkRequest())

		assert.NoError(t, err)
		assert.Len(t, outcome.Created, 2)
		assert.Equal(t, []string{"2024-01-03"}, outcome.FailedDays)
	})

	t.Run("accepts dot-separated clocks", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		request := bulkRequest()
		request.DailyStart = "09.00"
		request.DailyEnd = "12.00"

		outcome, err := fixture.usecase.CreateBulk(ctx, request)
		assert.NoError(t, err)
		assert.Len(t, outcome.Created, 3)
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		request := bulkRequest()
		request.DoctorID = "doc-unknown"

		_, err := fixture.usecase.CreateBulk(ctx, request)
		assert.True(t, exceptions.IsStatus(err, constvars.StatusNotFound))
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		request := bulkRequest()
		request.StartDate = "2024-01-07"
		request.EndDate = "2024-01-01"

		_, err := fixture.usecase.CreateBulk(ctx, request)
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})

	t.Run("rejects an inverted daily clock", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		request := bulkRequest()
		request.DailyStart = "12:00"
		request.DailyEnd = "09:00"

		_, err := fixture.usecase.CreateBulk(ctx, request)
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})

	t.Run("rejects a daily window shorter than one slot unit", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		request := bulkRequest()
		request.DailyStart = "09:00"
		request.DailyEnd = "09:30"

		_, err := fixture.usecase.CreateBulk(ctx, request)
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})
}

func TestCreateSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an ad-hoc window", func(t *testing.T) {
		fixture := newAvailabilityFixture()

		created, err := fixture.usecase.CreateSingle(ctx, &requests.SingleAvailability{
			DoctorID:  "doc-1",
			StartTime: "2024-01-02T14:00:00Z",
			EndTime:   "2024-01-02T16:00:00Z",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, time.Date(2024, time.January, 2, 14, 0, 0, 0, time.UTC), created.StartTime)
	})

	t.Run("stores the window in UTC", func(t *testing.T) {
		fixture := newAvailabilityFixture()

		created, err := fixture.usecase.CreateSingle(ctx, &requests.SingleAvailability{
			DoctorID:  "doc-1",
			StartTime: "2024-01-02T09:00:00+07:00",
			EndTime:   "2024-01-02T12:00:00+07:00",
		})

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 2, 2, 0, 0, 0, time.UTC), created.StartTime)
	})

	t.Run("rejects a window shorter than one slot unit", func(t *testing.T) {
		fixture := newAvailabilityFixture()

		_, err := fixture.usecase.CreateSingle(ctx, &requests.SingleAvailability{
			DoctorID:  "doc-1",
			StartTime: "2024-01-02T14:00:00Z",
			EndTime:   "2024-01-02T14:30:00Z",
		})
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})
}

func TestResolveDaySlots(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("derives occupancy from stored appointments", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		fixture.windows.windows = []models.AvailabilityWindow{{
			ID:        "win-1",
			DoctorID:  "doc-1",
			StartTime: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
		}}
		fixture.appointments.appointments = []models.Appointment{{
			ID:        "apt-1",
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			StartTime: time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC),
			Status:    constvars.AppointmentStatusScheduled,
		}}

		slots, err := fixture.usecase.ResolveDaySlots(ctx, "doc-1", day)

		assert.NoError(t, err)
		assert.Len(t, slots, 3)
		assert.False(t, slots[0].Occupied)
		assert.True(t, slots[1].Occupied)
		assert.Equal(t, "pat-1", slots[1].PatientID)
		assert.False(t, slots[2].Occupied)
	})

	t.Run("windows come back ordered by start time", func(t *testing.T) {
		fixture := newAvailabilityFixture()
		fixture.windows.windows = []models.AvailabilityWindow{
			{
				ID:        "win-pm",
				DoctorID:  "doc-1",
				StartTime: time.Date(2024, time.January, 1, 14, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, time.January, 1, 16, 0, 0, 0, time.UTC),
			},
			{
				ID:        "win-am",
				DoctorID:  "doc-1",
				StartTime: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, time.January, 1, 11, 0, 0, 0, time.UTC),
			},
		}

		slots, err := fixture.usecase.ResolveDaySlots(ctx, "doc-1", day)

		assert.NoError(t, err)
		assert.Len(t, slots, 4)
		assert.Equal(t, "win-am", slots[0].ParentWindowID)
		assert.Equal(t, "win-pm", slots[2].ParentWindowID)
	})

	t.Run("a day with no windows yields no slots", func(t *testing.T) {
		fixture := newAvailabilityFixture()

		slots, err := fixture.usecase.ResolveDaySlots(ctx, "doc-1", day)
		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("rejects unknown doctor", func(t *testing.T) {
		fixture := newAvailabilityFixture()

		_, err := fixture.usecase.ResolveDaySlots(ctx, "doc-unknown", day)
		assert.True(t, exceptions.IsStatus(err, constvars.StatusNotFound))
	})
}

func TestDeleteAllForDoctor(t *testing.T) {
	ctx := context.Background()

	fixture := newAvailabilityFixture()
	fixture.windows.windows = []models.AvailabilityWindow{
		{ID: "win-1", DoctorID: "doc-1", StartTime: time.Now().UTC()},
		{ID: "win-2", DoctorID: "doc-1", StartTime: time.Now().UTC()},
		{ID: "win-3", DoctorID: "doc-2", StartTime: time.Now().UTC()},
	}

	count, err := fixture.usecase.DeleteAllForDoctor(ctx, "doc-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, fixture.windows.windows, 1, "other doctors' windows stay")
}
