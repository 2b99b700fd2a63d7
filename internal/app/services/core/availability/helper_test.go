package availability

import (
	"testing"
	"time"

	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func day(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func TestGenerateWindows(t *testing.T) {
	loc := time.UTC

	t.Run("one window per matching weekday over one week", func(t *testing.T) {
		// 2024-01-01 is a Monday
		weekdays := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
		windows := GenerateWindows("doc-1", day(2024, time.January, 1, loc), day(2024, time.January, 7, loc), weekdays, 9, 0, 12, 0, loc)

		assert.Len(t, windows, 3, "Mon, Wed and Fri each produce one window")
		assert.Equal(t, time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), windows[0].StartTime)
		assert.Equal(t, time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC), windows[1].StartTime)
		assert.Equal(t, time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC), windows[2].StartTime)
		for _, w := range windows {
			assert.Equal(t, 3*time.Hour, w.Duration())
			assert.Equal(t, "doc-1", w.DoctorID)
		}
	})

	t.Run("every window stays within the requested range and weekday set", func(t *testing.T) {
		weekdays := map[time.Weekday]bool{time.Tuesday: true, time.Saturday: true}
		start := day(2024, time.March, 1, loc)
		end := day(2024, time.March, 31, loc)
		windows := GenerateWindows("doc-1", start, end, weekdays, 8, 30, 17, 30, loc)

		for _, w := range windows {
			assert.False(t, w.StartTime.Before(start), "window must not start before the range")
			assert.False(t, w.StartTime.After(end.Add(24*time.Hour)), "window must not start after the range")
			assert.True(t, weekdays[w.StartTime.Weekday()], "window weekday must be selected")
			assert.Equal(t, 9*time.Hour, w.Duration())
		}
	})

	t.Run("inclusive boundary days are emitted", func(t *testing.T) {
		weekdays := map[time.Weekday]bool{time.Monday: true}
		windows := GenerateWindows("doc-1", day(2024, time.January, 1, loc), day(2024, time.January, 1, loc), weekdays, 9, 0, 10, 0, loc)
		assert.Len(t, windows, 1)
	})

	t.Run("no matching weekday yields nothing", func(t *testing.T) {
		weekdays := map[time.Weekday]bool{time.Sunday: true}
		windows := GenerateWindows("doc-1", day(2024, time.January, 1, loc), day(2024, time.January, 6, loc), weekdays, 9, 0, 10, 0, loc)
		assert.Empty(t, windows)
	})

	t.Run("wall clock math happens in the clinic timezone", func(t *testing.T) {
		jakarta, err := time.LoadLocation("Asia/Jakarta")
		assert.NoError(t, err)

		weekdays := map[time.Weekday]bool{time.Monday: true}
		windows := GenerateWindows("doc-1", day(2024, time.January, 1, jakarta), day(2024, time.January, 1, jakarta), weekdays, 9, 0, 12, 0, jakarta)

		assert.Len(t, windows, 1)
		// 09:00 in UTC+7 is 02:00 UTC
		assert.Equal(t, time.Date(2024, time.January, 1, 2, 0, 0, 0, time.UTC), windows[0].StartTime)
		assert.Equal(t, time.UTC, windows[0].StartTime.Location())
	})
}

func TestSplitWindow(t *testing.T) {
	window := func(start, end time.Time) models.AvailabilityWindow {
		return models.AvailabilityWindow{ID: "win-1", DoctorID: "doc-1", StartTime: start, EndTime: end}
	}

	t.Run("three hour window tiles into three slots", func(t *testing.T) {
		w := window(
			time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
		)
		slots := SplitWindow(w, 60)

		assert.Len(t, slots, 3)
		assert.Equal(t, time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
		assert.Equal(t, time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), slots[1].StartTime)
		assert.Equal(t, time.Date(2024, time.January, 1, 11, 0, 0, 0, time.UTC), slots[2].StartTime)
		for i, slot := range slots {
			assert.Equal(t, time.Hour, slot.EndTime.Sub(slot.StartTime))
			assert.Equal(t, "win-1", slot.ParentWindowID)
			if i > 0 {
				assert.Equal(t, slots[i-1].EndTime, slot.StartTime, "slots must be contiguous")
			}
		}
	})

	t.Run("trailing remainder shorter than a unit is dropped", func(t *testing.T) {
		w := window(
			time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC),
		)
		slots := SplitWindow(w, 60)
		assert.Len(t, slots, 1, "90 minutes holds exactly one 60 minute unit")
	})

	t.Run("window shorter than a unit yields nothing", func(t *testing.T) {
		w := window(
			time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 1, 9, 45, 0, 0, time.UTC),
		)
		assert.Empty(t, SplitWindow(w, 60))
	})

	t.Run("splitting twice yields identical output", func(t *testing.T) {
		w := window(
			time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 1, 16, 0, 0, 0, time.UTC),
		)
		assert.Equal(t, SplitWindow(w, 60), SplitWindow(w, 60))
	})

	t.Run("emits floor of duration over unit", func(t *testing.T) {
		w := window(
			time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 1, 16, 59, 0, 0, time.UTC),
		)
		assert.Len(t, SplitWindow(w, 60), 7)
	})
}

func TestResolveOccupancy(t *testing.T) {
	log := zap.NewNop()
	slotAt := func(h int) models.BookableSlot {
		return models.BookableSlot{
			ParentWindowID: "win-1",
			StartTime:      time.Date(2024, time.January, 1, h, 0, 0, 0, time.UTC),
			EndTime:        time.Date(2024, time.January, 1, h+1, 0, 0, 0, time.UTC),
		}
	}
	appointmentAt := func(id string, start time.Time, status string) models.Appointment {
		return models.Appointment{
			ID:              id,
			DoctorID:        "doc-1",
			PatientID:       "pat-" + id,
			StartTime:       start,
			DurationMinutes: 60,
			Status:          status,
		}
	}

	t.Run("only the matching slot is occupied", func(t *testing.T) {
		slots := []models.BookableSlot{slotAt(9), slotAt(10), slotAt(11)}
		appointments := []models.Appointment{
			appointmentAt("a1", time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), constvars.AppointmentStatusScheduled),
		}

		resolved := ResolveOccupancy(slots, appointments, log)

		assert.False(t, resolved[0].Occupied)
		assert.True(t, resolved[1].Occupied)
		assert.False(t, resolved[2].Occupied)
		assert.Equal(t, "a1", resolved[1].AppointmentID)
		assert.Equal(t, "pat-a1", resolved[1].PatientID)
	})

	t.Run("cancelled appointments never occupy a slot", func(t *testing.T) {
		slots := []models.BookableSlot{slotAt(9)}
		appointments := []models.Appointment{
			appointmentAt("a1", slots[0].StartTime, constvars.AppointmentStatusCancelled),
		}

		resolved := ResolveOccupancy(slots, appointments, log)
		assert.False(t, resolved[0].Occupied)
	})

	t.Run("start within one minute tolerance matches", func(t *testing.T) {
		slots := []models.BookableSlot{slotAt(9)}
		appointments := []models.Appointment{
			appointmentAt("a1", slots[0].StartTime.Add(time.Minute), constvars.AppointmentStatusScheduled),
		}

		resolved := ResolveOccupancy(slots, appointments, log)
		assert.True(t, resolved[0].Occupied, "a one minute skew still counts as the same slot")
	})

	t.Run("start beyond the tolerance does not match", func(t *testing.T) {
		slots := []models.BookableSlot{slotAt(9)}
		appointments := []models.Appointment{
			appointmentAt("a1", slots[0].StartTime.Add(time.Minute+time.Second), constvars.AppointmentStatusScheduled),
		}

		resolved := ResolveOccupancy(slots, appointments, log)
		assert.False(t, resolved[0].Occupied)
	})

	t.Run("first appointment by stored order wins on a data anomaly", func(t *testing.T) {
		slots := []models.BookableSlot{slotAt(9)}
		appointments := []models.Appointment{
			appointmentAt("a1", slots[0].StartTime, constvars.AppointmentStatusScheduled),
			appointmentAt("a2", slots[0].StartTime, constvars.AppointmentStatusScheduled),
		}

		resolved := ResolveOccupancy(slots, appointments, log)
		assert.True(t, resolved[0].Occupied)
		assert.Equal(t, "a1", resolved[0].AppointmentID)
	})

	t.Run("candidate order is preserved", func(t *testing.T) {
		slots := []models.BookableSlot{slotAt(11), slotAt(9), slotAt(10)}
		resolved := ResolveOccupancy(slots, nil, log)

		assert.Len(t, resolved, 3)
		for i := range slots {
			assert.Equal(t, slots[i].StartTime, resolved[i].StartTime)
		}
	})
}
