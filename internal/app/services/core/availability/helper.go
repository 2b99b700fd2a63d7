package availability

import (
	"time"

	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// GenerateWindows expands a date range, weekday selection and daily wall-clock
// window into one AvailabilityWindow per matching calendar day. Weekday
// numbering follows time.Weekday (0=Sunday..6=Saturday). All wall-clock math
// happens in loc; emitted instants are UTC. The function is pure; callers
// validate inputs and persist the result.
func GenerateWindows(doctorID string, startDay, endDay time.Time, weekdays map[time.Weekday]bool, startH, startM, endH, endM int, loc *time.Location) []models.AvailabilityWindow {
	var out []models.AvailabilityWindow
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if !weekdays[day.In(loc).Weekday()] {
			continue
		}
		start := utils.AtClock(day, startH, startM, loc)
		end := utils.AtClock(day, endH, endM, loc)
		out = append(out, models.AvailabilityWindow{
			DoctorID:  doctorID,
			StartTime: start.UTC(),
			EndTime:   end.UTC(),
		})
	}
	return out
}

// SplitWindow tiles the window left-to-right into fixed-length bookable units.
// A trailing remainder shorter than unitMinutes is dropped, never emitted as a
// short slot. A window shorter than one unit yields nothing.
func SplitWindow(window models.AvailabilityWindow, unitMinutes int) []models.BookableSlot {
	if unitMinutes <= 0 {
		return nil
	}
	unit := time.Duration(unitMinutes) * time.Minute
	var out []models.BookableSlot
	for t := window.StartTime; !t.Add(unit).After(window.EndTime); t = t.Add(unit) {
		out = append(out, models.BookableSlot{
			ParentWindowID: window.ID,
			StartTime:      t,
			EndTime:        t.Add(unit),
		})
	}
	return out
}

// ResolveOccupancy marks each candidate slot occupied when a non-cancelled
// appointment's start falls within the matching tolerance of the slot start.
// Exact equality is the primary match path; the tolerance absorbs rounding
// introduced by storage formats. Candidate order is preserved.
//
// At most one appointment should match a slot. When more than one does, the
// first by stored order wins and the anomaly is logged.
func ResolveOccupancy(slots []models.BookableSlot, appointments []models.Appointment, log *zap.Logger) []models.BookableSlot {
	tolerance := time.Duration(constvars.OccupancyToleranceMinutes) * time.Minute
	out := make([]models.BookableSlot, 0, len(slots))
	for _, slot := range slots {
		matches := 0
		for _, appointment := range appointments {
			if appointment.IsCancelled() {
				continue
			}
			diff := appointment.StartTime.Sub(slot.StartTime)
			if diff < 0 {
				diff = -diff
			}
			if diff > tolerance {
				continue
			}
			matches++
			if matches == 1 {
				slot.Occupied = true
				slot.AppointmentID = appointment.ID
				slot.PatientID = appointment.PatientID
			}
		}
		if matches > 1 {
			log.Warn("ResolveOccupancy multiple appointments match one slot",
				zap.Time(constvars.LoggingSlotStartKey, slot.StartTime),
				zap.String(constvars.LoggingAppointmentIDKey, slot.AppointmentID),
				zap.Int("match_count", matches),
			)
		}
		out = append(out, slot)
	}
	return out
}
