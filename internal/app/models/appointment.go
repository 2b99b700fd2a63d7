package models

import (
	"appointmed-service/internal/pkg/constvars"
	"time"
)

// Appointment is a booked slot. DoctorID and StartTime are set once at
// creation and never mutated; rescheduling is cancel + recreate. The
// (doctor_id, start_time) pair is guarded by a unique partial index over
// non-cancelled statuses, which is the authoritative double-booking guard.
type Appointment struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	DoctorID        string    `bson:"doctor_id" json:"doctor_id"`
	PatientID       string    `bson:"patient_id" json:"patient_id"`
	StartTime       time.Time `bson:"start_time" json:"start_time"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Status          string    `bson:"status" json:"status"`
	Specialty       string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// EndTime returns the exclusive end of the appointment interval.
func (a Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsCancelled reports whether the appointment no longer occupies its slot.
func (a Appointment) IsCancelled() bool {
	return a.Status == constvars.AppointmentStatusCancelled
}

// allowedStatusTransitions lists the valid next statuses per current status.
// Completed and cancelled are terminal.
var allowedStatusTransitions = map[string][]string{
	constvars.AppointmentStatusScheduled: {constvars.AppointmentStatusConfirmed, constvars.AppointmentStatusCancelled, constvars.AppointmentStatusCompleted},
	constvars.AppointmentStatusConfirmed: {constvars.AppointmentStatusCancelled, constvars.AppointmentStatusCompleted},
}

// CanTransitionTo reports whether the appointment status may move to next.
func (a Appointment) CanTransitionTo(next string) bool {
	for _, allowed := range allowedStatusTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
