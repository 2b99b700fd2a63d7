package models

import "time"

// AvailabilityWindow is a contiguous block of time a doctor marks as open for
// scheduling. Windows are stored as UTC instants; all wall-clock math happens
// in the clinic timezone before conversion.
//
// Occupancy is never stored on the window: it is derived from the appointment
// collection at read time. The IsAvailable field remains only for documents
// written by the legacy toggle path and is ignored by the scheduling core.
type AvailabilityWindow struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	DoctorID    string    `bson:"doctor_id" json:"doctor_id"`
	StartTime   time.Time `bson:"start_time" json:"start_time"`
	EndTime     time.Time `bson:"end_time" json:"end_time"`
	IsAvailable bool      `bson:"is_available" json:"-"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Duration returns the window length.
func (w AvailabilityWindow) Duration() time.Duration {
	return w.EndTime.Sub(w.StartTime)
}

// BookableSlot is a derived fixed-duration unit of an availability window.
// It is never persisted; its lifetime is a single query cycle.
type BookableSlot struct {
	ParentWindowID string    `json:"parent_window_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Occupied       bool      `json:"occupied"`
	AppointmentID  string    `json:"appointment_id,omitempty"`
	PatientID      string    `json:"patient_id,omitempty"`
}
