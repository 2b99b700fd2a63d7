package responses

import "time"

type AvailabilityWindow struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// BulkAvailabilityOutcome reports the per-day result of bulk generation.
// Individual insert failures do not abort the batch; failed days are listed
// so the caller can retry them.
type BulkAvailabilityOutcome struct {
	Created    []AvailabilityWindow `json:"created"`
	FailedDays []string             `json:"failed_days,omitempty"`
}

// DaySlot is one bookable unit of a doctor's day, with derived occupancy.
type DaySlot struct {
	ParentWindowID string    `json:"parent_window_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Occupied       bool      `json:"occupied"`
	PatientID      string    `json:"patient_id,omitempty"`
}
