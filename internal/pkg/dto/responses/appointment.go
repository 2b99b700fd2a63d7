package responses

import "time"

type Appointment struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	PatientID       string    `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Specialty       string    `json:"specialty,omitempty"`
	Notes           string    `json:"notes,omitempty"`
}

type Doctor struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone,omitempty"`
}
