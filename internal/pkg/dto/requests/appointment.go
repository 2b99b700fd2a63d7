package requests

// BookAppointment books a previously-offered free slot. Either PatientID
// references an existing patient, or NewPatient carries the identity to
// create; exactly one of the two must be present.
type BookAppointment struct {
	DoctorID   string      `json:"doctor_id" validate:"required"`
	PatientID  string      `json:"patient_id,omitempty"`
	NewPatient *NewPatient `json:"new_patient,omitempty"`
	SlotStart  string      `json:"slot_start" validate:"required"`
	SlotEnd    string      `json:"slot_end" validate:"required"`
	Specialty  string      `json:"specialty,omitempty"`
	Notes      string      `json:"notes,omitempty"`
}

// NewPatient is the identity payload for booking on behalf of a patient not
// yet registered. NationalID is the cedula checked for uniqueness.
type NewPatient struct {
	NationalID string `json:"national_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"required,phone_number"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateAppointmentStatus moves an appointment through its status lifecycle.
type UpdateAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}
