package appointments

import (
	"fmt"
	"time"

	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/dto/responses"
)

const confirmationTimeLayout = "Monday, 02 Jan 2006 at 15:04"

func buildPatientConfirmationMessage(doctorName string, start time.Time) string {
	return fmt.Sprintf(
		"Your appointment with %s is booked for %s. Reply CANCEL if you can no longer attend.",
		doctorName, start.Format(confirmationTimeLayout),
	)
}

func buildDoctorConfirmationMessage(patientName string, start time.Time) string {
	return fmt.Sprintf(
		"New appointment: %s on %s.",
		patientName, start.Format(confirmationTimeLayout),
	)
}

func buildAppointmentResponse(appointment *models.Appointment, doctor *models.Doctor, patient *models.Patient) *responses.Appointment {
	response := &responses.Appointment{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		StartTime:       appointment.StartTime,
		DurationMinutes: appointment.DurationMinutes,
		Status:          appointment.Status,
		Specialty:       appointment.Specialty,
		Notes:           appointment.Notes,
	}
	if doctor != nil {
		response.DoctorName = doctor.FullName
	}
	if patient != nil {
		response.PatientName = patient.FullName
	}
	return response
}

func buildAppointmentListResponse(appointments []models.Appointment) []responses.Appointment {
	out := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		out = append(out, *buildAppointmentResponse(&appointments[i], nil, nil))
	}
	return out
}
