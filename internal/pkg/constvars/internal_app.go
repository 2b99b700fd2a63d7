package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_UID_KEY                  ContextKey = "uid"
	CONTEXT_ROLE_KEY                 ContextKey = "role"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

// Known role assignments. Roles are resolved exclusively from the role
// assignment collection; there is no fallback identity check.
const (
	RoleDoctor  = "Doctor"
	RolePatient = "Patient"
	RoleAdmin   = "Admin"
)

const (
	MongoCollectionAvailabilityWindows = "availability_windows"
	MongoCollectionAppointments        = "appointments"
	MongoCollectionPatients            = "patients"
	MongoCollectionDoctors             = "doctors"
	MongoCollectionRoleAssignments     = "role_assignments"
	MongoCollectionSentReminders       = "sent_reminders"
)

// Appointment statuses.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

// Reminder lead-time labels used as part of the sent-reminder ledger key.
const (
	ReminderLead48h = "48h"
	ReminderLead24h = "24h"
	ReminderLead4h  = "4h"
)

// Scheduling rules shared by every creation path.
const (
	SlotUnitMinutes           = 60
	MinWindowDurationMinutes  = 60
	OccupancyToleranceMinutes = 1
)

const (
	AppPaginationUrlFormat = "%s?page=%d&pageSize=%d"
	AppDefaultPageSize     = 20
	AppMaxPageSize         = 100
)
