package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingDoctorIDKey      = "doctor_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingWindowIDKey      = "window_id"
	LoggingSlotStartKey     = "slot_start"
	LoggingRedisKey         = "redis_key"
	LoggingQueueNameKey     = "queue_name"
	LoggingLeadTimeKey      = "lead_time"

	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
)
