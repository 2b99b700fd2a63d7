package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"min":          "must be at least %s characters long",
	"max":          "maximum at %s characters long",
	"numeric":      "must be a number",
	"len":          "must be %s characters long",
	"oneof":        "must be one of [%s]",
	"gt":           "must be greater than %s",
	"gte":          "must be greater than or equal to %s",
	"lt":           "must be less than %s",
	"lte":          "must be less than or equal to %s",
	"datetime":     "must match the format %s",
	"phone_number": "must be a valid international phone number (e.g. +593987654321)",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process the request"
	ErrClientSomethingWrongWithApplication = "something is wrong with the application, please contact the administrator"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientSlotTaken                     = "this slot was just taken, please pick another one"
	ErrClientPatientIdentityExists         = "a patient with this identity number already exists, search for the existing record instead"
	ErrClientDoctorNotFound                = "doctor not found"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientServerLongRespond             = "server takes too long to respond"
	ErrClientDateRangeInvalid              = "start date must not be after end date"
	ErrClientClockOrderInvalid             = "daily start must be before daily end"
	ErrClientWindowTooShort                = "availability window must be at least 60 minutes"
	ErrClientPatientIdentityRequired       = "either an existing patient id or new patient details are required"
	ErrClientSlotDurationInvalid           = "a bookable slot is exactly 60 minutes"
	ErrClientSlotOutsideAvailability       = "the requested slot is not part of the doctor's availability"
	ErrClientTooManyRequests               = "too many requests, please try again later"
)

// Error messages for developers
const (
	ErrDevValidationFailed            = "request validation failed"
	ErrDevMissingRequestID            = "request id not found in request context"
	ErrDevInvalidRequestPayload       = "invalid request payload"
	ErrDevCannotParseJSON             = "failed to parse JSON body"
	ErrDevCannotMarshalJSON           = "failed to marshal value to JSON"
	ErrDevCannotParseDate             = "failed to parse date value"
	ErrDevDBFailedToFindDocument      = "failed to find document on database"
	ErrDevDBFailedToInsertDocument    = "failed to insert document to database"
	ErrDevDBFailedToUpdateDocument    = "failed to update document on database"
	ErrDevDBFailedToDeleteDocument    = "failed to delete document on database"
	ErrDevDBFailedToIterateDocuments  = "failed to iterate documents from database"
	ErrDevDBStringNotObjectID         = "given string cannot be converted to mongo ObjectID"
	ErrDevDBDuplicateAppointmentSlot  = "appointment insert hit the (doctor_id, start) uniqueness guard"
	ErrDevDBDuplicatePatientIdentity  = "patient insert hit the national id uniqueness guard"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisSetData                = "failed to set data to redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevRedisGetNoData              = "failed to get data from redis with key: %s"
	ErrDevRedisIncrementValue         = "failed to increment value on redis"
	ErrDevRedisUnlock                 = "failed to release redis lock"
	ErrDevRedisExpireKey              = "failed to set expiration on redis key"
	ErrDevRabbitMQPublishMessage      = "failed to publish message to queue: %s"
	ErrDevServerProcess               = "server failed to process the request"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevAuthTokenMissing            = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired   = "authorization token is invalid or expired"
	ErrDevRoleAssignmentMissing       = "no role assignment found for the authenticated user"
	ErrDevSlotOutsideAvailability     = "requested slot does not fall inside any availability window"
	ErrDevSlotAlreadyOccupied         = "requested slot is already occupied by a non-cancelled appointment"
	ErrDevAppointmentStatusTransition = "appointment status transition is not allowed"
	ErrDevWhatsAppRateLimited         = "outbound message quota exhausted for recipient"
)

// Success messages
const (
	SuccessCreateAvailability  = "availability created successfully"
	SuccessDeleteAvailability  = "availability deleted successfully"
	SuccessBookAppointment     = "appointment booked successfully"
	SuccessUpdateAppointment   = "appointment updated successfully"
	SuccessGetData             = "data retrieved successfully"
	SuccessBookedButUnnotified = "appointment booked, but the confirmation message may not have been delivered"
)
