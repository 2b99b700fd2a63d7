package requests

// BulkAvailability generates one window per matching weekday over a date
// range. Weekdays use 0=Sunday..6=Saturday.
type BulkAvailability struct {
	DoctorID   string `json:"doctor_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Weekdays   []int  `json:"weekdays" validate:"required,min=1,dive,gte=0,lte=6"`
	DailyStart string `json:"daily_start" validate:"required"`
	DailyEnd   string `json:"daily_end" validate:"required"`
}

// SingleAvailability creates one ad-hoc window.
type SingleAvailability struct {
	DoctorID  string `json:"doctor_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}
