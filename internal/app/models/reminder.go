package models

import "time"

// SentReminder is the idempotency ledger entry for reminder dispatch. The
// (appointment_id, lead_time) pair is unique; inserting an existing pair
// means the reminder was already sent for that bucket and must be skipped.
type SentReminder struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	AppointmentID string    `bson:"appointment_id" json:"appointment_id"`
	LeadTime      string    `bson:"lead_time" json:"lead_time"`
	SentAt        time.Time `bson:"sent_at" json:"sent_at"`
}
