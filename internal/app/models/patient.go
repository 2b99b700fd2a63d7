package models

import "time"

// Patient identity record. NationalID (cedula) is unique across the
// collection; the index is the duplicate-identity guard on creation.
type Patient struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	NationalID string    `bson:"national_id" json:"national_id"`
	FullName   string    `bson:"full_name" json:"full_name"`
	Phone      string    `bson:"phone" json:"phone"`
	Email      string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
