package models

import "time"

// Doctor identity record, referenced by availability windows and appointments.
type Doctor struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	FullName  string    `bson:"full_name" json:"full_name"`
	Specialty string    `bson:"specialty" json:"specialty"`
	Phone     string    `bson:"phone" json:"phone"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
