package models

import "time"

// RoleAssignment maps an authenticated uid to a role. Roles come only from
// this collection; there is no implicit fallback (the old admin-by-email
// special case was a migration bug and is intentionally gone).
type RoleAssignment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UID       string    `bson:"uid" json:"uid"`
	Role      string    `bson:"role" json:"role"`
	SubjectID string    `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
