package models

import (
	"github.com/jlaasonen/precinct/internal/workflow"
)

// Person is a citizen known to the department, identified by national ID.
type Person struct {
	ID          int64  `db:"id" json:"id"`
	NationalID  string `db:"national_id" json:"national_id"`
	FullName    string `db:"full_name" json:"full_name"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
}

// Member is a sworn member of the department. Every member is also a person.
type Member struct {
	ID          int64         `db:"id" json:"id"`
	PersonID    int64         `db:"person_id" json:"person_id"`
	BadgeNumber string        `db:"badge_number" json:"badge_number"`
	Role        workflow.Role `db:"role" json:"role"`
}

// Actor is the authenticated caller of an operation: always a person,
// sometimes a member. A plain citizen has MemberID zero and role citizen.
type Actor struct {
	PersonID int64
	MemberID int64
	Role     workflow.Role
}

// IsMember reports whether the actor is a sworn member.
func (a Actor) IsMember() bool {
	return a.MemberID != 0
}
