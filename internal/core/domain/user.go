package domain

import "time"

// Role is the closed set of account roles. Authorization decisions are made
// on this value alone.
type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a raw role string to a Role. An empty string defaults to
// student, matching the registration contract; any other unrecognised value
// is rejected at the boundary rather than silently defaulted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAlumni, RoleAdmin:
		return Role(s), nil
	case "":
		return RoleStudent, nil
	default:
		return "", ErrInvalidRole
	}
}

// User models a registered account. PasswordHash never crosses the API
// boundary.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the role-specific record created alongside every user. Only the
// fields relevant to the user's role are populated.
type Profile struct {
	UserID         string `json:"user_id"`
	Role           Role   `json:"role"`
	EnrollmentYear int    `json:"enrollment_year,omitempty"`
	Major          string `json:"major,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
	CurrentJob     string `json:"current_job,omitempty"`
	Department     string `json:"department,omitempty"`
}

// DefaultProfile builds the profile inserted with a freshly registered user.
func DefaultProfile(userID string, role Role, now time.Time) *Profile {
	p := &Profile{UserID: userID, Role: role}
	switch role {
	case RoleStudent:
		p.EnrollmentYear = now.Year()
	case RoleAlumni:
		p.GraduationYear = now.Year() - 1
	}
	return p
}
