package models

import "time"

// Attendance records whether a registered participant attended. At most one
// row exists per registration; repeated marks update it in place.
type Attendance struct {
	ID             int64     `json:"id"`
	RegistrationID int64     `json:"registration_id"`
	Attended       bool      `json:"attended"`
	AttendanceDate time.Time `json:"attendance_date"`
	CreatedAt      time.Time `json:"created_at"`
}
