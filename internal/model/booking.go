package model

import "time"

// ResourceType distinguishes what a booking reserves.
type ResourceType string

const (
	ResourceMachine ResourceType = "machine"
	ResourceFaculty ResourceType = "faculty"
)

// ResourceBooking is a confirmed reservation. Bookings are immutable once
// created; only a full data reset removes them.
type ResourceBooking struct {
	ID           string       `json:"id"`
	ResourceID   string       `json:"resourceId"`
	ResourceType ResourceType `json:"resourceType"`
	StartTime    time.Time    `json:"startTime"`
	EndTime      time.Time    `json:"endTime"`
	StudentID    string       `json:"studentId"`
	IsAnonymous  bool         `json:"isAnonymous"`
}

// FacultySlot is a bookable consultation window with a faculty member.
type FacultySlot struct {
	ID          string `json:"id"`
	FacultyName string `json:"facultyName"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsBooked    bool   `json:"isBooked"`
}
