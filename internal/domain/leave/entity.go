package leave

import (
	"math"
	"time"
)

// Type is a leave category. Each category has its own balance bucket per user.
type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
	TypeAnnual Type = "annual"
)

// Types lists every valid leave category.
var Types = []Type{TypeSick, TypeCasual, TypeAnnual}

func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	RequesterID string
	Type        Type

	StartDate time.Time
	EndDate   time.Time

	// NumberOfDays counts both endpoints, so a single-day leave is 1.
	NumberOfDays int

	Reason   string
	Status   Status
	Comments *string

	ReviewerID *string
	AppliedAt  time.Time
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Requester details joined in for admin listings
	RequesterName       *string
	RequesterEmail      *string
	RequesterDepartment *string
}

// DaysInclusive returns the number of calendar days covered by [start, end],
// counting both endpoints. The difference is taken as an absolute value, so an
// inverted range still yields a positive count.
func DaysInclusive(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// Overlaps reports whether two date ranges share at least one calendar day.
// Bounds are inclusive: ranges that merely touch count as overlapping.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
