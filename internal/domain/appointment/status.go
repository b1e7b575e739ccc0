package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

// ActiveStatuses are the states counted by the upcoming and
// projected-earnings queries.
var ActiveStatuses = []Status{StatusScheduled, StatusConfirmed}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusScheduled
}
