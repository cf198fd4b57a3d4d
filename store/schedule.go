package store

// Schedule is a persisted calendar event.
//
// Double-booking is permitted: two events may share the same time slot.
// Conflict detection is a product decision deferred to a later release.
type Schedule struct {
	ID        int32
	UID       string
	CreatedTs int64

	Title       string
	Description string
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	Date        string // "YYYY-MM-DD"
}

// FindSchedule is the filter for listing schedule events.
type FindSchedule struct {
	ID   *int32
	UID  *string
	Date *string
}

// DeleteSchedule identifies a schedule event to delete.
type DeleteSchedule struct {
	ID int32
}
