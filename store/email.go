package store

// EmailSummary holds the AI-generated summary for an email.
// Empty until the summarizer has run at least once.
type EmailSummary struct {
	KeyPoints        []string `json:"key_points"`
	SuggestedActions []string `json:"suggested_actions"`
}

// ThreadMessage is a prior message stub in an email thread.
type ThreadMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
	Time    string `json:"time"`
}

// Email is a persisted inbox email.
type Email struct {
	ID        int32
	UID       string
	CreatedTs int64

	Sender      string
	SenderEmail string
	Subject     string
	Content     string
	Preview     string
	Deadline    string
	Type        string
	TimeLabel   string

	// Urgency always reflects the most recent scoring pass (0-100).
	Urgency   int32
	AISummary *EmailSummary
	Thread    []ThreadMessage
}

// FindEmail is the filter for listing emails.
type FindEmail struct {
	ID  *int32
	UID *string

	// Limit restricts the number of results (newest first).
	Limit *int
}

// UpdateEmail is a partial, column-scoped email update. Nil fields are left
// untouched so concurrent updates to disjoint fields never clobber each other.
type UpdateEmail struct {
	ID int32

	Urgency   *int32
	Deadline  *string
	Type      *string
	AISummary *EmailSummary
	Thread    *[]ThreadMessage
}

// DeleteEmail identifies an email to delete.
type DeleteEmail struct {
	ID int32
}
