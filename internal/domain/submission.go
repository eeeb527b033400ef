package domain

const (
	SubmissionNew      = "new"
	SubmissionRead     = "read"
	SubmissionApproved = "approved"
	SubmissionArchived = "archived"
)

var (
	ContactStatuses  = []string{SubmissionNew, SubmissionRead, SubmissionArchived}
	FeedbackStatuses = []string{SubmissionNew, SubmissionApproved, SubmissionArchived}
)

type ContactSubmission struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Email     string `json:"email" db:"email"`
	Subject   string `json:"subject" db:"subject"`
	Message   string `json:"message" db:"message"`
	Status    string `json:"status" db:"status"`
	CreatedAt string `json:"createdAt" db:"created_at"`
}

type FeedbackSubmission struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Email     *string `json:"email" db:"email"`
	Rating    int     `json:"rating" db:"rating"`
	Message   string  `json:"message" db:"message"`
	Status    string  `json:"status" db:"status"`
	CreatedAt string  `json:"createdAt" db:"created_at"`
}
