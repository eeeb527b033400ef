package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lrkr/internal/domain"
	"lrkr/internal/events"
	"lrkr/internal/repos"
	"lrkr/internal/validate"
)

const (
	msgMissingFields = "Missing required fields."
	msgBadEmail      = "Invalid email format."
	msgBadRating     = "Rating must be between 1 and 5."
)

type SubmissionService struct {
	Repo   *repos.SubmissionRepo
	Events events.Publisher
	Now    func() time.Time
}

func NewSubmissionService(repo *repos.SubmissionRepo, pub events.Publisher) *SubmissionService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &SubmissionService{Repo: repo, Events: pub, Now: time.Now}
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type FeedbackInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  *int   `json:"rating"`
	Message string `json:"message"`
}

// SubmitContact stores a contact form message with status new and returns its id.
func (s *SubmissionService) SubmitContact(ctx context.Context, in ContactInput) (string, error) {
	if !validate.Required(in.Name, in.Email, in.Subject, in.Message) {
		return "", invalid(ErrInvalidSubmission, msgMissingFields)
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return "", invalid(ErrInvalidSubmission, msgBadEmail)
	}
	sub := domain.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    domain.SubmissionNew,
		CreatedAt: s.Now().UTC().Format(stampLayout),
	}
	if err := s.Repo.CreateContact(ctx, sub); err != nil {
		return "", err
	}
	events.Emit(ctx, s.Events, events.SubjectContactSubmitted, sub)
	return sub.ID, nil
}

// SubmitFeedback stores a rating with status new. Email is optional but must
// be well formed when given.
func (s *SubmissionService) SubmitFeedback(ctx context.Context, in FeedbackInput) (string, error) {
	if !validate.Required(in.Name, in.Message) || in.Rating == nil {
		return "", invalid(ErrInvalidSubmission, msgMissingFields)
	}
	if !validate.Rating(*in.Rating) {
		return "", invalid(ErrInvalidSubmission, msgBadRating)
	}
	var email *string
	if validate.Required(in.Email) {
		e, ok := validate.Email(in.Email)
		if !ok {
			return "", invalid(ErrInvalidSubmission, msgBadEmail)
		}
		email = &e
	}
	sub := domain.FeedbackSubmission{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     email,
		Rating:    *in.Rating,
		Message:   in.Message,
		Status:    domain.SubmissionNew,
		CreatedAt: s.Now().UTC().Format(stampLayout),
	}
	if err := s.Repo.CreateFeedback(ctx, sub); err != nil {
		return "", err
	}
	events.Emit(ctx, s.Events, events.SubjectFeedbackSubmitted, sub)
	return sub.ID, nil
}

func (s *SubmissionService) ListContact(ctx context.Context, status string) ([]domain.ContactSubmission, error) {
	return s.Repo.ListContact(ctx, status)
}

func (s *SubmissionService) ListFeedback(ctx context.Context, status string) ([]domain.FeedbackSubmission, error) {
	return s.Repo.ListFeedback(ctx, status)
}

// UpdateStatus moves a submission to status, which must be valid for its kind.
func (s *SubmissionService) UpdateStatus(ctx context.Context, kind, id, status string) error {
	var allowed []string
	switch kind {
	case repos.KindContact:
		allowed = domain.ContactStatuses
	case repos.KindFeedback:
		allowed = domain.FeedbackStatuses
	default:
		return invalid(ErrInvalidSubmission, "Unknown submission kind.")
	}
	if !validate.OneOf(status, allowed) {
		return invalid(ErrInvalidStatus, "Unknown submission status.")
	}
	return s.Repo.UpdateStatus(ctx, kind, id, status)
}
