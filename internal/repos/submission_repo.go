package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lrkr/internal/domain"
)

type SubmissionRepo struct{ db *sqlx.DB }

func NewSubmissionRepo(db *sqlx.DB) *SubmissionRepo { return &SubmissionRepo{db: db} }

// Submission kinds, also the table name prefixes.
const (
	KindContact  = "contact"
	KindFeedback = "feedback"
)

func (r *SubmissionRepo) CreateContact(ctx context.Context, s domain.ContactSubmission) error {
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO contact_submissions(id, name, email, subject, message, status, created_at)
	  VALUES(:id, :name, :email, :subject, :message, :status, :created_at)
	`, s)
	return err
}

func (r *SubmissionRepo) CreateFeedback(ctx context.Context, s domain.FeedbackSubmission) error {
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO feedback_submissions(id, name, email, rating, message, status, created_at)
	  VALUES(:id, :name, :email, :rating, :message, :status, :created_at)
	`, s)
	return err
}

// ListContact returns contact submissions, newest first. An empty status lists all.
func (r *SubmissionRepo) ListContact(ctx context.Context, status string) ([]domain.ContactSubmission, error) {
	out := []domain.ContactSubmission{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, name, email, subject, message, status, created_at
		FROM contact_submissions
		WHERE (? = '' OR status = ?)
		ORDER BY created_at DESC
	`, status, status)
	return out, err
}

func (r *SubmissionRepo) ListFeedback(ctx context.Context, status string) ([]domain.FeedbackSubmission, error) {
	out := []domain.FeedbackSubmission{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, name, email, rating, message, status, created_at
		FROM feedback_submissions
		WHERE (? = '' OR status = ?)
		ORDER BY created_at DESC
	`, status, status)
	return out, err
}

// UpdateStatus sets the status of one submission of the given kind.
func (r *SubmissionRepo) UpdateStatus(ctx context.Context, kind, id, status string) error {
	var table string
	switch kind {
	case KindContact:
		table = "contact_submissions"
	case KindFeedback:
		table = "feedback_submissions"
	default:
		return fmt.Errorf("submission kind %q: %w", kind, ErrNotFound)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE `+table+` SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s submission %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
