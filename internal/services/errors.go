package services

import (
	"errors"

	"lrkr/internal/repos"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidStock      = errors.New("invalid stock")
	ErrNotFound          = repos.ErrNotFound
)

// InputError carries a message that is safe to show the caller. Kind is one
// of the sentinel errors above so callers can match with errors.Is.
type InputError struct {
	Kind error
	Msg  string
}

func (e *InputError) Error() string { return e.Msg }
func (e *InputError) Unwrap() error { return e.Kind }

func invalid(kind error, msg string) error { return &InputError{Kind: kind, Msg: msg} }

// stampLayout keeps created_at columns sortable as text.
const stampLayout = "2006-01-02T15:04:05.000Z07:00"
