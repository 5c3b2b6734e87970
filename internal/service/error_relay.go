package service

import (
	"errors"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
)

// ErrorRelay converts a recoverable registration failure plus the originally
// submitted form into a renderable payload. It is a pure mapping: it never
// touches the login session store, so the active session stays valid and the
// visitor can retry within the same flow.
type ErrorRelay struct{}

// NewErrorRelay constructs a new ErrorRelay.
func NewErrorRelay() *ErrorRelay {
	return &ErrorRelay{}
}

// Recoverable reports whether the error is a registration failure the form
// can absorb. Everything else is fatal for the request.
func (ErrorRelay) Recoverable(err error) bool {
	return apperrors.IsConflict(err) || apperrors.IsValidation(err)
}

// Relay builds the re-render payload: every submitted field except the
// password, plus a field-scoped message keyed by the failure variant. The
// form data arrives already parsed; the request body is never read a second
// time.
func (r ErrorRelay) Relay(
	err error,
	form model.RegisterRequest,
	tenant *model.Tenant,
) model.RegisterPage {
	page := model.RegisterPage{
		Tenant:      tenant,
		Form:        form.WithoutPassword(),
		FieldErrors: map[string]string{},
	}

	field := apperrors.GetField(err)
	if field == "" {
		// A recoverable failure without a field attribution lands on the form
		// itself rather than being dropped.
		field = model.FieldEmail
		if apperrors.IsValidation(err) {
			field = model.FieldPassword
		}
	}

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	page.FieldErrors[field] = message

	return page
}
