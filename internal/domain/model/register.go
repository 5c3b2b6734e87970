package model

// RegisterRequest is the transient input of one registration attempt. The
// password is plaintext at ingestion and is never persisted or echoed back.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"-"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// WithoutPassword returns a copy safe to embed in a re-rendered form payload.
func (r RegisterRequest) WithoutPassword() RegisterRequest {
	r.Password = ""
	return r
}

// RegisterErrorCode tags the outcome of a failed registration attempt.
type RegisterErrorCode string

const (
	RegisterErrorUserAlreadyExists RegisterErrorCode = "user_already_exists"
	RegisterErrorInvalidPassword   RegisterErrorCode = "invalid_password"
)

// Form field names the register error variants attach to.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// RegisterPage is the render instruction produced when a recoverable
// registration failure must re-display the form. It retains everything the
// visitor submitted except the password, plus field-scoped messages. The
// active login session is untouched and reusable.
type RegisterPage struct {
	Tenant      *Tenant           `json:"tenant"`
	Form        RegisterRequest   `json:"form"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}
