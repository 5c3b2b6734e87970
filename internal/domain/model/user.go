package model

import (
	"errors"
	"strings"
	"time"
)

const maxEmailLen = 320

// User is a persisted account. Email is unique within its tenant,
// case-insensitively, enforced by the storage layer.
type User struct {
	ID             string    `json:"id"         db:"id"`
	TenantID       string    `json:"tenant_id"  db:"tenant_id"`
	Email          string    `json:"email"      db:"email"`
	HashedPassword string    `json:"-"          db:"hashed_password"`
	FirstName      *string   `json:"first_name,omitempty" db:"first_name"`
	LastName       *string   `json:"last_name,omitempty"  db:"last_name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserParams contains the fields the repository needs to persist a new
// user. The password arrives already hashed; the registration service owns
// hashing and policy checks.
type CreateUserParams struct {
	TenantID       string
	Email          string
	HashedPassword string
	FirstName      *string
	LastName       *string
}

func (p *CreateUserParams) Validate() error {
	if strings.TrimSpace(p.TenantID) == "" {
		return errors.New("tenant id is required")
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	if p.HashedPassword == "" {
		return errors.New("hashed password is required")
	}
	return nil
}

// NormalizeEmail trims and lowercases an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail performs shape validation on an email address. Full RFC
// validation is deliberately out of scope; the address only needs to be
// plausible enough to key uniqueness and deliver mail.
func ValidateEmail(email string) error {
	e := strings.TrimSpace(email)
	if e == "" {
		return errors.New("email is required")
	}
	if len(e) > maxEmailLen {
		return errors.New("email is too long")
	}
	at := strings.IndexByte(e, '@')
	if at <= 0 || at == len(e)-1 {
		return errors.New("email is not a valid address")
	}
	if strings.ContainsAny(e, " \t\r\n") {
		return errors.New("email is not a valid address")
	}
	return nil
}
