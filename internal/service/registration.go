package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
	"github.com/oaltun/fief/internal/ports"
)

// RegistrationServiceOptions groups dependencies for RegistrationService.
type RegistrationServiceOptions struct {
	Users  ports.UserRepository
	Policy ports.PasswordPolicy

	// BcryptCost overrides the hashing cost; zero means bcrypt.DefaultCost.
	BcryptCost int
}

// RegistrationService validates and creates user accounts under a tenant.
// Uniqueness is enforced by the storage layer atomically with persistence;
// this service only remaps the constraint violation into the domain error.
type RegistrationService struct {
	users  ports.UserRepository
	policy ports.PasswordPolicy
	cost   int
}

// NewRegistrationService constructs a new RegistrationService.
func NewRegistrationService(opts RegistrationServiceOptions) *RegistrationService {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &RegistrationService{
		users:  opts.Users,
		policy: opts.Policy,
		cost:   cost,
	}
}

// Register validates the request and creates the user. Failure modes:
//   - Validation AppError on the email field for a malformed address
//   - Validation AppError on the password field when the policy rejects it
//   - Conflict AppError on the email field when an account with the same
//     email already exists within the tenant
//
// On success exactly one user is durably created; on any failure, none.
func (s *RegistrationService) Register(
	ctx context.Context,
	tenant *model.Tenant,
	req model.RegisterRequest,
) (*model.User, error) {
	if tenant == nil {
		return nil, apperrors.Internal("registration requires a resolved tenant")
	}
	if !tenant.RegistrationAllowed {
		return nil, apperrors.Validation("Registration is disabled for this tenant.")
	}

	email := model.NormalizeEmail(req.Email)
	if err := model.ValidateEmail(email); err != nil {
		return nil, apperrors.ValidationField(model.FieldEmail, err.Error())
	}

	if err := s.policy.Validate(ctx, req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.CreateUserParams{
		TenantID:       tenant.ID,
		Email:          email,
		HashedPassword: string(hash),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
	})
	if err != nil {
		// The unique index on (tenant_id, lower(email)) closed the race; remap
		// the storage-level conflict into the domain error.
		if apperrors.IsConflict(err) {
			return nil, apperrors.ConflictField(
				model.FieldEmail,
				"A user with the same email address already exists.",
			)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}
