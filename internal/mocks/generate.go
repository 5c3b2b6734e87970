// Package mocks provides mock implementations for testing the fief registration flow.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mock for TenantRepository interface from internal/ports.
// This creates MockTenantRepository with methods for all TenantRepository interface methods:
// GetBySlug, GetDefault, GetByID
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tenant_repository_mock.go github.com/oaltun/fief/internal/ports TenantRepository

// Generate mock for UserRepository interface from internal/ports.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByEmail, GetByID
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/oaltun/fief/internal/ports UserRepository

// Generate mock for PasswordPolicy interface from internal/ports.
// This creates MockPasswordPolicy with methods for all PasswordPolicy interface methods:
// Validate
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=password_policy_mock.go github.com/oaltun/fief/internal/ports PasswordPolicy

// Generate mock for LoginSessionStore interface from internal/ports.
// This creates MockLoginSessionStore with methods for all LoginSessionStore interface methods:
// Get, Create, Advance, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=login_session_store_mock.go github.com/oaltun/fief/internal/ports LoginSessionStore

// Generate mock for TokenSigner interface from internal/ports.
// This creates MockTokenSigner with methods for all TokenSigner interface methods:
// Sign, Verify
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=token_signer_mock.go github.com/oaltun/fief/internal/ports TokenSigner
