package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/oaltun/fief/config"
	redisadapter "github.com/oaltun/fief/internal/adapters/redis"
	"github.com/oaltun/fief/internal/adapters/token"
	"github.com/oaltun/fief/internal/data"
	"github.com/oaltun/fief/internal/service"
)

// ServiceDeps contains the infrastructure dependencies the service container needs.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Resolver     *service.TenantResolver
	Registration *service.RegistrationService
	Flow         *service.FlowEngine
	Sessions     *redisadapter.LoginSessionStore
	Signer       *token.JWTSigner
}

// NewServices wires repositories, adapters, and services.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}

	tenantRepo := data.NewTenantRepo(deps.DB)
	userRepo := data.NewUserRepo(deps.DB)
	sessions := redisadapter.NewLoginSessionStore(deps.RedisClient)

	signer, err := token.NewJWTSigner([]byte(deps.Config.Session.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("create token signer: %w", err)
	}

	resolver := service.NewTenantResolver(tenantRepo)
	registration := service.NewRegistrationService(service.RegistrationServiceOptions{
		Users:  userRepo,
		Policy: service.NewMinimumPasswordPolicy(deps.Config.Session.MinPasswordLength),
	})
	flow := service.NewFlowEngine(service.FlowEngineOptions{
		Sessions:      sessions,
		Signer:        signer,
		Logger:        deps.Logger,
		TokenLifetime: deps.Config.Session.TokenLifetime,
	})

	return &ServiceContainer{
		Resolver:     resolver,
		Registration: registration,
		Flow:         flow,
		Sessions:     sessions,
		Signer:       signer,
	}, nil
}
