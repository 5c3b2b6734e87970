package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Resolver     TenantResolverInterface
	Sessions     LoginSessionGetter
	Registration RegistrationServiceInterface
	Flow         FlowEngineInterface
	Renderer     Renderer

	// LoginSessionCookie carries the login session identifier between flow steps.
	LoginSessionCookie string
	// TokenCookie carries the issued session token.
	TokenCookie string

	CookieDomain string
	SecureCookie bool
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registerHandlers := NewRegisterHandlers(RegisterHandlersOptions{
		Registration: services.Registration,
		Flow:         services.Flow,
		Renderer:     services.Renderer,
		Cookies: CookieParams{
			Domain: services.CookieDomain,
			Secure: services.SecureCookie,
		},
		TokenCookie: services.TokenCookie,
		Logger:      logger,
	})

	flowContext := RequireFlowContext(FlowContextOptions{
		Resolver: services.Resolver,
		Sessions: services.Sessions,
		Cookie:   services.LoginSessionCookie,
		Logger:   logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler)

	// The default tenant serves the root path; sub-tenants are addressed by
	// their slug segment. Both route shapes share the same handlers, with the
	// tenant resolved from the path by the flow-context middleware.
	mux.Handle("GET /register", flowContext(http.HandlerFunc(registerHandlers.GetRegister)))
	mux.Handle("POST /register", flowContext(http.HandlerFunc(registerHandlers.PostRegister)))
	mux.Handle("GET /{tenant}/register", flowContext(http.HandlerFunc(registerHandlers.GetRegister)))
	mux.Handle("POST /{tenant}/register", flowContext(http.HandlerFunc(registerHandlers.PostRegister)))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
