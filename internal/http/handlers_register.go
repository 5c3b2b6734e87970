package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
	"github.com/oaltun/fief/internal/service"
)

// RegistrationServiceInterface defines the registration operations the handlers need.
type RegistrationServiceInterface interface {
	Register(ctx context.Context, tenant *model.Tenant, req model.RegisterRequest) (*model.User, error)
}

// FlowEngineInterface defines the flow-continuation operations the handlers need.
type FlowEngineInterface interface {
	CreateSessionToken(
		ctx context.Context,
		tenant *model.Tenant,
		sess *model.LoginSession,
		userID string,
	) (*service.SessionTokenResult, error)
}

// RegisterHandlersOptions groups dependencies for RegisterHandlers.
type RegisterHandlersOptions struct {
	Registration RegistrationServiceInterface
	Flow         FlowEngineInterface
	Relay        *service.ErrorRelay
	Renderer     Renderer
	Cookies      CookieParams
	// TokenCookie is the cookie name carrying the issued session token.
	TokenCookie string
	Logger      *slog.Logger
}

// RegisterHandlers provides HTTP handlers for the registration step of an
// in-progress authentication flow. Both handlers expect the flow-context
// middleware to have resolved the tenant and login session already.
type RegisterHandlers struct {
	registration RegistrationServiceInterface
	flow         FlowEngineInterface
	relay        *service.ErrorRelay
	renderer     Renderer
	cookies      CookieParams
	tokenCookie  string
	logger       *slog.Logger
}

// NewRegisterHandlers constructs RegisterHandlers.
func NewRegisterHandlers(opts RegisterHandlersOptions) *RegisterHandlers {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = JSONRenderer{}
	}
	relay := opts.Relay
	if relay == nil {
		relay = service.NewErrorRelay()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RegisterHandlers{
		registration: opts.Registration,
		flow:         opts.Flow,
		relay:        relay,
		renderer:     renderer,
		cookies:      opts.Cookies,
		tokenCookie:  opts.TokenCookie,
		logger:       logger,
	}
}

// GetRegister renders the registration form for the resolved tenant.
// GET /{tenant}/register.
func (h *RegisterHandlers) GetRegister(w http.ResponseWriter, r *http.Request) {
	tenant, ok := GetTenantFromContext(r.Context())
	if !ok {
		h.missingFlowContext(w, r)
		return
	}
	h.renderer.RenderRegister(w, r, http.StatusOK, model.RegisterPage{Tenant: tenant})
}

// PostRegister handles the registration form submission.
// POST /{tenant}/register.
//
// A recoverable failure (duplicate email, rejected password) re-renders the
// form with the submitted values minus the password; the login session stays
// untouched so the visitor retries within the same flow. Success advances the
// session, attaches the session token, and redirects to the consent step.
func (h *RegisterHandlers) PostRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, okTenant := GetTenantFromContext(ctx)
	sess, okSession := GetLoginSessionFromContext(ctx)
	if !okTenant || !okSession {
		h.missingFlowContext(w, r)
		return
	}

	// A session past its registering stage fails here, before any user record
	// is written; a replay must not leave an orphan account behind.
	if !sess.CanBind() {
		if sess.Stage.Terminal() {
			h.writeFlowError(w, r, apperrors.Consumed("Login session was already consumed"))
		} else {
			h.writeFlowError(w, r, apperrors.InvalidState("login session is not awaiting registration"))
		}
		return
	}

	// The body is parsed exactly once; the error path reuses this form value
	// instead of re-reading the request.
	form, err := parseRegisterForm(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	user, err := h.registration.Register(ctx, tenant, form)
	if err != nil {
		if h.relay.Recoverable(err) {
			page := h.relay.Relay(err, form, tenant)
			h.renderer.RenderRegister(w, r, http.StatusBadRequest, page)
			return
		}
		h.logger.ErrorContext(ctx, "registration failed", "error", err, "tenant_id", tenant.ID)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "registration_failed",
			Err:     errors.New("unable to complete registration"),
		})
		return
	}

	result, err := h.flow.CreateSessionToken(ctx, tenant, sess, user.ID)
	if err != nil {
		h.writeFlowError(w, r, err)
		return
	}

	setSessionTokenCookie(w, h.cookies, h.tokenCookie, result.Token, result.ExpiresAt)
	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}

// writeFlowError maps flow-continuation failures to responses. All of them
// are fatal for the request: no token may be minted on this session.
func (h *RegisterHandlers) writeFlowError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case apperrors.IsConsumed(err):
		// Replay or concurrent duplicate; never retried transparently.
		WriteError(w, ErrorParams{
			Code:    http.StatusConflict,
			ErrCode: "login_session_consumed",
			Err:     errors.New("this authentication attempt already completed"),
		})
	case apperrors.IsInvalidState(err):
		h.logger.ErrorContext(ctx, "flow integrity violation", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "invalid_flow_state",
			Err:     errors.New("the authentication flow is in an unexpected state"),
		})
	default:
		h.logger.ErrorContext(ctx, "session token issuance failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "token_issuance_failed",
			Err:     errors.New("unable to continue the authentication flow"),
		})
	}
}

func (h *RegisterHandlers) missingFlowContext(w http.ResponseWriter, r *http.Request) {
	h.logger.ErrorContext(r.Context(), "register handler reached without flow context", "path", r.URL.Path)
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "invalid_flow_state",
		Err:     errors.New("the authentication flow is in an unexpected state"),
	})
}

// parseRegisterForm decodes the submitted registration form. Parsing happens
// once per request; the same value feeds both the service call and any
// error re-render.
func parseRegisterForm(r *http.Request) (model.RegisterRequest, error) {
	if err := r.ParseForm(); err != nil {
		return model.RegisterRequest{}, errors.New("malformed form body")
	}

	form := model.RegisterRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	if v := strings.TrimSpace(r.PostFormValue("first_name")); v != "" {
		form.FirstName = &v
	}
	if v := strings.TrimSpace(r.PostFormValue("last_name")); v != "" {
		form.LastName = &v
	}
	return form, nil
}
