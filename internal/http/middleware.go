package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/oaltun/fief/internal/domain/model"
	apperrors "github.com/oaltun/fief/internal/errors"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// TenantResolverInterface resolves the tenant owning a request path.
type TenantResolverInterface interface {
	Resolve(ctx context.Context, path string) (*model.Tenant, error)
}

// LoginSessionGetter fetches an active login session by id.
type LoginSessionGetter interface {
	Get(ctx context.Context, id string) (*model.LoginSession, error)
}

// FlowContextOptions groups dependencies for the flow-context middleware.
type FlowContextOptions struct {
	Resolver TenantResolverInterface
	Sessions LoginSessionGetter
	// Cookie is the name of the cookie carrying the login session identifier.
	Cookie string
	Logger *slog.Logger
}

// RequireFlowContext resolves the tenant and the active login session before
// the handler runs and stores both in the request context.
//
// Failures here are fatal for the request: an unresolved tenant aborts with
// 404 before any flow logic runs, and a missing or expired login session
// means the visitor must restart the flow.
func RequireFlowContext(opts FlowContextOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, err := opts.Resolver.Resolve(r.Context(), r.URL.Path)
			if err != nil {
				if apperrors.IsNotFound(err) {
					WriteError(w, ErrorParams{
						Code:    http.StatusNotFound,
						ErrCode: "tenant_not_found",
						Err:     errors.New("no tenant serves this address"),
					})
					return
				}
				logger.ErrorContext(r.Context(), "tenant resolution failed", "error", err)
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "tenant_resolution_failed",
					Err:     errors.New("unable to resolve tenant"),
				})
				return
			}

			sess, err := fetchLoginSession(r, opts.Sessions, opts.Cookie)
			if err != nil {
				writeLoginSessionError(w, err)
				return
			}
			if sess.TenantID != tenant.ID {
				// A login session never crosses tenants.
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "login_session_invalid",
					Err:     errors.New("login session does not belong to this tenant"),
				})
				return
			}

			ctx := SetTenantInContext(r.Context(), tenant)
			ctx = SetLoginSessionInContext(ctx, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func fetchLoginSession(r *http.Request, sessions LoginSessionGetter, cookie string) (*model.LoginSession, error) {
	c, err := r.Cookie(cookie)
	if err != nil || c.Value == "" {
		return nil, apperrors.NotFound("Login session not found")
	}
	return sessions.Get(r.Context(), c.Value)
}

func writeLoginSessionError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsExpired(err):
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "login_session_expired",
			Err:     errors.New("the authentication attempt expired; restart the flow"),
		})
	case apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "login_session_not_found",
			Err:     errors.New("no active authentication attempt; restart the flow"),
		})
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_session_fetch_failed",
			Err:     errors.New("unable to load the authentication attempt"),
		})
	}
}
