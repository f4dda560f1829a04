package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"docportal/internal/apiclient"
	"docportal/internal/apperr"
	"docportal/internal/model"
	"docportal/internal/session"
)

// Navigation targets after auth transitions.
const (
	DashboardPath = "/dashboard"
	LoginPath     = "/login"
)

const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
)

// Responder receives the cookies and navigation produced by an auth transition.
// *fiber.Ctx satisfies it.
type Responder interface {
	session.CookieWriter
	Redirect(location string, status ...int) error
}

// AuthGateway is the only writer of a client's session.
// The three operations are independent; none retries.
type AuthGateway interface {
	// Login authenticates and, on success, stores the session and navigates to the dashboard.
	// On failure the session is left untouched.
	Login(ctx context.Context, store *session.Store, w Responder, req model.LoginRequest) error

	// Register creates an account with the same success path as Login.
	Register(ctx context.Context, store *session.Store, w Responder, req model.RegisterRequest) error

	// Logout always ends with a cleared session and a redirect to the login page,
	// whatever happens to the remote call.
	Logout(ctx context.Context, store *session.Store, w Responder) error
}

type authGateway struct {
	api *apiclient.Client
	log *zap.Logger
}

// NewAuthGateway constructs a new AuthGateway.
func NewAuthGateway(api *apiclient.Client, log *zap.Logger) AuthGateway {
	return &authGateway{api: api, log: log}
}

func (g *authGateway) Login(ctx context.Context, store *session.Store, w Responder, req model.LoginRequest) error {
	return g.authenticate(ctx, store, w, "auth.Login", "auth.login", "/api/auth/login", msgLoginFailed, req)
}

func (g *authGateway) Register(ctx context.Context, store *session.Store, w Responder, req model.RegisterRequest) error {
	if req.Role == "" {
		req.Role = model.DefaultRole
	}
	return g.authenticate(ctx, store, w, "auth.Register", "auth.register", "/api/auth/register", msgRegisterFailed, req)
}

func (g *authGateway) authenticate(ctx context.Context, store *session.Store, w Responder, op, endpoint, path, msg string, payload any) error {
	body, err := apiclient.JSONBody(payload)
	if err != nil {
		return apperr.Network(op, msg, err)
	}
	res, err := g.api.Do(ctx, apiclient.Request{
		Endpoint:    endpoint,
		Method:      http.MethodPost,
		Path:        path,
		Body:        body,
		ContentType: "application/json",
	})
	if err != nil {
		return apperr.Network(op, msg, err)
	}
	if !res.OK() {
		return apperr.Auth(op, msg, errors.New(http.StatusText(res.StatusCode)))
	}
	auth, err := apiclient.Decode[model.AuthResponse](g.api, res.Body)
	if err != nil {
		return apperr.Network(op, msg, err)
	}

	if err := store.Set(ctx, w, auth.Session()); err != nil {
		return err
	}
	g.log.Info("session_started",
		zap.String("client_id", store.ClientID()),
		zap.String("username", auth.Username),
		zap.String("op", op),
	)
	return w.Redirect(DashboardPath, http.StatusSeeOther)
}

func (g *authGateway) Logout(ctx context.Context, store *session.Store, w Responder) error {
	if token := store.Token(); token != "" {
		res, err := g.api.Do(ctx, apiclient.Request{
			Endpoint: "auth.logout",
			Method:   http.MethodPost,
			Path:     "/api/auth/logout",
			Token:    token,
		})
		switch {
		case err != nil:
			g.log.Warn("logout_request_failed", zap.String("client_id", store.ClientID()), zap.Error(err))
		case !res.OK():
			g.log.Warn("logout_request_rejected", zap.String("client_id", store.ClientID()), zap.Int("status", res.StatusCode))
		}
	}

	if err := store.Clear(ctx, w); err != nil {
		g.log.Warn("logout_storage_clear_failed", zap.String("client_id", store.ClientID()), zap.Error(err))
	}
	return w.Redirect(LoginPath, http.StatusSeeOther)
}
